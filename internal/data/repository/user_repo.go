package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.User, error)
	AppendBooking(ctx context.Context, userID, bookingID uuid.UUID) error
	// Update writes the profile name and password hash.
	Update(ctx context.Context, user *entity.User) error
}

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

// Column names match the entity's db tags so rows collect by name.
const userColumns = `id, name, email, password, role, booking_ids, created_at, updated_at`

func (ur *userRepository) Create(ctx context.Context, user *entity.User) error {
	bookingIDs := user.BookingIDs
	if bookingIDs == nil {
		bookingIDs = []uuid.UUID{}
	}

	_, err := ur.db.Exec(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Role, bookingIDs, user.CreatedAt, user.UpdatedAt)
	switch {
	case isUniqueViolation(err):
		return fmt.Errorf("create user %s: %w", user.Email, ErrDuplicate)
	case err != nil:
		ur.log.Error("Failed to create user", zap.Error(err), zap.String("email", user.Email))
		return fmt.Errorf("create user %s: %w", user.Email, err)
	}
	return nil
}

func (ur *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return ur.findOne(ctx, "id = $1", id)
}

// FindByEmail matches case-insensitively, like the unique index.
func (ur *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return ur.findOne(ctx, "lower(email) = lower($1)", email)
}

func (ur *userRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.User, error) {
	if len(ids) == 0 {
		return []*entity.User{}, nil
	}

	rows, err := ur.db.Query(ctx, `SELECT `+userColumns+` FROM users WHERE id = ANY($1)`, ids)
	if err != nil {
		ur.log.Error("Failed to query users", zap.Error(err), zap.Int("count", len(ids)))
		return nil, fmt.Errorf("find users by IDs: %w", err)
	}

	users, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[entity.User])
	if err != nil {
		ur.log.Error("Failed to collect users", zap.Error(err))
		return nil, fmt.Errorf("collect users: %w", err)
	}
	return users, nil
}

func (ur *userRepository) findOne(ctx context.Context, where string, arg any) (*entity.User, error) {
	rows, err := ur.db.Query(ctx, `SELECT `+userColumns+` FROM users WHERE `+where, arg)
	if err != nil {
		ur.log.Error("Failed to query user", zap.Error(err), zap.Any("key", arg))
		return nil, fmt.Errorf("find user by %v: %w", arg, err)
	}

	user, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[entity.User])
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return nil, nil
	case err != nil:
		ur.log.Error("Failed to scan user", zap.Error(err), zap.Any("key", arg))
		return nil, fmt.Errorf("scan user %v: %w", arg, err)
	}
	return user, nil
}

func (ur *userRepository) Update(ctx context.Context, user *entity.User) error {
	tag, err := ur.db.Exec(ctx,
		`UPDATE users SET name = $2, password = $3, updated_at = $4 WHERE id = $1`,
		user.ID, user.Name, user.PasswordHash, user.UpdatedAt)
	if err != nil {
		ur.log.Error("Failed to update user", zap.Error(err), zap.String("user_id", user.ID.String()))
		return fmt.Errorf("update user %s: %w", user.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update user %s: %w", user.ID, ErrNotFound)
	}
	return nil
}

// AppendBooking adds bookingID to the user's booking list unless it is
// already there.
func (ur *userRepository) AppendBooking(ctx context.Context, userID, bookingID uuid.UUID) error {
	return appendUserBooking(ctx, ur.db, ur.log, userID, bookingID)
}

func appendUserBooking(ctx context.Context, db execer, log *zap.Logger, userID, bookingID uuid.UUID) error {
	query := `
		UPDATE users
		SET booking_ids = CASE WHEN $2 = ANY(booking_ids) THEN booking_ids
		                       ELSE array_append(booking_ids, $2) END,
		    updated_at = $3
		WHERE id = $1
	`

	result, err := db.Exec(ctx, query, userID, bookingID, time.Now())
	if err != nil {
		log.Error("Failed to append booking to user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("booking_id", bookingID.String()),
		)
		return fmt.Errorf("append booking %s to user %s: %w", bookingID, userID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("append booking to user %s: %w", userID, ErrNotFound)
	}

	return nil
}
