package repository

import (
	"context"
	"errors"
	"fmt"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	// FindValidSession returns (nil, nil) for unknown, expired, revoked or
	// malformed tokens.
	FindValidSession(ctx context.Context, token string) (*entity.Session, error)
	Revoke(ctx context.Context, token string) error
}

type sessionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSessionRepository(db database.PgxIface, log *zap.Logger) SessionRepository {
	return &sessionRepository{
		db:  db,
		log: log.With(zap.String("repository", "session")),
	}
}

func (r *sessionRepository) Create(ctx context.Context, s *entity.Session) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO sessions (id, user_id, token, expires_at, created_at) VALUES ($1, $2, $3, $4, $5)`,
		s.ID, s.UserID, s.Token, s.ExpiresAt, s.CreatedAt)
	if err != nil {
		r.log.Error("Failed to create session", zap.Error(err), zap.String("user_id", s.UserID.String()))
		return fmt.Errorf("create session for user %s: %w", s.UserID, err)
	}
	return nil
}

func (r *sessionRepository) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	tokenID, err := uuid.Parse(token)
	if err != nil {
		return nil, nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, token, expires_at, revoked_at, created_at
		FROM sessions
		WHERE token = $1 AND revoked_at IS NULL AND expires_at > NOW()`, tokenID)
	if err != nil {
		r.log.Error("Failed to query session", zap.Error(err))
		return nil, fmt.Errorf("find session: %w", err)
	}

	session, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[entity.Session])
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return nil, nil
	case err != nil:
		r.log.Error("Failed to scan session", zap.Error(err))
		return nil, fmt.Errorf("scan session: %w", err)
	}
	return session, nil
}

// Revoke reports ErrNotFound when the token never existed or is already revoked.
func (r *sessionRepository) Revoke(ctx context.Context, token string) error {
	tokenID, err := uuid.Parse(token)
	if err != nil {
		return fmt.Errorf("revoke session: %w", ErrNotFound)
	}

	tag, err := r.db.Exec(ctx,
		`UPDATE sessions SET revoked_at = NOW() WHERE token = $1 AND revoked_at IS NULL`, tokenID)
	if err != nil {
		r.log.Error("Failed to revoke session", zap.Error(err))
		return fmt.Errorf("revoke session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("revoke session: %w", ErrNotFound)
	}
	return nil
}
