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

// BookingFilter narrows the admin booking list. Query matches the booking
// reference, the customer's email or the movie title, case-insensitively.
type BookingFilter struct {
	Query  string
	Limit  int
	Offset int
}

// BookingStats summarises every booking regardless of status. Recent counts
// bookings created at or after the given instant.
type BookingStats struct {
	Total   int64
	Recent  int64
	Revenue float64
}

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Booking, error)
	Search(ctx context.Context, filter BookingFilter) ([]*entity.Booking, error)
	Count(ctx context.Context, filter BookingFilter) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error
	Stats(ctx context.Context, since time.Time) (BookingStats, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `b.id, b.reference, b.user_id, b.movie_id, b.showtime_id, b.seat_ids,
	b.total_price, b.payment_method, b.status, b.created_at, b.updated_at`

const bookingSearchWhere = `
	FROM bookings b
	LEFT JOIN users u ON u.id = b.user_id
	LEFT JOIN movies m ON m.id = b.movie_id
	WHERE ($1 = ''
	   OR b.reference ILIKE '%' || $1 || '%'
	   OR u.email ILIKE '%' || $1 || '%'
	   OR m.title ILIKE '%' || $1 || '%')
`

func scanBooking(row scanner) (*entity.Booking, error) {
	var b entity.Booking
	err := row.Scan(
		&b.ID,
		&b.Reference,
		&b.UserID,
		&b.MovieID,
		&b.ShowtimeID,
		&b.SeatIDs,
		&b.TotalPrice,
		&b.PaymentMethod,
		&b.Status,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func insertBooking(ctx context.Context, db execer, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, reference, user_id, movie_id, showtime_id, seat_ids,
		                      total_price, payment_method, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := db.Exec(ctx, query,
		booking.ID,
		booking.Reference,
		booking.UserID,
		booking.MovieID,
		booking.ShowtimeID,
		booking.SeatIDs,
		booking.TotalPrice,
		booking.PaymentMethod,
		booking.Status,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("create booking %s: %w", booking.Reference, ErrDuplicate)
	}
	return err
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	if err := insertBooking(ctx, r.db, booking); err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("reference", booking.Reference),
			zap.String("user_id", booking.UserID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.Reference, err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b WHERE b.id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id, err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings b
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC
	`

	return r.queryBookings(ctx, query, userID)
}

func (r *bookingRepository) Search(ctx context.Context, filter BookingFilter) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + bookingSearchWhere + `
		ORDER BY b.created_at DESC
		LIMIT $2 OFFSET $3
	`

	return r.queryBookings(ctx, query, filter.Query, filter.Limit, filter.Offset)
}

func (r *bookingRepository) Count(ctx context.Context, filter BookingFilter) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*)`+bookingSearchWhere, filter.Query).Scan(&total)
	if err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count bookings: %w", err)
	}

	return total, nil
}

func (r *bookingRepository) queryBookings(ctx context.Context, query string, args ...any) ([]*entity.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query bookings", zap.Error(err))
		return nil, fmt.Errorf("query bookings: %w", err)
	}
	defer rows.Close()

	bookings := []*entity.Booking{}
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}

	return bookings, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error {
	query := `UPDATE bookings SET status = $2, updated_at = $3 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, status, time.Now())
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %s status: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update booking %s status: %w", id, ErrNotFound)
	}

	return nil
}

func (r *bookingRepository) Stats(ctx context.Context, since time.Time) (BookingStats, error) {
	var stats BookingStats
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE created_at >= $1),
		       COALESCE(SUM(total_price), 0)::float8
		FROM bookings`, since).Scan(&stats.Total, &stats.Recent, &stats.Revenue)
	if err != nil {
		r.log.Error("Failed to count booking stats", zap.Error(err))
		return BookingStats{}, fmt.Errorf("booking stats: %w", err)
	}
	return stats, nil
}
