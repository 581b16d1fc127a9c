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

type SeatRepository interface {
	CreateBatch(ctx context.Context, seats []*entity.Seat) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Seat, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Seat, error)
	FindByShowtimeID(ctx context.Context, showtimeID uuid.UUID) ([]*entity.Seat, error)
	// MarkBooked sets status and booking id without looking at the current
	// status.
	MarkBooked(ctx context.Context, seatID, bookingID uuid.UUID) error
	DeleteByShowtimeID(ctx context.Context, showtimeID uuid.UUID) error
}

type seatRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSeatRepository(db database.PgxIface, log *zap.Logger) SeatRepository {
	return &seatRepository{
		db:  db,
		log: log.With(zap.String("repository", "seat")),
	}
}

const seatColumns = `id, showtime_id, seat_row, seat_number, status, seat_type, price, booking_id, created_at, updated_at`

func scanSeat(row scanner) (*entity.Seat, error) {
	var seat entity.Seat
	err := row.Scan(
		&seat.ID,
		&seat.ShowtimeID,
		&seat.Row,
		&seat.Number,
		&seat.Status,
		&seat.Type,
		&seat.Price,
		&seat.BookingID,
		&seat.CreatedAt,
		&seat.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &seat, nil
}

// CreateBatch copies the whole grid in one round trip.
func (r *seatRepository) CreateBatch(ctx context.Context, seats []*entity.Seat) error {
	if len(seats) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(seats))
	for _, seat := range seats {
		rows = append(rows, []any{
			seat.ID,
			seat.ShowtimeID,
			seat.Row,
			seat.Number,
			seat.Status,
			seat.Type,
			seat.Price,
			seat.BookingID,
			seat.CreatedAt,
			seat.UpdatedAt,
		})
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin seat batch: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"seats"},
		[]string{"id", "showtime_id", "seat_row", "seat_number", "status", "seat_type", "price", "booking_id", "created_at", "updated_at"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		r.log.Error("Failed to create batch seats",
			zap.Error(err),
			zap.Int("count", len(seats)),
		)
		return fmt.Errorf("create %d seats: %w", len(seats), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit seat batch: %w", err)
	}

	return nil
}

func (r *seatRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Seat, error) {
	query := `SELECT ` + seatColumns + ` FROM seats WHERE id = $1`

	seat, err := scanSeat(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find seat by ID",
			zap.Error(err),
			zap.String("seat_id", id.String()),
		)
		return nil, fmt.Errorf("find seat %s: %w", id, err)
	}

	return seat, nil
}

func (r *seatRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Seat, error) {
	if len(ids) == 0 {
		return []*entity.Seat{}, nil
	}

	query := `SELECT ` + seatColumns + ` FROM seats WHERE id = ANY($1) ORDER BY seat_row, seat_number`
	return r.querySeats(ctx, query, ids)
}

func (r *seatRepository) FindByShowtimeID(ctx context.Context, showtimeID uuid.UUID) ([]*entity.Seat, error) {
	query := `SELECT ` + seatColumns + ` FROM seats WHERE showtime_id = $1 ORDER BY seat_row, seat_number`
	return r.querySeats(ctx, query, showtimeID)
}

func (r *seatRepository) querySeats(ctx context.Context, query string, args ...any) ([]*entity.Seat, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query seats", zap.Error(err))
		return nil, fmt.Errorf("query seats: %w", err)
	}
	defer rows.Close()

	seats := []*entity.Seat{}
	for rows.Next() {
		seat, err := scanSeat(rows)
		if err != nil {
			r.log.Error("Failed to scan seat row", zap.Error(err))
			return nil, fmt.Errorf("scan seat: %w", err)
		}
		seats = append(seats, seat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate seat rows: %w", err)
	}

	return seats, nil
}

func (r *seatRepository) MarkBooked(ctx context.Context, seatID, bookingID uuid.UUID) error {
	query := `UPDATE seats SET status = $2, booking_id = $3, updated_at = $4 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, seatID, entity.SeatStatusBooked, bookingID, time.Now())
	if err != nil {
		r.log.Error("Failed to mark seat booked",
			zap.Error(err),
			zap.String("seat_id", seatID.String()),
			zap.String("booking_id", bookingID.String()),
		)
		return fmt.Errorf("mark seat %s booked: %w", seatID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("mark seat %s booked: %w", seatID, ErrNotFound)
	}

	return nil
}

func (r *seatRepository) DeleteByShowtimeID(ctx context.Context, showtimeID uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM seats WHERE showtime_id = $1`, showtimeID)
	if err != nil {
		r.log.Error("Failed to delete seats for showtime",
			zap.Error(err),
			zap.String("showtime_id", showtimeID.String()),
		)
		return fmt.Errorf("delete seats of showtime %s: %w", showtimeID, err)
	}

	r.log.Debug("Seats deleted",
		zap.String("showtime_id", showtimeID.String()),
		zap.Int64("count", result.RowsAffected()),
	)
	return nil
}
