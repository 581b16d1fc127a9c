package repository

import (
	"context"
	"fmt"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/pkg/database"

	"go.uber.org/zap"
)

// BookingCommitter persists a confirmed booking together with its side
// effects on the user and the seats.
type BookingCommitter interface {
	Commit(ctx context.Context, booking *entity.Booking) error
}

type sequentialCommitter struct {
	bookings BookingRepository
	users    UserRepository
	seats    SeatRepository
	log      *zap.Logger
}

// NewSequentialCommitter writes the booking, then the user, then each seat,
// one call at a time. Seat updates do not check the current status and
// nothing is undone when a later step fails.
func NewSequentialCommitter(bookings BookingRepository, users UserRepository, seats SeatRepository, log *zap.Logger) BookingCommitter {
	return &sequentialCommitter{
		bookings: bookings,
		users:    users,
		seats:    seats,
		log:      log.With(zap.String("committer", "sequential")),
	}
}

func (c *sequentialCommitter) Commit(ctx context.Context, booking *entity.Booking) error {
	if err := c.bookings.Create(ctx, booking); err != nil {
		return err
	}

	if err := c.users.AppendBooking(ctx, booking.UserID, booking.ID); err != nil {
		c.log.Warn("Booking stored but user not updated",
			zap.String("booking_id", booking.ID.String()),
			zap.Error(err),
		)
		return err
	}

	for i, seatID := range booking.SeatIDs {
		if err := c.seats.MarkBooked(ctx, seatID, booking.ID); err != nil {
			c.log.Warn("Booking partially applied",
				zap.String("booking_id", booking.ID.String()),
				zap.Int("seats_marked", i),
				zap.Int("seats_total", len(booking.SeatIDs)),
				zap.Error(err),
			)
			return err
		}
	}

	return nil
}

type txCommitter struct {
	db  database.PgxIface
	log *zap.Logger
}

// NewTxCommitter applies the booking in a single transaction. A seat that
// is not available (or not part of the showtime) rolls everything back with
// ErrSeatUnavailable.
func NewTxCommitter(db database.PgxIface, log *zap.Logger) BookingCommitter {
	return &txCommitter{
		db:  db,
		log: log.With(zap.String("committer", "transactional")),
	}
}

func (c *txCommitter) Commit(ctx context.Context, booking *entity.Booking) error {
	tx, err := c.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin booking tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := insertBooking(ctx, tx, booking); err != nil {
		c.log.Error("Failed to insert booking", zap.Error(err), zap.String("reference", booking.Reference))
		return fmt.Errorf("create booking %s: %w", booking.Reference, err)
	}

	if err := appendUserBooking(ctx, tx, c.log, booking.UserID, booking.ID); err != nil {
		return err
	}

	now := time.Now()
	query := `
		UPDATE seats
		SET status = $2, booking_id = $3, updated_at = $4
		WHERE id = $1 AND showtime_id = $5 AND status = $6
	`
	for _, seatID := range booking.SeatIDs {
		result, err := tx.Exec(ctx, query,
			seatID,
			entity.SeatStatusBooked,
			booking.ID,
			now,
			booking.ShowtimeID,
			entity.SeatStatusAvailable,
		)
		if err != nil {
			c.log.Error("Failed to book seat", zap.Error(err), zap.String("seat_id", seatID.String()))
			return fmt.Errorf("book seat %s: %w", seatID, err)
		}
		if result.RowsAffected() == 0 {
			c.log.Info("Seat taken during commit",
				zap.String("seat_id", seatID.String()),
				zap.String("showtime_id", booking.ShowtimeID.String()),
			)
			return fmt.Errorf("book seat %s: %w", seatID, ErrSeatUnavailable)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		c.log.Error("Failed to commit booking", zap.Error(err), zap.String("reference", booking.Reference))
		return fmt.Errorf("commit booking %s: %w", booking.Reference, err)
	}

	return nil
}
