package repository

import (
	"context"
	"errors"

	"cinema-ticketing/pkg/database"
	"cinema-ticketing/pkg/utils"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned by writes that target a missing record.
	// Reads return (nil, nil) instead.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate reports a unique constraint violation.
	ErrDuplicate = errors.New("record already exists")
	// ErrSeatUnavailable means a seat could not move from available to booked.
	ErrSeatUnavailable = errors.New("seat is no longer available")
)

type Repository struct {
	User     UserRepository
	Session  SessionRepository
	Movie    MovieRepository
	Showtime ShowtimeRepository
	Seat     SeatRepository
	Booking  BookingRepository
	Commit   BookingCommitter
}

func NewRepository(db database.PgxIface, commitMode string, log *zap.Logger) *Repository {
	repo := &Repository{
		User:     NewUserRepository(db, log),
		Session:  NewSessionRepository(db, log),
		Movie:    NewMovieRepository(db, log),
		Showtime: NewShowtimeRepository(db, log),
		Seat:     NewSeatRepository(db, log),
		Booking:  NewBookingRepository(db, log),
	}

	if commitMode == utils.CommitModeSequential {
		repo.Commit = NewSequentialCommitter(repo.Booking, repo.User, repo.Seat, log)
	} else {
		repo.Commit = NewTxCommitter(db, log)
	}

	return repo
}

// execer is satisfied by both the pool and a pgx.Tx.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type scanner interface {
	Scan(dest ...any) error
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
