// Package memstore keeps every record in process memory. It backs the
// server when STORE_DRIVER=memory and serves as the store in service tests.
package memstore

import (
	"sync"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Store struct {
	mu        sync.RWMutex
	users     map[uuid.UUID]*entity.User
	sessions  map[uuid.UUID]*entity.Session // by token
	movies    map[uuid.UUID]*entity.Movie
	showtimes map[uuid.UUID]*entity.Showtime
	seats     map[uuid.UUID]*entity.Seat
	bookings  map[uuid.UUID]*entity.Booking
}

func New() *Store {
	return &Store{
		users:     make(map[uuid.UUID]*entity.User),
		sessions:  make(map[uuid.UUID]*entity.Session),
		movies:    make(map[uuid.UUID]*entity.Movie),
		showtimes: make(map[uuid.UUID]*entity.Showtime),
		seats:     make(map[uuid.UUID]*entity.Seat),
		bookings:  make(map[uuid.UUID]*entity.Booking),
	}
}

// NewRepository wires the store into the same aggregate the Postgres
// implementation produces.
func NewRepository(store *Store, commitMode string, log *zap.Logger) *repository.Repository {
	repo := &repository.Repository{
		User:     &userRepo{store},
		Session:  &sessionRepo{store},
		Movie:    &movieRepo{store},
		Showtime: &showtimeRepo{store},
		Seat:     &seatRepo{store},
		Booking:  &bookingRepo{store},
	}

	if commitMode == utils.CommitModeSequential {
		repo.Commit = repository.NewSequentialCommitter(repo.Booking, repo.User, repo.Seat, log)
	} else {
		repo.Commit = &committer{store}
	}

	return repo
}

// Records are copied on the way in and out so callers never share memory
// with the store.

func cloneUser(u *entity.User) *entity.User {
	c := *u
	c.BookingIDs = append([]uuid.UUID(nil), u.BookingIDs...)
	return &c
}

func cloneSession(s *entity.Session) *entity.Session {
	c := *s
	return &c
}

func cloneMovie(m *entity.Movie) *entity.Movie {
	c := *m
	return &c
}

func cloneShowtime(s *entity.Showtime) *entity.Showtime {
	c := *s
	return &c
}

func cloneSeat(s *entity.Seat) *entity.Seat {
	c := *s
	if s.BookingID != nil {
		id := *s.BookingID
		c.BookingID = &id
	}
	return &c
}

func cloneBooking(b *entity.Booking) *entity.Booking {
	c := *b
	c.SeatIDs = append([]uuid.UUID(nil), b.SeatIDs...)
	return &c
}
