package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"

	"github.com/google/uuid"
)

type bookingRepo struct{ s *Store }

func (r *bookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.s.insertBookingLocked(booking)
}

func (s *Store) insertBookingLocked(booking *entity.Booking) error {
	if _, ok := s.bookings[booking.ID]; ok {
		return fmt.Errorf("create booking %s: %w", booking.Reference, repository.ErrDuplicate)
	}
	for _, b := range s.bookings {
		if b.Reference == booking.Reference {
			return fmt.Errorf("create booking %s: %w", booking.Reference, repository.ErrDuplicate)
		}
	}
	s.bookings[booking.ID] = cloneBooking(booking)
	return nil
}

func (r *bookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if b, ok := r.s.bookings[id]; ok {
		return cloneBooking(b), nil
	}
	return nil, nil
}

func (r *bookingRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []*entity.Booking{}
	for _, b := range r.s.bookings {
		if b.UserID == userID {
			out = append(out, cloneBooking(b))
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *bookingRepo) matching(query string) []*entity.Booking {
	query = strings.ToLower(strings.TrimSpace(query))
	out := []*entity.Booking{}
	for _, b := range r.s.bookings {
		if query == "" || r.matches(b, query) {
			out = append(out, b)
		}
	}
	sortNewestFirst(out)
	return out
}

func (r *bookingRepo) matches(b *entity.Booking, query string) bool {
	if strings.Contains(strings.ToLower(b.Reference), query) {
		return true
	}
	if u, ok := r.s.users[b.UserID]; ok && strings.Contains(strings.ToLower(u.Email), query) {
		return true
	}
	if m, ok := r.s.movies[b.MovieID]; ok && strings.Contains(strings.ToLower(m.Title), query) {
		return true
	}
	return false
}

func (r *bookingRepo) Search(ctx context.Context, filter repository.BookingFilter) ([]*entity.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []*entity.Booking{}
	for _, b := range page(r.matching(filter.Query), filter.Offset, filter.Limit) {
		out = append(out, cloneBooking(b))
	}
	return out, nil
}

func (r *bookingRepo) Count(ctx context.Context, filter repository.BookingFilter) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return int64(len(r.matching(filter.Query))), nil
}

func (r *bookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.bookings[id]
	if !ok {
		return fmt.Errorf("update booking %s status: %w", id, repository.ErrNotFound)
	}
	b.Status = status
	b.UpdatedAt = time.Now()
	return nil
}

func (r *bookingRepo) Stats(ctx context.Context, since time.Time) (repository.BookingStats, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	stats := repository.BookingStats{Total: int64(len(r.s.bookings))}
	for _, b := range r.s.bookings {
		if !b.CreatedAt.Before(since) {
			stats.Recent++
		}
		stats.Revenue += b.TotalPrice
	}
	return stats, nil
}

func sortNewestFirst(bookings []*entity.Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
}

// committer applies a booking atomically under the store's write lock.
type committer struct{ s *Store }

func (c *committer) Commit(ctx context.Context, booking *entity.Booking) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	if _, ok := c.s.users[booking.UserID]; !ok {
		return fmt.Errorf("append booking to user %s: %w", booking.UserID, repository.ErrNotFound)
	}
	for _, seatID := range booking.SeatIDs {
		seat, ok := c.s.seats[seatID]
		if !ok || seat.ShowtimeID != booking.ShowtimeID || seat.Status != entity.SeatStatusAvailable {
			return fmt.Errorf("book seat %s: %w", seatID, repository.ErrSeatUnavailable)
		}
	}

	if err := c.s.insertBookingLocked(booking); err != nil {
		return err
	}
	if err := c.s.appendBookingLocked(booking.UserID, booking.ID); err != nil {
		return err
	}

	now := time.Now()
	for _, seatID := range booking.SeatIDs {
		seat := c.s.seats[seatID]
		id := booking.ID
		seat.Status = entity.SeatStatusBooked
		seat.BookingID = &id
		seat.UpdatedAt = now
	}
	return nil
}
