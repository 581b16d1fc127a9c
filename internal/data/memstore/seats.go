package memstore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"

	"github.com/google/uuid"
)

type seatRepo struct{ s *Store }

func (r *seatRepo) CreateBatch(ctx context.Context, seats []*entity.Seat) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, seat := range seats {
		if _, ok := r.s.seats[seat.ID]; ok {
			return fmt.Errorf("create seat %s: %w", seat.ID, repository.ErrDuplicate)
		}
	}
	for _, seat := range seats {
		r.s.seats[seat.ID] = cloneSeat(seat)
	}
	return nil
}

func (r *seatRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Seat, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if seat, ok := r.s.seats[id]; ok {
		return cloneSeat(seat), nil
	}
	return nil, nil
}

func (r *seatRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Seat, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []*entity.Seat{}
	for _, id := range ids {
		if seat, ok := r.s.seats[id]; ok {
			out = append(out, cloneSeat(seat))
		}
	}
	sortSeats(out)
	return out, nil
}

func (r *seatRepo) FindByShowtimeID(ctx context.Context, showtimeID uuid.UUID) ([]*entity.Seat, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []*entity.Seat{}
	for _, seat := range r.s.seats {
		if seat.ShowtimeID == showtimeID {
			out = append(out, cloneSeat(seat))
		}
	}
	sortSeats(out)
	return out, nil
}

func (r *seatRepo) MarkBooked(ctx context.Context, seatID, bookingID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	seat, ok := r.s.seats[seatID]
	if !ok {
		return fmt.Errorf("mark seat %s booked: %w", seatID, repository.ErrNotFound)
	}
	id := bookingID
	seat.Status = entity.SeatStatusBooked
	seat.BookingID = &id
	seat.UpdatedAt = time.Now()
	return nil
}

func (r *seatRepo) DeleteByShowtimeID(ctx context.Context, showtimeID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, seat := range r.s.seats {
		if seat.ShowtimeID == showtimeID {
			delete(r.s.seats, id)
		}
	}
	return nil
}

func sortSeats(seats []*entity.Seat) {
	sort.Slice(seats, func(i, j int) bool {
		if seats[i].Row != seats[j].Row {
			return seats[i].Row < seats[j].Row
		}
		return seats[i].Number < seats[j].Number
	})
}
