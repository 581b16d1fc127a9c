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

type movieRepo struct{ s *Store }

func (r *movieRepo) Create(ctx context.Context, movie *entity.Movie) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.movies[movie.ID]; ok {
		return fmt.Errorf("create movie %s: %w", movie.ID, repository.ErrDuplicate)
	}
	r.s.movies[movie.ID] = cloneMovie(movie)
	return nil
}

func (r *movieRepo) CreateBatch(ctx context.Context, movies []*entity.Movie) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, m := range movies {
		if _, ok := r.s.movies[m.ID]; ok {
			return fmt.Errorf("create movie %s: %w", m.ID, repository.ErrDuplicate)
		}
	}
	for _, m := range movies {
		r.s.movies[m.ID] = cloneMovie(m)
	}
	return nil
}

func (r *movieRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if m, ok := r.s.movies[id]; ok {
		return cloneMovie(m), nil
	}
	return nil, nil
}

func (r *movieRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Movie, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []*entity.Movie{}
	for _, id := range ids {
		if m, ok := r.s.movies[id]; ok {
			out = append(out, cloneMovie(m))
		}
	}
	return out, nil
}

func (r *movieRepo) matching(search string) []*entity.Movie {
	search = strings.ToLower(search)
	out := []*entity.Movie{}
	for _, m := range r.s.movies {
		if search == "" || strings.Contains(strings.ToLower(m.Title), search) {
			out = append(out, m)
		}
	}
	// newest release first, undated last, then by title
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].ReleaseDate, out[j].ReleaseDate
		switch {
		case a != nil && b != nil && !a.Equal(*b):
			return a.After(*b)
		case a != nil && b == nil:
			return true
		case a == nil && b != nil:
			return false
		}
		return out[i].Title < out[j].Title
	})
	return out
}

func (r *movieRepo) FindAll(ctx context.Context, offset, limit int, search string) ([]*entity.Movie, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	all := r.matching(search)
	out := []*entity.Movie{}
	for _, m := range page(all, offset, limit) {
		out = append(out, cloneMovie(m))
	}
	return out, nil
}

func (r *movieRepo) CountAll(ctx context.Context, search string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return int64(len(r.matching(search))), nil
}

func (r *movieRepo) Update(ctx context.Context, movie *entity.Movie) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.movies[movie.ID]
	if !ok {
		return fmt.Errorf("update movie %s: %w", movie.ID, repository.ErrNotFound)
	}
	updated := cloneMovie(movie)
	updated.CreatedAt = existing.CreatedAt
	r.s.movies[movie.ID] = updated
	return nil
}

func (r *movieRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.movies[id]; !ok {
		return fmt.Errorf("delete movie %s: %w", id, repository.ErrNotFound)
	}
	delete(r.s.movies, id)
	return nil
}

func (r *movieRepo) Stats(ctx context.Context, at time.Time) (repository.MovieStats, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	stats := repository.MovieStats{Total: int64(len(r.s.movies))}
	for _, m := range r.s.movies {
		if m.ReleaseDate == nil {
			continue
		}
		switch {
		case m.ReleaseDate.After(at):
			stats.Upcoming++
		case m.EndDate != nil && !m.EndDate.Before(at):
			stats.Active++
		}
	}
	return stats, nil
}

type showtimeRepo struct{ s *Store }

func (r *showtimeRepo) Create(ctx context.Context, showtime *entity.Showtime) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.showtimes[showtime.ID] = cloneShowtime(showtime)
	return nil
}

func (r *showtimeRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Showtime, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if st, ok := r.s.showtimes[id]; ok {
		return cloneShowtime(st), nil
	}
	return nil, nil
}

func (r *showtimeRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Showtime, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []*entity.Showtime{}
	for _, id := range ids {
		if st, ok := r.s.showtimes[id]; ok {
			out = append(out, cloneShowtime(st))
		}
	}
	return out, nil
}

func (r *showtimeRepo) FindByMovieDateTime(ctx context.Context, movieID uuid.UUID, date, showTime string) (*entity.Showtime, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var found *entity.Showtime
	for _, st := range r.s.showtimes {
		if st.MovieID != movieID || st.Date != date || st.Time != showTime {
			continue
		}
		if found == nil || st.CreatedAt.After(found.CreatedAt) {
			found = st
		}
	}
	if found == nil {
		return nil, nil
	}
	return cloneShowtime(found), nil
}

func (r *showtimeRepo) FindByMovie(ctx context.Context, movieID uuid.UUID, date string) ([]*entity.Showtime, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []*entity.Showtime{}
	for _, st := range r.s.showtimes {
		if st.MovieID == movieID && (date == "" || st.Date == date) {
			out = append(out, cloneShowtime(st))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out, nil
}

func (r *showtimeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.showtimes[id]; !ok {
		return fmt.Errorf("delete showtime %s: %w", id, repository.ErrNotFound)
	}
	delete(r.s.showtimes, id)
	for seatID, seat := range r.s.seats {
		if seat.ShowtimeID == id {
			delete(r.s.seats, seatID)
		}
	}
	return nil
}

func page[T any](items []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return nil
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}
