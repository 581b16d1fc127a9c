package memstore

import (
	"context"
	"sync"
	"testing"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/seating"
	"cinema-ticketing/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	repo     *repository.Repository
	user     *entity.User
	movie    *entity.Movie
	showtime *entity.Showtime
	seats    []*entity.Seat
}

func setup(t *testing.T, commitMode string) *fixture {
	t.Helper()
	ctx := context.Background()
	repo := NewRepository(New(), commitMode, zap.NewNop())
	now := time.Now()

	user := &entity.User{
		Record: entity.Record{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:   "Rina",
		Email:  "rina@example.com",
		Role:   entity.RoleCustomer,
	}
	require.NoError(t, repo.User.Create(ctx, user))

	movie := &entity.Movie{
		Record: entity.Record{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Title:  "Night Train",
	}
	require.NoError(t, repo.Movie.Create(ctx, movie))

	showtime := &entity.Showtime{
		CreatedRecord:  entity.CreatedRecord{ID: uuid.New(), CreatedAt: now},
		MovieID:        movie.ID,
		Date:           "2025-12-24",
		Time:           "19:30",
		Screen:         "Screen 1",
		Price:          10,
		TotalSeats:     20,
		AvailableSeats: 20,
	}
	require.NoError(t, repo.Showtime.Create(ctx, showtime))

	seats, err := seating.GenerateGrid(showtime.ID, showtime.Price, showtime.TotalSeats, now)
	require.NoError(t, err)
	require.NoError(t, repo.Seat.CreateBatch(ctx, seats))

	return &fixture{repo: repo, user: user, movie: movie, showtime: showtime, seats: seats}
}

func (f *fixture) booking(ref string, seats ...*entity.Seat) *entity.Booking {
	b := &entity.Booking{
		Record:        entity.Record{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Reference:     ref,
		UserID:        f.user.ID,
		MovieID:       f.movie.ID,
		ShowtimeID:    f.showtime.ID,
		PaymentMethod: entity.PaymentMethodPayPal,
		Status:        entity.BookingStatusConfirmed,
	}
	for _, s := range seats {
		b.SeatIDs = append(b.SeatIDs, s.ID)
		b.TotalPrice += s.Price
	}
	return b
}

func TestCommitter_AppliesAllWrites(t *testing.T) {
	f := setup(t, utils.CommitModeTransactional)
	ctx := context.Background()

	b := f.booking("AAAA1111", f.seats[0], f.seats[17])
	require.NoError(t, f.repo.Commit.Commit(ctx, b))

	stored, err := f.repo.Booking.FindByID(ctx, b.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, entity.BookingStatusConfirmed, stored.Status)

	user, err := f.repo.User.FindByID(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{b.ID}, user.BookingIDs)

	for _, id := range b.SeatIDs {
		seat, err := f.repo.Seat.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, entity.SeatStatusBooked, seat.Status)
		require.NotNil(t, seat.BookingID)
		assert.Equal(t, b.ID, *seat.BookingID)
	}
}

func TestCommitter_RejectsTakenSeatWithoutPartialWrites(t *testing.T) {
	f := setup(t, utils.CommitModeTransactional)
	ctx := context.Background()

	require.NoError(t, f.repo.Commit.Commit(ctx, f.booking("AAAA1111", f.seats[1])))

	second := f.booking("BBBB2222", f.seats[0], f.seats[1])
	err := f.repo.Commit.Commit(ctx, second)
	assert.ErrorIs(t, err, repository.ErrSeatUnavailable)

	stored, err := f.repo.Booking.FindByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)

	seat, err := f.repo.Seat.FindByID(ctx, f.seats[0].ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SeatStatusAvailable, seat.Status)
}

func TestCommitter_ConcurrentCommitsBookSeatOnce(t *testing.T) {
	f := setup(t, utils.CommitModeTransactional)
	ctx := context.Background()

	const workers = 16
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ref, err := utils.GenerateReference()
			if err != nil {
				return
			}
			if err := f.repo.Commit.Commit(ctx, f.booking(ref, f.seats[4], f.seats[5])); err == nil {
				mu.Lock()
				success++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, success)
}

func TestSequentialCommitter_OverwritesBookedSeat(t *testing.T) {
	f := setup(t, utils.CommitModeSequential)
	ctx := context.Background()

	first := f.booking("AAAA1111", f.seats[2])
	second := f.booking("BBBB2222", f.seats[2])
	require.NoError(t, f.repo.Commit.Commit(ctx, first))
	require.NoError(t, f.repo.Commit.Commit(ctx, second))

	seat, err := f.repo.Seat.FindByID(ctx, f.seats[2].ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, *seat.BookingID)
}

func TestBookingSearch(t *testing.T) {
	f := setup(t, utils.CommitModeTransactional)
	ctx := context.Background()

	older := f.booking("REFOLD01", f.seats[0])
	older.CreatedAt = time.Now().Add(-time.Hour)
	newer := f.booking("REFNEW02", f.seats[1])
	require.NoError(t, f.repo.Commit.Commit(ctx, older))
	require.NoError(t, f.repo.Commit.Commit(ctx, newer))

	all, err := f.repo.Booking.Search(ctx, repository.BookingFilter{Limit: 10})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, newer.ID, all[0].ID)

	tests := []struct {
		query string
		want  int
	}{
		{"refold", 1},
		{"RINA@", 2},
		{"night", 2},
		{"nothing", 0},
	}
	for _, tt := range tests {
		got, err := f.repo.Booking.Search(ctx, repository.BookingFilter{Query: tt.query, Limit: 10})
		require.NoError(t, err)
		assert.Len(t, got, tt.want, tt.query)

		n, err := f.repo.Booking.Count(ctx, repository.BookingFilter{Query: tt.query})
		require.NoError(t, err)
		assert.EqualValues(t, tt.want, n, tt.query)
	}
}

func TestShowtimeDeleteCascadesToSeats(t *testing.T) {
	f := setup(t, utils.CommitModeTransactional)
	ctx := context.Background()

	require.NoError(t, f.repo.Showtime.Delete(ctx, f.showtime.ID))

	seats, err := f.repo.Seat.FindByShowtimeID(ctx, f.showtime.ID)
	require.NoError(t, err)
	assert.Empty(t, seats)

	assert.ErrorIs(t, f.repo.Showtime.Delete(ctx, f.showtime.ID), repository.ErrNotFound)
}

func TestReturnedRecordsAreCopies(t *testing.T) {
	f := setup(t, utils.CommitModeTransactional)
	ctx := context.Background()

	seat, err := f.repo.Seat.FindByID(ctx, f.seats[0].ID)
	require.NoError(t, err)
	seat.Status = entity.SeatStatusBooked

	again, err := f.repo.Seat.FindByID(ctx, f.seats[0].ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SeatStatusAvailable, again.Status)
}

func TestMovieStats_ClassifiesByDates(t *testing.T) {
	f := setup(t, utils.CommitModeTransactional)
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	day := 24 * time.Hour

	dated := func(release, end *time.Time) {
		require.NoError(t, f.repo.Movie.Create(ctx, &entity.Movie{
			Record:      entity.NewRecord(now),
			Title:       "Dated",
			ReleaseDate: release,
			EndDate:     end,
		}))
	}
	at := func(d time.Duration) *time.Time {
		v := now.Add(d)
		return &v
	}

	dated(at(-day), at(day))    // showing
	dated(at(-day), at(0))      // last day
	dated(at(day), at(2*day))   // upcoming
	dated(at(-2*day), at(-day)) // ended
	dated(at(-day), nil)        // no end date

	stats, err := f.repo.Movie.Stats(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, repository.MovieStats{Total: 6, Active: 2, Upcoming: 1}, stats)
}

func TestBookingStats_CountsEveryStatus(t *testing.T) {
	f := setup(t, utils.CommitModeTransactional)
	ctx := context.Background()

	old := f.booking("AAAA1111", f.seats[0])
	old.CreatedAt = time.Now().Add(-48 * time.Hour)
	old.Status = entity.BookingStatusCancelled
	require.NoError(t, f.repo.Booking.Create(ctx, old))
	require.NoError(t, f.repo.Booking.Create(ctx, f.booking("BBBB2222", f.seats[1], f.seats[2])))

	stats, err := f.repo.Booking.Stats(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(1), stats.Recent)
	assert.InDelta(t, f.seats[0].Price+f.seats[1].Price+f.seats[2].Price, stats.Revenue, 1e-9)
}

func TestUserUpdate(t *testing.T) {
	f := setup(t, utils.CommitModeTransactional)
	ctx := context.Background()

	changed := *f.user
	changed.Name = "Rina Wati"
	changed.PasswordHash = "new-hash"
	changed.UpdatedAt = f.user.UpdatedAt.Add(time.Minute)
	require.NoError(t, f.repo.User.Update(ctx, &changed))

	stored, err := f.repo.User.FindByID(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rina Wati", stored.Name)
	assert.Equal(t, "new-hash", stored.PasswordHash)
	assert.Equal(t, f.user.Email, stored.Email)

	missing := &entity.User{Record: entity.NewRecord(time.Now())}
	assert.ErrorIs(t, f.repo.User.Update(ctx, missing), repository.ErrNotFound)
}
