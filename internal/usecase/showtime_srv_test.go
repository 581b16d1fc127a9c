package usecase

import (
	"context"
	"errors"
	"testing"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCreateShowtime_GeneratesGrid(t *testing.T) {
	env := newTestEnv(t, utils.CommitModeTransactional, nil)
	ctx := context.Background()

	resp, err := env.service.Showtime.CreateShowtime(ctx, &request.CreateShowtimeRequest{
		MovieID:    env.movie.ID.String(),
		Date:       "2025-12-24",
		Time:       "19:30",
		Screen:     "Studio 1",
		Price:      "10",
		TotalSeats: "20",
	})
	require.NoError(t, err)
	assert.Equal(t, 20, resp.SeatsAdded)
	assert.Equal(t, 20, resp.Showtime.AvailableSeats)
	assert.Equal(t, 20, resp.Showtime.TotalSeats)

	seatMap, err := env.service.Showtime.GetSeatMap(ctx, uuid.MustParse(resp.Showtime.ID))
	require.NoError(t, err)
	require.Len(t, seatMap.Rows, 3)

	assert.Equal(t, "A", seatMap.Rows[0].Row)
	assert.Len(t, seatMap.Rows[0].Seats, 8)
	assert.Equal(t, entity.SeatTypeStandard, seatMap.Rows[1].Seats[0].Type)
	assert.Equal(t, 10.0, seatMap.Rows[1].Seats[0].Price)

	assert.Equal(t, "C", seatMap.Rows[2].Row)
	assert.Len(t, seatMap.Rows[2].Seats, 4)
	assert.Equal(t, entity.SeatTypePremium, seatMap.Rows[2].Seats[0].Type)
	assert.Equal(t, 12.0, seatMap.Rows[2].Seats[0].Price)
	assert.Equal(t, "C4", seatMap.Rows[2].Seats[3].Label)
}

func TestCreateShowtime_Validation(t *testing.T) {
	env := newTestEnv(t, utils.CommitModeTransactional, nil)
	valid := func() *request.CreateShowtimeRequest {
		return &request.CreateShowtimeRequest{
			MovieID:    env.movie.ID.String(),
			Date:       "2025-12-24",
			Time:       "19:30",
			Screen:     "Studio 1",
			Price:      "10",
			TotalSeats: "20",
		}
	}

	tests := []struct {
		name   string
		mutate func(r *request.CreateShowtimeRequest)
		field  string
	}{
		{"empty screen", func(r *request.CreateShowtimeRequest) { r.Screen = "  " }, "screen"},
		{"bad date", func(r *request.CreateShowtimeRequest) { r.Date = "24/12/2025" }, "date"},
		{"bad time", func(r *request.CreateShowtimeRequest) { r.Time = "7pm" }, "time"},
		{"price not a number", func(r *request.CreateShowtimeRequest) { r.Price = "ten" }, "price"},
		{"zero price", func(r *request.CreateShowtimeRequest) { r.Price = "0" }, "price"},
		{"NaN price", func(r *request.CreateShowtimeRequest) { r.Price = "NaN" }, "price"},
		{"infinite price", func(r *request.CreateShowtimeRequest) { r.Price = "Inf" }, "price"},
		{"overflowing price", func(r *request.CreateShowtimeRequest) { r.Price = "1e400" }, "price"},
		{"fractional seats", func(r *request.CreateShowtimeRequest) { r.TotalSeats = "2.5" }, "total_seats"},
		{"negative seats", func(r *request.CreateShowtimeRequest) { r.TotalSeats = "-8" }, "total_seats"},
		{"too many seats", func(r *request.CreateShowtimeRequest) { r.TotalSeats = "209" }, "total_seats"},
		{"empty seats", func(r *request.CreateShowtimeRequest) { r.TotalSeats = "" }, "total_seats"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(req)

			_, err := env.service.Showtime.CreateShowtime(context.Background(), req)
			require.Error(t, err)
			assert.True(t, IsValidation(err))

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}

func TestCreateShowtime_UnknownMovie(t *testing.T) {
	env := newTestEnv(t, utils.CommitModeTransactional, nil)

	_, err := env.service.Showtime.CreateShowtime(context.Background(), &request.CreateShowtimeRequest{
		MovieID:    uuid.NewString(),
		Date:       "2025-12-24",
		Time:       "19:30",
		Screen:     "Studio 1",
		Price:      "10",
		TotalSeats: "8",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

type failingSeatRepo struct {
	repository.SeatRepository
	mock.Mock
}

func (m *failingSeatRepo) CreateBatch(ctx context.Context, seats []*entity.Seat) error {
	args := m.Called(ctx, seats)
	return args.Error(0)
}

func (m *failingSeatRepo) DeleteByShowtimeID(ctx context.Context, showtimeID uuid.UUID) error {
	if err := m.Called(ctx, showtimeID).Error(0); err != nil {
		return err
	}
	return m.SeatRepository.DeleteByShowtimeID(ctx, showtimeID)
}

func TestCreateShowtime_SeatFailureRemovesShowtime(t *testing.T) {
	env := newTestEnv(t, utils.CommitModeTransactional, nil)
	ctx := context.Background()

	seats := &failingSeatRepo{SeatRepository: env.repo.Seat}
	seats.On("CreateBatch", mock.Anything, mock.Anything).Return(errors.New("disk full"))
	seats.On("DeleteByShowtimeID", mock.Anything, mock.Anything).Return(nil)
	env.repo.Seat = seats
	svc := NewShowtimeService(env.repo, zap.NewNop())

	_, err := svc.CreateShowtime(ctx, &request.CreateShowtimeRequest{
		MovieID:    env.movie.ID.String(),
		Date:       "2025-12-24",
		Time:       "21:00",
		Screen:     "Studio 3",
		Price:      "9.5",
		TotalSeats: "16",
	})
	require.Error(t, err)
	assert.False(t, IsValidation(err))

	left, err := env.repo.Showtime.FindByMovieDateTime(ctx, env.movie.ID, "2025-12-24", "21:00")
	require.NoError(t, err)
	assert.Nil(t, left)
	seats.AssertExpectations(t)
}

func TestListShowtimes_LiveAvailability(t *testing.T) {
	env := newTestEnv(t, utils.CommitModeTransactional, nil)
	ctx := context.Background()

	showtimeID, seats := env.showtime(t, "10", "20")
	_, err := env.service.Booking.Checkout(ctx, env.user.ID, env.checkout(showtimeID, 20, seats["A1"], seats["A2"]))
	require.NoError(t, err)

	list, err := env.service.Showtime.ListShowtimes(ctx, env.movie.ID, "2025-12-24")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 18, list[0].AvailableSeats)
	assert.Equal(t, 20, list[0].TotalSeats)

	other, err := env.service.Showtime.ListShowtimes(ctx, env.movie.ID, "2025-12-25")
	require.NoError(t, err)
	assert.Empty(t, other)

	_, err = env.service.Showtime.ListShowtimes(ctx, env.movie.ID, "tomorrow")
	assert.True(t, IsValidation(err))
}

func TestQuote_IgnoresBookedAndUnknownSeats(t *testing.T) {
	env := newTestEnv(t, utils.CommitModeTransactional, nil)
	ctx := context.Background()

	showtimeID, seats := env.showtime(t, "10", "20")
	_, err := env.service.Booking.Checkout(ctx, env.user.ID, env.checkout(showtimeID, 10, seats["B1"]))
	require.NoError(t, err)

	unknown := uuid.NewString()
	quote, err := env.service.Showtime.Quote(ctx, showtimeID, &request.QuoteRequest{
		Toggles: []string{
			seats["A1"].ID.String(),
			seats["C2"].ID.String(),
			seats["B1"].ID.String(),
			unknown,
			seats["A3"].ID.String(),
			seats["A3"].ID.String(),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{seats["A1"].ID.String(), seats["C2"].ID.String()}, quote.SelectedSeatIDs)
	assert.Equal(t, []string{"A1", "C2"}, quote.SeatLabels)
	assert.Equal(t, []string{seats["B1"].ID.String(), unknown}, quote.IgnoredSeatIDs)
	assert.Equal(t, 22.0, quote.TotalPrice)
}

func TestDeleteShowtime_RemovesSeats(t *testing.T) {
	env := newTestEnv(t, utils.CommitModeTransactional, nil)
	ctx := context.Background()

	showtimeID, _ := env.showtime(t, "10", "12")
	require.NoError(t, env.service.Showtime.DeleteShowtime(ctx, showtimeID))

	seats, err := env.repo.Seat.FindByShowtimeID(ctx, showtimeID)
	require.NoError(t, err)
	assert.Empty(t, seats)

	_, err = env.service.Showtime.GetShowtime(ctx, showtimeID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, env.service.Showtime.DeleteShowtime(ctx, showtimeID), ErrNotFound)
}


func TestDeleteShowtime_DeletesSeatsBeforeShowtime(t *testing.T) {
	env := newTestEnv(t, utils.CommitModeTransactional, nil)
	ctx := context.Background()

	showtimeID, _ := env.showtime(t, "10", "12")

	seats := &failingSeatRepo{SeatRepository: env.repo.Seat}
	seats.On("DeleteByShowtimeID", mock.Anything, showtimeID).Return(errors.New("connection reset")).Once()
	seats.On("DeleteByShowtimeID", mock.Anything, showtimeID).Return(nil).Once()
	env.repo.Seat = seats
	svc := NewShowtimeService(env.repo, zap.NewNop())

	err := svc.DeleteShowtime(ctx, showtimeID)
	require.Error(t, err)
	assert.False(t, IsNotFound(err))

	// The showtime survives a failed seat delete, so the call can be repeated.
	_, err = svc.GetShowtime(ctx, showtimeID)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteShowtime(ctx, showtimeID))
	_, err = svc.GetShowtime(ctx, showtimeID)
	assert.ErrorIs(t, err, ErrNotFound)
	seats.AssertNumberOfCalls(t, "DeleteByShowtimeID", 2)
}
