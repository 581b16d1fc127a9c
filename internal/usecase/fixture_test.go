package usecase

import (
	"context"
	"testing"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/lock"
	"cinema-ticketing/internal/data/memstore"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type testEnv struct {
	repo    *repository.Repository
	service *Service
	user    *entity.User
	movie   *entity.Movie
}

func testConfig() *utils.Config {
	return &utils.Config{
		Session: utils.SessionConfig{ExpiryHours: 24, BcryptCost: bcrypt.MinCost},
		Booking: utils.BookingConfig{CommitMode: utils.CommitModeTransactional},
	}
}

func newTestEnv(t *testing.T, commitMode string, locker lock.SeatLocker) *testEnv {
	t.Helper()

	repo := memstore.NewRepository(memstore.New(), commitMode, zap.NewNop())
	now := time.Now()

	user := &entity.User{
		Record: entity.NewRecord(now),
		Name:   "Dewi",
		Email:  "dewi@example.com",
		Role:   entity.RoleCustomer,
	}
	require.NoError(t, repo.User.Create(context.Background(), user))

	movie := &entity.Movie{
		Record:    entity.NewRecord(now),
		Title:     "The Long Harbour",
		PosterURL: "https://img.example.com/harbour.jpg",
	}
	require.NoError(t, repo.Movie.Create(context.Background(), movie))

	return &testEnv{
		repo:    repo,
		service: NewService(repo, locker, testConfig(), zap.NewNop()),
		user:    user,
		movie:   movie,
	}
}

// showtime creates a showtime through the service and returns it with its
// seats keyed by label.
func (e *testEnv) showtime(t *testing.T, price string, seats string) (uuid.UUID, map[string]*entity.Seat) {
	t.Helper()
	ctx := context.Background()

	resp, err := e.service.Showtime.CreateShowtime(ctx, &request.CreateShowtimeRequest{
		MovieID:    e.movie.ID.String(),
		Date:       "2025-12-24",
		Time:       "19:30",
		Screen:     "Studio 2",
		Price:      request.NumericString(price),
		TotalSeats: request.NumericString(seats),
	})
	require.NoError(t, err)

	id := uuid.MustParse(resp.Showtime.ID)
	list, err := e.repo.Seat.FindByShowtimeID(ctx, id)
	require.NoError(t, err)

	byLabel := make(map[string]*entity.Seat, len(list))
	for _, s := range list {
		byLabel[s.Label()] = s
	}
	return id, byLabel
}

func (e *testEnv) checkout(showtimeID uuid.UUID, total float64, seats ...*entity.Seat) *request.CheckoutRequest {
	req := &request.CheckoutRequest{
		MovieID:       e.movie.ID.String(),
		ShowtimeID:    showtimeID.String(),
		TotalPrice:    total,
		PaymentMethod: string(entity.PaymentMethodPayPal),
	}
	for _, s := range seats {
		req.SeatIDs = append(req.SeatIDs, s.ID.String())
	}
	return req
}
