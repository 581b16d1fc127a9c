package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/dto/response"

	"go.uber.org/zap"
)

const (
	// recentWindow bounds the "bookings today" counter.
	recentWindow = 24 * time.Hour
	latestLimit  = 5
)

type DashboardService interface {
	// Dashboard counts every booking regardless of status, cancelled ones included.
	Dashboard(ctx context.Context) (*response.DashboardResponse, error)
}

type dashboardService struct {
	repo *repository.Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewDashboardService(repo *repository.Repository, log *zap.Logger) DashboardService {
	return &dashboardService{
		repo: repo,
		log:  log.With(zap.String("service", "dashboard")),
		now:  time.Now,
	}
}

func (s *dashboardService) Dashboard(ctx context.Context) (*response.DashboardResponse, error) {
	now := s.now()

	movies, err := s.repo.Movie.Stats(ctx, now)
	if err != nil {
		s.log.Error("Failed to load movie stats", zap.Error(err))
		return nil, fmt.Errorf("movie stats: %w", err)
	}

	bookings, err := s.repo.Booking.Stats(ctx, now.Add(-recentWindow))
	if err != nil {
		s.log.Error("Failed to load booking stats", zap.Error(err))
		return nil, fmt.Errorf("booking stats: %w", err)
	}

	latest, err := s.repo.Booking.Search(ctx, repository.BookingFilter{Limit: latestLimit})
	if err != nil {
		s.log.Error("Failed to load latest bookings", zap.Error(err))
		return nil, fmt.Errorf("latest bookings: %w", err)
	}
	resolved, err := resolveBookings(ctx, s.repo, latest)
	if err != nil {
		return nil, err
	}

	return &response.DashboardResponse{
		TotalMovies:    movies.Total,
		ActiveMovies:   movies.Active,
		UpcomingMovies: movies.Upcoming,
		TotalBookings:  bookings.Total,
		RecentBookings: bookings.Recent,
		TotalRevenue:   math.Round(bookings.Revenue*100) / 100,
		LatestBookings: resolved,
	}, nil
}
