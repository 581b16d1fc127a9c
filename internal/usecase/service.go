package usecase

import (
	"cinema-ticketing/internal/data/lock"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth      AuthService
	Movie     MovieService
	Showtime  ShowtimeService
	Booking   BookingService
	Dashboard DashboardService
}

func NewService(repo *repository.Repository, locker lock.SeatLocker, config *utils.Config, log *zap.Logger) *Service {
	if locker == nil {
		locker = lock.NewNoopSeatLocker()
	}

	return &Service{
		Auth:      NewAuthService(repo, config, log),
		Movie:     NewMovieService(repo, log),
		Showtime:  NewShowtimeService(repo, log),
		Booking:   NewBookingService(repo, locker, log),
		Dashboard: NewDashboardService(repo, log),
	}
}
