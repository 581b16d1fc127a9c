package wire

import (
	"net/http"

	"cinema-ticketing/internal/adaptor"
	"cinema-ticketing/internal/data/lock"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/usecase"
	"cinema-ticketing/pkg/middleware"
	"cinema-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// guards are the per-route middleware chains shared by the route files.
type guards struct {
	session func(http.Handler) http.Handler
	admin   func(http.Handler) http.Handler
}

// Wiring builds services, handlers and the router on top of a store.
func Wiring(repo *repository.Repository, locker lock.SeatLocker, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, locker, config, logger)
	handler := adaptor.NewHandler(service, logger)

	return &App{
		Router:  setupRouter(handler, service, logger),
		Service: service,
	}
}

func setupRouter(handler *adaptor.Handler, service *usecase.Service, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	g := guards{
		session: middleware.AuthSession(service.Auth, logger),
		admin:   middleware.Admin(logger),
	}

	wireAuth(r, handler.Auth, g)
	wireMovie(r, handler.Movie, g)
	wireShowtime(r, handler.Showtime, g)
	wireBooking(r, handler.Booking, g)
	wireDashboard(r, handler.Dashboard, g)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseSuccess(w, "OK", nil)
	})

	return r
}
