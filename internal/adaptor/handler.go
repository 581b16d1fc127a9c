package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"cinema-ticketing/internal/usecase"
	"cinema-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	Auth      *AuthHandler
	Movie     *MovieHandler
	Showtime  *ShowtimeHandler
	Booking   *BookingHandler
	Dashboard *DashboardHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(service.Auth, log),
		Movie:     NewMovieHandler(service.Movie, log),
		Showtime:  NewShowtimeHandler(service.Showtime, log),
		Booking:   NewBookingHandler(service.Booking, log),
		Dashboard: NewDashboardHandler(service.Dashboard, log),
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}

func uuidParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid "+name, map[string]string{name: "Must be a valid UUID"})
		return uuid.Nil, false
	}
	return id, true
}

// handleServiceError maps service errors onto the response envelope.
// Anything unclassified is logged and reported as a 500 without detail.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var verr *usecase.ValidationError

	switch {
	case errors.As(err, &verr):
		log.Warn(operation+" validation failed", zap.Any("errors", verr.Fields))
		utils.ResponseBadRequest(w, verr.Message, verr.Fields)

	case errors.Is(err, usecase.ErrInvalidCredentials):
		utils.ResponseUnauthorized(w, "Invalid email or password")

	case errors.Is(err, usecase.ErrUnauthorized):
		utils.ResponseUnauthorized(w, "Invalid or expired session")

	case errors.Is(err, usecase.ErrForbidden):
		utils.ResponseForbidden(w, "Access denied")

	case usecase.IsNotFound(err):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrSeatUnavailable):
		log.Warn(operation+" failed - seats unavailable", zap.Error(err))
		utils.ResponseConflict(w, "One or more seats are no longer available")

	case usecase.IsConflict(err):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
