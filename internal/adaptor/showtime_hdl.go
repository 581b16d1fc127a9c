package adaptor

import (
	"net/http"

	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/usecase"
	"cinema-ticketing/pkg/utils"

	"go.uber.org/zap"
)

type ShowtimeHandler struct {
	service usecase.ShowtimeService
	log     *zap.Logger
}

func NewShowtimeHandler(service usecase.ShowtimeService, log *zap.Logger) *ShowtimeHandler {
	return &ShowtimeHandler{
		service: service,
		log:     log.With(zap.String("handler", "showtime")),
	}
}

// CreateShowtime handles POST /api/admin/showtimes
func (h *ShowtimeHandler) CreateShowtime(w http.ResponseWriter, r *http.Request) {
	var req request.CreateShowtimeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.CreateShowtime(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create showtime")
		return
	}

	utils.ResponseCreated(w, "Showtime created successfully", resp)
}

// DeleteShowtime handles DELETE /api/admin/showtimes/{id}
func (h *ShowtimeHandler) DeleteShowtime(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteShowtime(r.Context(), id); err != nil {
		handleServiceError(w, h.log, err, "delete showtime")
		return
	}

	utils.ResponseSuccess(w, "Showtime deleted successfully", nil)
}

// ListShowtimes handles GET /api/movies/{id}/showtimes?date=YYYY-MM-DD
func (h *ShowtimeHandler) ListShowtimes(w http.ResponseWriter, r *http.Request) {
	movieID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	showtimes, err := h.service.ListShowtimes(r.Context(), movieID, r.URL.Query().Get("date"))
	if err != nil {
		handleServiceError(w, h.log, err, "list showtimes")
		return
	}

	utils.ResponseSuccess(w, "success", showtimes)
}

// GetShowtime handles GET /api/showtimes/{id}
func (h *ShowtimeHandler) GetShowtime(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	showtime, err := h.service.GetShowtime(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get showtime")
		return
	}

	utils.ResponseSuccess(w, "Showtime retrieved successfully", showtime)
}

// GetSeatMap handles GET /api/showtimes/{id}/seats
func (h *ShowtimeHandler) GetSeatMap(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	seatMap, err := h.service.GetSeatMap(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get seat map")
		return
	}

	utils.ResponseSuccess(w, "Seats retrieved successfully", seatMap)
}

// Quote handles POST /api/showtimes/{id}/quote
func (h *ShowtimeHandler) Quote(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req request.QuoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	quote, err := h.service.Quote(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "quote seats")
		return
	}

	utils.ResponseSuccess(w, "success", quote)
}
