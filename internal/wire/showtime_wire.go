package wire

import (
	"cinema-ticketing/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireShowtime(r chi.Router, showtimeHandler *adaptor.ShowtimeHandler, g guards) {
	r.Get("/api/movies/{id}/showtimes", showtimeHandler.ListShowtimes)

	r.Route("/api/showtimes/{id}", func(r chi.Router) {
		r.Get("/", showtimeHandler.GetShowtime)
		r.Get("/seats", showtimeHandler.GetSeatMap)
		r.Post("/quote", showtimeHandler.Quote)
	})

	r.Route("/api/admin/showtimes", func(r chi.Router) {
		r.Use(g.session)
		r.Use(g.admin)

		r.Post("/", showtimeHandler.CreateShowtime)
		r.Delete("/{id}", showtimeHandler.DeleteShowtime)
	})
}
