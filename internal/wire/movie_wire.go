package wire

import (
	"cinema-ticketing/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireMovie(r chi.Router, movieHandler *adaptor.MovieHandler, g guards) {
	r.Get("/api/movies", movieHandler.ListMovies)
	r.Get("/api/movies/{id}", movieHandler.GetMovie)

	r.Route("/api/admin/movies", func(r chi.Router) {
		r.Use(g.session)
		r.Use(g.admin)

		r.Post("/", movieHandler.CreateMovie)
		r.Put("/{id}", movieHandler.UpdateMovie)
		r.Delete("/{id}", movieHandler.DeleteMovie)
	})
}
