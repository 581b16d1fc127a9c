package wire

import (
	"cinema-ticketing/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler, g guards) {
	r.Post("/api/register", authHandler.Register)
	r.Post("/api/login", authHandler.Login)

	r.Group(func(r chi.Router) {
		r.Use(g.session)
		r.Post("/api/logout", authHandler.Logout)
		r.Get("/api/me", authHandler.Me)
		r.Put("/api/me", authHandler.UpdateProfile)
		r.Put("/api/me/password", authHandler.ChangePassword)
	})
}
