package wire

import (
	"cinema-ticketing/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireDashboard(r chi.Router, dashboardHandler *adaptor.DashboardHandler, g guards) {
	r.Group(func(r chi.Router) {
		r.Use(g.session)
		r.Use(g.admin)
		r.Get("/api/admin/dashboard", dashboardHandler.Dashboard)
	})
}
