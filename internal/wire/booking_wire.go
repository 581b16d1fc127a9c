package wire

import (
	"cinema-ticketing/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler, g guards) {
	r.Group(func(r chi.Router) {
		r.Use(g.session)
		r.Post("/api/bookings", bookingHandler.Checkout)
		r.Get("/api/user/bookings", bookingHandler.GetUserBookings)
		r.Get("/api/user/bookings/{id}/qr", bookingHandler.TicketQR)
	})

	r.Route("/api/admin/bookings", func(r chi.Router) {
		r.Use(g.session)
		r.Use(g.admin)

		r.Get("/", bookingHandler.ListBookings)
		r.Get("/{id}", bookingHandler.GetBooking)
		r.Put("/{id}/cancel", bookingHandler.CancelBooking)
	})
}
