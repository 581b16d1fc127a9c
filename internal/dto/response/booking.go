package response

import (
	"time"

	"cinema-ticketing/internal/data/entity"
)

const (
	UnknownMovie = "Unknown Movie"
	UnknownUser  = "Unknown User"
)

type CheckoutResponse struct {
	BookingID  string  `json:"booking_id"`
	Reference  string  `json:"reference"`
	TotalPrice float64 `json:"total_price"`
}

// BookingResponse is a booking with its references resolved. Missing
// movies, users or showtimes are shown with placeholders.
type BookingResponse struct {
	ID            string               `json:"id"`
	Reference     string               `json:"reference"`
	UserID        string               `json:"user_id"`
	UserEmail     string               `json:"user_email"`
	UserName      string               `json:"user_name"`
	MovieID       string               `json:"movie_id"`
	MovieTitle    string               `json:"movie_title"`
	PosterURL     string               `json:"poster_url,omitempty"`
	ShowtimeID    string               `json:"showtime_id"`
	ShowDate      string               `json:"show_date"`
	ShowTime      string               `json:"show_time"`
	Screen        string               `json:"screen"`
	SeatIDs       []string             `json:"seat_ids"`
	SeatLabels    []string             `json:"seat_labels"`
	TotalPrice    float64              `json:"total_price"`
	PaymentMethod entity.PaymentMethod `json:"payment_method"`
	Status        entity.BookingStatus `json:"status"`
	CreatedAt     time.Time            `json:"created_at"`
}

func BookingToResponse(b *entity.Booking, user *entity.User, movie *entity.Movie, st *entity.Showtime, seats []*entity.Seat) BookingResponse {
	resp := BookingResponse{
		ID:            b.ID.String(),
		Reference:     b.Reference,
		UserID:        b.UserID.String(),
		UserName:      UnknownUser,
		MovieID:       b.MovieID.String(),
		MovieTitle:    UnknownMovie,
		ShowtimeID:    b.ShowtimeID.String(),
		SeatIDs:       make([]string, 0, len(b.SeatIDs)),
		SeatLabels:    make([]string, 0, len(seats)),
		TotalPrice:    b.TotalPrice,
		PaymentMethod: b.PaymentMethod,
		Status:        b.Status,
		CreatedAt:     b.CreatedAt,
	}

	for _, id := range b.SeatIDs {
		resp.SeatIDs = append(resp.SeatIDs, id.String())
	}
	if user != nil {
		resp.UserEmail = user.Email
		resp.UserName = user.Name
	}
	if movie != nil {
		resp.MovieTitle = movie.Title
		resp.PosterURL = movie.PosterURL
	}
	if st != nil {
		resp.ShowDate = st.Date
		resp.ShowTime = st.Time
		resp.Screen = st.Screen
	}
	for _, s := range seats {
		resp.SeatLabels = append(resp.SeatLabels, s.Label())
	}

	return resp
}
