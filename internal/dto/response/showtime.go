package response

import (
	"cinema-ticketing/internal/data/entity"
)

type ShowtimeResponse struct {
	ID             string  `json:"id"`
	MovieID        string  `json:"movie_id"`
	Date           string  `json:"date"`
	Time           string  `json:"time"`
	Screen         string  `json:"screen"`
	Price          float64 `json:"price"`
	TotalSeats     int     `json:"total_seats"`
	AvailableSeats int     `json:"available_seats"`
}

// ShowtimeToResponse reports available as the live count derived from the
// seats, not the stored counter.
func ShowtimeToResponse(st *entity.Showtime, available int) ShowtimeResponse {
	return ShowtimeResponse{
		ID:             st.ID.String(),
		MovieID:        st.MovieID.String(),
		Date:           st.Date,
		Time:           st.Time,
		Screen:         st.Screen,
		Price:          st.Price,
		TotalSeats:     st.TotalSeats,
		AvailableSeats: available,
	}
}

type CreateShowtimeResponse struct {
	Showtime   ShowtimeResponse `json:"showtime"`
	SeatsAdded int              `json:"seats_added"`
}

type SeatResponse struct {
	ID     string            `json:"id"`
	Label  string            `json:"label"`
	Row    string            `json:"row"`
	Number int               `json:"number"`
	Status entity.SeatStatus `json:"status"`
	Type   entity.SeatType   `json:"type"`
	Price  float64           `json:"price"`
}

func SeatToResponse(s *entity.Seat) SeatResponse {
	return SeatResponse{
		ID:     s.ID.String(),
		Label:  s.Label(),
		Row:    s.Row,
		Number: s.Number,
		Status: s.Status,
		Type:   s.Type,
		Price:  s.Price,
	}
}

type SeatRowResponse struct {
	Row   string         `json:"row"`
	Seats []SeatResponse `json:"seats"`
}

type SeatMapResponse struct {
	Showtime ShowtimeResponse  `json:"showtime"`
	Rows     []SeatRowResponse `json:"rows"`
}

type QuoteResponse struct {
	SelectedSeatIDs []string `json:"selected_seat_ids"`
	SeatLabels      []string `json:"seat_labels"`
	IgnoredSeatIDs  []string `json:"ignored_seat_ids"`
	TotalPrice      float64  `json:"total_price"`
}
