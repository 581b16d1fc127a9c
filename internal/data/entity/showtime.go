package entity

import "github.com/google/uuid"

const (
	ShowDateLayout = "2006-01-02"
	ShowTimeLayout = "15:04"
)

// Showtime is one screening of a movie. AvailableSeats is written once at
// creation; live availability is always derived from the seat rows.
type Showtime struct {
	CreatedRecord
	MovieID        uuid.UUID `db:"movie_id"`
	Date           string    `db:"show_date"` // YYYY-MM-DD
	Time           string    `db:"show_time"` // HH:mm
	Screen         string    `db:"screen"`
	Price          float64   `db:"price"`
	TotalSeats     int       `db:"total_seats"`
	AvailableSeats int       `db:"available_seats"`
}
