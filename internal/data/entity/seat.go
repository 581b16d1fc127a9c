package entity

import (
	"strconv"

	"github.com/google/uuid"
)

type SeatStatus string

const (
	SeatStatusAvailable SeatStatus = "available"
	SeatStatusBooked    SeatStatus = "booked"
)

type SeatType string

const (
	SeatTypeStandard SeatType = "standard"
	SeatTypePremium  SeatType = "premium"
	SeatTypeVIP      SeatType = "vip"
)

type Seat struct {
	Record
	ShowtimeID uuid.UUID  `db:"showtime_id"`
	Row        string     `db:"seat_row"`    // A, B, C, etc.
	Number     int        `db:"seat_number"` // 1-based within the row
	Status     SeatStatus `db:"status"`
	Type       SeatType   `db:"seat_type"`
	Price      float64    `db:"price"`
	BookingID  *uuid.UUID `db:"booking_id"`
}

// Label returns the display name of the seat, e.g. "C4".
func (s *Seat) Label() string {
	return s.Row + strconv.Itoa(s.Number)
}

func (s *Seat) IsBooked() bool {
	return s.Status == SeatStatusBooked
}
