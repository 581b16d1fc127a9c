package entity

import (
	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodPayPal PaymentMethod = "paypal"
)

type Booking struct {
	Record
	Reference     string        `db:"reference"`
	UserID        uuid.UUID     `db:"user_id"`
	MovieID       uuid.UUID     `db:"movie_id"`
	ShowtimeID    uuid.UUID     `db:"showtime_id"`
	SeatIDs       []uuid.UUID   `db:"seat_ids"`
	TotalPrice    float64       `db:"total_price"`
	PaymentMethod PaymentMethod `db:"payment_method"`
	Status        BookingStatus `db:"status"`
}
