package request

type CardDetails struct {
	Number     string `json:"card_number" validate:"required,cardnumber"`
	HolderName string `json:"card_holder" validate:"required,max=100"`
	Expiry     string `json:"expiry" validate:"required,cardexpiry"`
	CVV        string `json:"cvv" validate:"required,len=3,number"`
}

type CheckoutRequest struct {
	MovieID       string       `json:"movie_id" validate:"required,uuid"`
	ShowtimeID    string       `json:"showtime_id" validate:"required,uuid"`
	SeatIDs       []string     `json:"seat_ids" validate:"required,min=1,unique,dive,uuid"`
	TotalPrice    float64      `json:"total_price" validate:"gt=0"`
	PaymentMethod string       `json:"payment_method" validate:"required,oneof=card paypal"`
	// Card is checked separately, only when PaymentMethod is card.
	Card          *CardDetails `json:"card,omitempty" validate:"-"`
}

type BookingListRequest struct {
	PaginatedRequest
	Query string
}
