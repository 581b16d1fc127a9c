package request

import (
	"bytes"
	"encoding/json"
)

// NumericString accepts a JSON string or a JSON number and keeps the raw
// text so the service decides how to parse it.
type NumericString string

func (n *NumericString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = NumericString(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*n = NumericString(num.String())
	return nil
}

type CreateShowtimeRequest struct {
	MovieID    string        `json:"movie_id" validate:"required,uuid"`
	Date       string        `json:"date" validate:"required,showdate"`
	Time       string        `json:"time" validate:"required,showtime"`
	Screen     string        `json:"screen" validate:"required,max=50"`
	Price      NumericString `json:"price" validate:"required"`
	TotalSeats NumericString `json:"total_seats" validate:"required"`
}

// QuoteRequest replays seat taps against the current seat map.
type QuoteRequest struct {
	Toggles []string `json:"toggles" validate:"dive,uuid"`
}
