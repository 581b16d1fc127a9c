package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCardNumber(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"4111 1111 1111 1111", true},
		{"4111111111111111", true},
		{"4111-1111-1111-1111", true},
		{"4111 1111 1111 111", false},
		{"4111 1111 1111 11111", false},
		{"4111 1111 1111 111a", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsCardNumber(tt.in), tt.in)
	}
}

func TestIsCardExpiry(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"12/29", true},
		{"01/30", true},
		{"00/29", false},
		{"13/29", false},
		{"1/29", false},
		{"12/2029", false},
		{"12-29", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsCardExpiry(tt.in), tt.in)
	}
}

func TestValidateStruct_UsesJSONNames(t *testing.T) {
	type payload struct {
		Date   string `json:"date" validate:"required,showdate"`
		Time   string `json:"time" validate:"required,showtime"`
		Number string `json:"card_number" validate:"cardnumber"`
		Expiry string `json:"expiry" validate:"cardexpiry"`
	}

	errs := ValidateStruct(payload{Date: "2025-13-01", Time: "25:00", Number: "4111", Expiry: "99/99"})
	assert.Equal(t, map[string]string{
		"date":        "Date must be YYYY-MM-DD",
		"time":        "Time must be HH:mm",
		"card_number": "Card number must be 16 digits",
		"expiry":      "Expiry must be MM/YY",
	}, errs)

	assert.Nil(t, ValidateStruct(payload{Date: "2025-12-24", Time: "19:30", Number: "4111 1111 1111 1111", Expiry: "12/29"}))
}

func TestFormatValidationErrors_Sorted(t *testing.T) {
	got := FormatValidationErrors(map[string]string{"b": "two", "a": "one"})
	assert.Equal(t, "a: one; b: two", got)
}
