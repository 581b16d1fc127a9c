// Package seating holds the seat-grid layout rules and the client-side seat
// selection state machine. Nothing here touches storage.
package seating

import (
	"fmt"
	"math"
	"time"

	"cinema-ticketing/internal/data/entity"

	"github.com/google/uuid"
)

const (
	// SeatsPerRow is the fixed layout width of every screen.
	SeatsPerRow = 8
	// MaxRows keeps row labels within a single letter A..Z.
	MaxRows = 26
	// MaxSeats is the largest grid that can be labelled.
	MaxSeats = SeatsPerRow * MaxRows
)

var multipliers = map[entity.SeatType]float64{
	entity.SeatTypeStandard: 1.0,
	entity.SeatTypePremium:  1.2,
	entity.SeatTypeVIP:      1.5,
}

// RowCount returns ceil(totalSeats / SeatsPerRow).
func RowCount(totalSeats int) int {
	if totalSeats <= 0 {
		return 0
	}
	return (totalSeats + SeatsPerRow - 1) / SeatsPerRow
}

// SeatsInRow returns how many seats row r holds. Every row is full except
// the last, which takes the remainder.
func SeatsInRow(totalSeats, r int) int {
	rows := RowCount(totalSeats)
	if r < 0 || r >= rows {
		return 0
	}
	if r < rows-1 {
		return SeatsPerRow
	}
	if rem := totalSeats % SeatsPerRow; rem != 0 {
		return rem
	}
	return SeatsPerRow
}

// RowLabel maps a 0-based row index to its letter.
func RowLabel(r int) string {
	return string(rune('A' + r))
}

func TypeForRow(r int) entity.SeatType {
	switch {
	case r < 2:
		return entity.SeatTypeStandard
	case r < 4:
		return entity.SeatTypePremium
	default:
		return entity.SeatTypeVIP
	}
}

func Multiplier(t entity.SeatType) float64 {
	if m, ok := multipliers[t]; ok {
		return m
	}
	return 1.0
}

// PriceFor returns the type-adjusted seat price rounded to cents.
func PriceFor(unitPrice float64, t entity.SeatType) float64 {
	return RoundCents(unitPrice * Multiplier(t))
}

func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// GenerateGrid lays out totalSeats seats for a showtime, row by row.
func GenerateGrid(showtimeID uuid.UUID, unitPrice float64, totalSeats int, now time.Time) ([]*entity.Seat, error) {
	if totalSeats <= 0 {
		return nil, fmt.Errorf("total seats must be positive, got %d", totalSeats)
	}
	if totalSeats > MaxSeats {
		return nil, fmt.Errorf("total seats %d exceeds maximum of %d", totalSeats, MaxSeats)
	}
	if !(unitPrice > 0) || math.IsInf(unitPrice, 1) {
		return nil, fmt.Errorf("unit price must be positive, got %v", unitPrice)
	}

	seats := make([]*entity.Seat, 0, totalSeats)
	for r := 0; r < RowCount(totalSeats); r++ {
		seatType := TypeForRow(r)
		price := PriceFor(unitPrice, seatType)
		for n := 1; n <= SeatsInRow(totalSeats, r); n++ {
			seats = append(seats, &entity.Seat{
				Record:     entity.NewRecord(now),
				ShowtimeID: showtimeID,
				Row:        RowLabel(r),
				Number:     n,
				Status:     entity.SeatStatusAvailable,
				Type:       seatType,
				Price:      price,
			})
		}
	}

	return seats, nil
}
