package seating

import (
	"math"
	"testing"
	"time"

	"cinema-ticketing/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateGrid_TwentySeats(t *testing.T) {
	showtimeID := uuid.New()
	seats, err := GenerateGrid(showtimeID, 10, 20, time.Now())
	require.NoError(t, err)
	require.Len(t, seats, 20)

	type rowSummary struct {
		count int
		typ   entity.SeatType
		price float64
	}
	got := map[string]rowSummary{}
	for _, s := range seats {
		assert.Equal(t, showtimeID, s.ShowtimeID)
		assert.Equal(t, entity.SeatStatusAvailable, s.Status)
		assert.Nil(t, s.BookingID)

		sum := got[s.Row]
		sum.count++
		sum.typ = s.Type
		sum.price = s.Price
		got[s.Row] = sum
	}

	assert.Equal(t, map[string]rowSummary{
		"A": {8, entity.SeatTypeStandard, 10},
		"B": {8, entity.SeatTypeStandard, 10},
		"C": {4, entity.SeatTypePremium, 12},
	}, got)
}

func TestGenerateGrid_RowsAndTotals(t *testing.T) {
	for _, total := range []int{1, 7, 8, 9, 16, 17, 33, 40, 41, 100, MaxSeats} {
		seats, err := GenerateGrid(uuid.New(), 12.5, total, time.Now())
		require.NoError(t, err, "total=%d", total)
		assert.Len(t, seats, total)

		perRow := map[string]int{}
		for _, s := range seats {
			perRow[s.Row]++
		}
		assert.Len(t, perRow, RowCount(total), "total=%d", total)

		sum := 0
		for r := 0; r < RowCount(total); r++ {
			assert.Equal(t, SeatsInRow(total, r), perRow[RowLabel(r)], "total=%d row=%d", total, r)
			sum += SeatsInRow(total, r)
		}
		assert.Equal(t, total, sum)
	}
}

func TestGenerateGrid_TypeAndPriceByRow(t *testing.T) {
	seats, err := GenerateGrid(uuid.New(), 10, 48, time.Now())
	require.NoError(t, err)

	for _, s := range seats {
		r := int(s.Row[0] - 'A')
		switch {
		case r < 2:
			assert.Equal(t, entity.SeatTypeStandard, s.Type)
			assert.Equal(t, 10.0, s.Price)
		case r < 4:
			assert.Equal(t, entity.SeatTypePremium, s.Type)
			assert.Equal(t, 12.0, s.Price)
		default:
			assert.Equal(t, entity.SeatTypeVIP, s.Type)
			assert.Equal(t, 15.0, s.Price)
		}
	}
}

func TestGenerateGrid_SeatNumbersAreOneBased(t *testing.T) {
	seats, err := GenerateGrid(uuid.New(), 10, 11, time.Now())
	require.NoError(t, err)

	labels := make([]string, 0, len(seats))
	for _, s := range seats {
		labels = append(labels, s.Label())
	}
	assert.Equal(t, []string{"A1", "A2", "A3", "A4", "A5", "A6", "A7", "A8", "B1", "B2", "B3"}, labels)
}

func TestGenerateGrid_RejectsBadInput(t *testing.T) {
	tests := []struct {
		name  string
		price float64
		total int
	}{
		{"zero seats", 10, 0},
		{"negative seats", 10, -3},
		{"too many seats", 10, MaxSeats + 1},
		{"zero price", 0, 10},
		{"negative price", -1, 10},
		{"NaN price", math.NaN(), 10},
		{"infinite price", math.Inf(1), 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seats, err := GenerateGrid(uuid.New(), tt.price, tt.total, time.Now())
			assert.Error(t, err)
			assert.Nil(t, seats)
		})
	}
}

func TestPriceFor_RoundsToCents(t *testing.T) {
	assert.Equal(t, 8.39, PriceFor(6.99, entity.SeatTypePremium))
	assert.Equal(t, 10.47, PriceFor(6.98, entity.SeatTypeVIP))
	assert.Equal(t, 6.99, PriceFor(6.99, entity.SeatTypeStandard))
}
