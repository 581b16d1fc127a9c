package seating

import (
	"errors"
	"math"
	"sort"

	"cinema-ticketing/internal/data/entity"

	"github.com/google/uuid"
)

var ErrEmptySelection = errors.New("please select at least one seat")

// Row is one row of the seat map, seats ordered by number.
type Row struct {
	Label string         `json:"row"`
	Seats []*entity.Seat `json:"seats"`
}

// Checkout is what a non-empty selection hands to payment.
type Checkout struct {
	SeatIDs    []uuid.UUID
	TotalPrice float64
}

// Selection tracks which available seats of one showtime a customer has
// picked. It is not safe for concurrent use.
type Selection struct {
	seats    map[uuid.UUID]*entity.Seat
	rows     []Row
	selected []uuid.UUID
	index    map[uuid.UUID]int
}

func NewSelection(seats []*entity.Seat) *Selection {
	s := &Selection{
		seats: make(map[uuid.UUID]*entity.Seat, len(seats)),
		index: make(map[uuid.UUID]int),
	}

	byRow := make(map[string][]*entity.Seat)
	for _, seat := range seats {
		if seat == nil {
			continue
		}
		s.seats[seat.ID] = seat
		byRow[seat.Row] = append(byRow[seat.Row], seat)
	}

	labels := make([]string, 0, len(byRow))
	for label := range byRow {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	for _, label := range labels {
		rowSeats := byRow[label]
		sort.Slice(rowSeats, func(i, j int) bool {
			return rowSeats[i].Number < rowSeats[j].Number
		})
		s.rows = append(s.rows, Row{Label: label, Seats: rowSeats})
	}

	return s
}

func (s *Selection) Rows() []Row {
	return s.rows
}

// Toggle flips the seat in or out of the selection. Booked and unknown seats
// are ignored; the return value reports whether anything changed.
func (s *Selection) Toggle(id uuid.UUID) bool {
	seat, ok := s.seats[id]
	if !ok || seat.IsBooked() {
		return false
	}

	if i, picked := s.index[id]; picked {
		s.selected = append(s.selected[:i], s.selected[i+1:]...)
		delete(s.index, id)
		for j := i; j < len(s.selected); j++ {
			s.index[s.selected[j]] = j
		}
		return true
	}

	s.index[id] = len(s.selected)
	s.selected = append(s.selected, id)
	return true
}

func (s *Selection) IsSelected(id uuid.UUID) bool {
	_, ok := s.index[id]
	return ok
}

// SelectedIDs returns the selection in the order seats were picked.
func (s *Selection) SelectedIDs() []uuid.UUID {
	out := make([]uuid.UUID, len(s.selected))
	copy(out, s.selected)
	return out
}

func (s *Selection) Selected() []*entity.Seat {
	out := make([]*entity.Seat, 0, len(s.selected))
	for _, id := range s.selected {
		out = append(out, s.seats[id])
	}
	return out
}

// Total sums seat prices in whole cents so repeated toggles never drift.
func (s *Selection) Total() float64 {
	var cents int64
	for _, id := range s.selected {
		cents += int64(math.Round(s.seats[id].Price * 100))
	}
	return float64(cents) / 100
}

func (s *Selection) Continue() (*Checkout, error) {
	if len(s.selected) == 0 {
		return nil, ErrEmptySelection
	}
	return &Checkout{
		SeatIDs:    s.SelectedIDs(),
		TotalPrice: s.Total(),
	}, nil
}
