package repository

import (
	"context"
	"errors"
	"testing"

	"cinema-ticketing/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type mockBookingRepo struct {
	BookingRepository
	mock.Mock
}

func (m *mockBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	return m.Called(ctx, booking).Error(0)
}

type mockUserRepo struct {
	UserRepository
	mock.Mock
}

func (m *mockUserRepo) AppendBooking(ctx context.Context, userID, bookingID uuid.UUID) error {
	return m.Called(ctx, userID, bookingID).Error(0)
}

type mockSeatRepo struct {
	SeatRepository
	mock.Mock
}

func (m *mockSeatRepo) MarkBooked(ctx context.Context, seatID, bookingID uuid.UUID) error {
	return m.Called(ctx, seatID, bookingID).Error(0)
}

func newBooking(seats int) *entity.Booking {
	b := &entity.Booking{
		Record:     entity.Record{ID: uuid.New()},
		Reference:  "AB12CD34",
		UserID:     uuid.New(),
		ShowtimeID: uuid.New(),
		Status:     entity.BookingStatusConfirmed,
	}
	for i := 0; i < seats; i++ {
		b.SeatIDs = append(b.SeatIDs, uuid.New())
	}
	return b
}

func TestSequentialCommitter_WritesInOrder(t *testing.T) {
	bookings, users, seats := new(mockBookingRepo), new(mockUserRepo), new(mockSeatRepo)
	booking := newBooking(3)

	var order []string
	bookings.On("Create", mock.Anything, booking).Return(nil).Run(func(mock.Arguments) { order = append(order, "booking") })
	users.On("AppendBooking", mock.Anything, booking.UserID, booking.ID).Return(nil).Run(func(mock.Arguments) { order = append(order, "user") })
	for _, id := range booking.SeatIDs {
		seats.On("MarkBooked", mock.Anything, id, booking.ID).Return(nil).Run(func(mock.Arguments) { order = append(order, "seat") }).Once()
	}

	c := NewSequentialCommitter(bookings, users, seats, zap.NewNop())
	assert.NoError(t, c.Commit(context.Background(), booking))

	assert.Equal(t, []string{"booking", "user", "seat", "seat", "seat"}, order)
	bookings.AssertExpectations(t)
	users.AssertExpectations(t)
	seats.AssertExpectations(t)
}

func TestSequentialCommitter_StopsOnSeatFailureWithoutUndo(t *testing.T) {
	bookings, users, seats := new(mockBookingRepo), new(mockUserRepo), new(mockSeatRepo)
	booking := newBooking(3)
	boom := errors.New("connection reset")

	bookings.On("Create", mock.Anything, booking).Return(nil)
	users.On("AppendBooking", mock.Anything, booking.UserID, booking.ID).Return(nil)
	seats.On("MarkBooked", mock.Anything, booking.SeatIDs[0], booking.ID).Return(nil)
	seats.On("MarkBooked", mock.Anything, booking.SeatIDs[1], booking.ID).Return(boom)

	c := NewSequentialCommitter(bookings, users, seats, zap.NewNop())
	err := c.Commit(context.Background(), booking)

	assert.ErrorIs(t, err, boom)
	seats.AssertNotCalled(t, "MarkBooked", mock.Anything, booking.SeatIDs[2], booking.ID)
}

func TestSequentialCommitter_BookingFailureSkipsEverything(t *testing.T) {
	bookings, users, seats := new(mockBookingRepo), new(mockUserRepo), new(mockSeatRepo)
	booking := newBooking(2)

	bookings.On("Create", mock.Anything, booking).Return(ErrDuplicate)

	c := NewSequentialCommitter(bookings, users, seats, zap.NewNop())
	assert.ErrorIs(t, c.Commit(context.Background(), booking), ErrDuplicate)

	users.AssertNotCalled(t, "AppendBooking", mock.Anything, mock.Anything, mock.Anything)
	seats.AssertNotCalled(t, "MarkBooked", mock.Anything, mock.Anything, mock.Anything)
}
