package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/lock"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/dto/response"
	"cinema-ticketing/internal/seating"
	"cinema-ticketing/pkg/utils"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

// priceTolerance is how far a client total may drift from the server total.
const priceTolerance = 0.005

type BookingService interface {
	Checkout(ctx context.Context, userID uuid.UUID, req *request.CheckoutRequest) (*response.CheckoutResponse, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID) ([]response.BookingResponse, error)
	ListBookings(ctx context.Context, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetBooking(ctx context.Context, id uuid.UUID) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, id uuid.UUID) (*response.BookingResponse, error)
	// TicketQR renders the booking as a PNG QR code for the gate scanner.
	TicketQR(ctx context.Context, userID, bookingID uuid.UUID) ([]byte, error)
}

type bookingService struct {
	repo   *repository.Repository
	locker lock.SeatLocker
	log    *zap.Logger
	now    func() time.Time
}

func NewBookingService(repo *repository.Repository, locker lock.SeatLocker, log *zap.Logger) BookingService {
	return &bookingService{
		repo:   repo,
		locker: locker,
		log:    log.With(zap.String("service", "booking")),
		now:    time.Now,
	}
}

func (s *bookingService) Checkout(ctx context.Context, userID uuid.UUID, req *request.CheckoutRequest) (*response.CheckoutResponse, error) {
	// 1. Request shape, payment details included. Nothing is written on failure.
	if errs := validateCheckout(req); len(errs) > 0 {
		s.log.Warn("Checkout validation failed", zap.Any("errors", errs), zap.String("user_id", userID.String()))
		return nil, NewValidationError("Validation failed", errs)
	}

	showtimeID := uuid.MustParse(req.ShowtimeID)
	movieID := uuid.MustParse(req.MovieID)
	seatIDs := make([]uuid.UUID, 0, len(req.SeatIDs))
	for _, raw := range req.SeatIDs {
		seatIDs = append(seatIDs, uuid.MustParse(raw))
	}

	// 2. Showtime and seats.
	showtime, err := s.repo.Showtime.FindByID(ctx, showtimeID)
	if err != nil {
		s.log.Error("Failed to find showtime", zap.Error(err), zap.String("showtime_id", req.ShowtimeID))
		return nil, fmt.Errorf("find showtime %s: %w", showtimeID, err)
	}
	if showtime == nil {
		return nil, fmt.Errorf("showtime %s: %w", showtimeID, ErrNotFound)
	}
	if showtime.MovieID != movieID {
		return nil, fieldError("movie_id", "Does not match the showtime")
	}

	seats, err := s.repo.Seat.FindByIDs(ctx, seatIDs)
	if err != nil {
		s.log.Error("Failed to load seats", zap.Error(err), zap.String("showtime_id", req.ShowtimeID))
		return nil, fmt.Errorf("load seats: %w", err)
	}
	if len(seats) != len(seatIDs) {
		return nil, fieldError("seat_ids", "Contains unknown seats")
	}
	for _, seat := range seats {
		if seat.ShowtimeID != showtimeID {
			return nil, fieldError("seat_ids", "Contains seats of another showtime")
		}
		if seat.IsBooked() {
			return nil, fmt.Errorf("seat %s: %w", seat.Label(), ErrSeatUnavailable)
		}
	}

	// 3. Server-side total.
	selection := seating.NewSelection(seats)
	for _, id := range seatIDs {
		selection.Toggle(id)
	}
	checkout, err := selection.Continue()
	if err != nil {
		return nil, fieldError("seat_ids", err.Error())
	}
	if math.Abs(checkout.TotalPrice-req.TotalPrice) > priceTolerance {
		s.log.Warn("Checkout total mismatch",
			zap.Float64("expected", checkout.TotalPrice),
			zap.Float64("got", req.TotalPrice))
		return nil, fieldError("total_price", fmt.Sprintf("Does not match the seat prices (%.2f)", checkout.TotalPrice))
	}

	// 4. Seat locks.
	record := entity.NewRecord(s.now())
	owner := record.ID.String()
	locked, err := s.locker.Lock(ctx, owner, seatIDs)
	if err != nil {
		s.log.Error("Failed to lock seats", zap.Error(err), zap.String("booking_id", owner))
		return nil, fmt.Errorf("lock seats: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("seats are being booked: %w", ErrSeatUnavailable)
	}
	defer func() {
		if err := s.locker.Unlock(context.WithoutCancel(ctx), owner, seatIDs); err != nil {
			s.log.Warn("Failed to release seat locks", zap.Error(err), zap.String("booking_id", owner))
		}
	}()

	// 5. Reference.
	reference, err := utils.GenerateReference()
	if err != nil {
		return nil, fmt.Errorf("generate reference: %w", err)
	}

	// 6. Commit.
	booking := &entity.Booking{
		Record:        record,
		Reference:     reference,
		UserID:        userID,
		MovieID:       movieID,
		ShowtimeID:    showtimeID,
		SeatIDs:       checkout.SeatIDs,
		TotalPrice:    checkout.TotalPrice,
		PaymentMethod: entity.PaymentMethod(req.PaymentMethod),
		Status:        entity.BookingStatusConfirmed,
	}

	if err := s.repo.Commit.Commit(ctx, booking); err != nil {
		s.log.Error("Failed to commit booking", zap.Error(err),
			zap.String("booking_id", owner), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("commit booking: %w", err)
	}

	s.log.Info("Booking confirmed",
		zap.String("booking_id", owner),
		zap.String("reference", reference),
		zap.String("user_id", userID.String()),
		zap.Int("seats", len(seatIDs)),
		zap.Float64("total", booking.TotalPrice))

	return &response.CheckoutResponse{
		BookingID:  owner,
		Reference:  reference,
		TotalPrice: booking.TotalPrice,
	}, nil
}

func validateCheckout(req *request.CheckoutRequest) map[string]string {
	errs := utils.ValidateStruct(req)
	if errs == nil {
		errs = map[string]string{}
	}

	if entity.PaymentMethod(req.PaymentMethod) != entity.PaymentMethodCard {
		return errs
	}
	if req.Card == nil {
		errs["card"] = "This field is required for card payments"
		return errs
	}

	req.Card.HolderName = strings.TrimSpace(req.Card.HolderName)
	for field, msg := range utils.ValidateStruct(req.Card) {
		errs["card."+field] = msg
	}
	return errs
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID uuid.UUID) ([]response.BookingResponse, error) {
	bookings, err := s.repo.Booking.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to list user bookings", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("list bookings of user %s: %w", userID, err)
	}

	return resolveBookings(ctx, s.repo, bookings)
}

func (s *bookingService) ListBookings(ctx context.Context, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	filter := repository.BookingFilter{
		Query:  strings.TrimSpace(req.Query),
		Limit:  req.Limit(),
		Offset: req.Offset(),
	}

	bookings, err := s.repo.Booking.Search(ctx, filter)
	if err != nil {
		s.log.Error("Failed to search bookings", zap.Error(err), zap.String("query", filter.Query))
		return nil, fmt.Errorf("search bookings: %w", err)
	}

	total, err := s.repo.Booking.Count(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count bookings", zap.Error(err), zap.String("query", filter.Query))
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	data, err := resolveBookings(ctx, s.repo, bookings)
	if err != nil {
		return nil, err
	}

	return response.NewPaginatedResponse(data, req.PageNumber(), req.Limit(), total), nil
}

func (s *bookingService) GetBooking(ctx context.Context, id uuid.UUID) (*response.BookingResponse, error) {
	booking, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	resolved, err := resolveBookings(ctx, s.repo, []*entity.Booking{booking})
	if err != nil {
		return nil, err
	}
	return &resolved[0], nil
}

// CancelBooking moves a confirmed booking to cancelled. Its seats stay
// booked.
func (s *bookingService) CancelBooking(ctx context.Context, id uuid.UUID) (*response.BookingResponse, error) {
	booking, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if booking.Status != entity.BookingStatusConfirmed {
		return nil, fmt.Errorf("booking %s is %s: %w", booking.Reference, booking.Status, ErrConflict)
	}

	if err := s.repo.Booking.UpdateStatus(ctx, id, entity.BookingStatusCancelled); err != nil {
		s.log.Error("Failed to cancel booking", zap.Error(err), zap.String("booking_id", id.String()))
		return nil, fmt.Errorf("cancel booking %s: %w", id, err)
	}
	booking.Status = entity.BookingStatusCancelled
	booking.Touch(s.now())

	s.log.Info("Booking cancelled", zap.String("booking_id", id.String()), zap.String("reference", booking.Reference))

	resolved, err := resolveBookings(ctx, s.repo, []*entity.Booking{booking})
	if err != nil {
		return nil, err
	}
	return &resolved[0], nil
}

func (s *bookingService) TicketQR(ctx context.Context, userID, bookingID uuid.UUID) ([]byte, error) {
	booking, err := s.find(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		s.log.Warn("Ticket requested by another user",
			zap.String("booking_id", bookingID.String()), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("booking %s: %w", bookingID, ErrForbidden)
	}
	if booking.Status != entity.BookingStatusConfirmed {
		return nil, fmt.Errorf("booking %s is %s: %w", booking.Reference, booking.Status, ErrConflict)
	}

	payload, err := json.Marshal(ticketPayload{
		Reference:  booking.Reference,
		BookingID:  booking.ID.String(),
		ShowtimeID: booking.ShowtimeID.String(),
		Seats:      len(booking.SeatIDs),
	})
	if err != nil {
		return nil, fmt.Errorf("encode ticket: %w", err)
	}

	png, err := qrcode.Encode(string(payload), qrcode.Medium, ticketQRSize)
	if err != nil {
		return nil, fmt.Errorf("render ticket qr: %w", err)
	}
	return png, nil
}

const ticketQRSize = 256

type ticketPayload struct {
	Reference  string `json:"ref"`
	BookingID  string `json:"booking"`
	ShowtimeID string `json:"showtime"`
	Seats      int    `json:"seats"`
}

func (s *bookingService) find(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find booking", zap.Error(err), zap.String("booking_id", id.String()))
		return nil, fmt.Errorf("find booking %s: %w", id, err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s: %w", id, ErrNotFound)
	}
	return booking, nil
}

// resolveBookings loads the users, movies, showtimes and seats referenced by the
// bookings in one query per kind. Missing records are left nil and shown
// as placeholders.
func resolveBookings(ctx context.Context, repo *repository.Repository, bookings []*entity.Booking) ([]response.BookingResponse, error) {
	result := make([]response.BookingResponse, 0, len(bookings))
	if len(bookings) == 0 {
		return result, nil
	}

	var userIDs, movieIDs, showtimeIDs, seatIDs []uuid.UUID
	for _, b := range bookings {
		userIDs = append(userIDs, b.UserID)
		movieIDs = append(movieIDs, b.MovieID)
		showtimeIDs = append(showtimeIDs, b.ShowtimeID)
		seatIDs = append(seatIDs, b.SeatIDs...)
	}

	users, err := repo.User.FindByIDs(ctx, uniqueIDs(userIDs))
	if err != nil {
		return nil, fmt.Errorf("load booking users: %w", err)
	}
	movies, err := repo.Movie.FindByIDs(ctx, uniqueIDs(movieIDs))
	if err != nil {
		return nil, fmt.Errorf("load booking movies: %w", err)
	}
	showtimes, err := repo.Showtime.FindByIDs(ctx, uniqueIDs(showtimeIDs))
	if err != nil {
		return nil, fmt.Errorf("load booking showtimes: %w", err)
	}
	seats, err := repo.Seat.FindByIDs(ctx, uniqueIDs(seatIDs))
	if err != nil {
		return nil, fmt.Errorf("load booking seats: %w", err)
	}

	userByID := make(map[uuid.UUID]*entity.User, len(users))
	for _, u := range users {
		userByID[u.ID] = u
	}
	movieByID := make(map[uuid.UUID]*entity.Movie, len(movies))
	for _, m := range movies {
		movieByID[m.ID] = m
	}
	showtimeByID := make(map[uuid.UUID]*entity.Showtime, len(showtimes))
	for _, st := range showtimes {
		showtimeByID[st.ID] = st
	}
	seatByID := make(map[uuid.UUID]*entity.Seat, len(seats))
	for _, seat := range seats {
		seatByID[seat.ID] = seat
	}

	for _, b := range bookings {
		bookedSeats := make([]*entity.Seat, 0, len(b.SeatIDs))
		for _, id := range b.SeatIDs {
			if seat, ok := seatByID[id]; ok {
				bookedSeats = append(bookedSeats, seat)
			}
		}
		result = append(result, response.BookingToResponse(
			b, userByID[b.UserID], movieByID[b.MovieID], showtimeByID[b.ShowtimeID], bookedSeats))
	}

	return result, nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
