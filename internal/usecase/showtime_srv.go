package usecase

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/dto/response"
	"cinema-ticketing/internal/seating"
	"cinema-ticketing/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ShowtimeService interface {
	CreateShowtime(ctx context.Context, req *request.CreateShowtimeRequest) (*response.CreateShowtimeResponse, error)
	GetShowtime(ctx context.Context, id uuid.UUID) (*response.ShowtimeResponse, error)
	ListShowtimes(ctx context.Context, movieID uuid.UUID, date string) ([]response.ShowtimeResponse, error)
	DeleteShowtime(ctx context.Context, id uuid.UUID) error
	GetSeatMap(ctx context.Context, id uuid.UUID) (*response.SeatMapResponse, error)
	Quote(ctx context.Context, id uuid.UUID, req *request.QuoteRequest) (*response.QuoteResponse, error)
}

type showtimeService struct {
	repo *repository.Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewShowtimeService(repo *repository.Repository, log *zap.Logger) ShowtimeService {
	return &showtimeService{
		repo: repo,
		log:  log.With(zap.String("service", "showtime")),
		now:  time.Now,
	}
}

// CreateShowtime stores the showtime and generates its seat grid. When the
// seats cannot be written the showtime is removed again.
func (s *showtimeService) CreateShowtime(ctx context.Context, req *request.CreateShowtimeRequest) (*response.CreateShowtimeResponse, error) {
	req.Screen = strings.TrimSpace(req.Screen)

	errs := utils.ValidateStruct(req)
	if errs == nil {
		errs = map[string]string{}
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(string(req.Price)), 64)
	if _, exists := errs["price"]; !exists && (err != nil || !(price > 0) || math.IsInf(price, 1)) {
		errs["price"] = "Must be a positive number"
	}
	totalSeats, err := strconv.Atoi(strings.TrimSpace(string(req.TotalSeats)))
	if _, exists := errs["total_seats"]; !exists {
		switch {
		case err != nil || totalSeats <= 0:
			errs["total_seats"] = "Must be a positive whole number"
		case totalSeats > seating.MaxSeats:
			errs["total_seats"] = fmt.Sprintf("Must be at most %d", seating.MaxSeats)
		}
	}

	if len(errs) > 0 {
		s.log.Warn("Showtime validation failed", zap.Any("errors", errs))
		return nil, NewValidationError("Validation failed", errs)
	}

	movieID := uuid.MustParse(req.MovieID)
	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		s.log.Error("Failed to find movie", zap.Error(err), zap.String("movie_id", req.MovieID))
		return nil, fmt.Errorf("find movie %s: %w", movieID, err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %s: %w", movieID, ErrNotFound)
	}

	now := s.now()
	showtime := &entity.Showtime{
		CreatedRecord:  entity.NewCreatedRecord(now),
		MovieID:        movieID,
		Date:           req.Date,
		Time:           req.Time,
		Screen:         req.Screen,
		Price:          price,
		TotalSeats:     totalSeats,
		AvailableSeats: totalSeats,
	}

	seats, err := seating.GenerateGrid(showtime.ID, price, totalSeats, now)
	if err != nil {
		return nil, fieldError("total_seats", err.Error())
	}

	if err := s.repo.Showtime.Create(ctx, showtime); err != nil {
		s.log.Error("Failed to create showtime", zap.Error(err), zap.String("movie_id", req.MovieID))
		return nil, fmt.Errorf("create showtime: %w", err)
	}

	if err := s.repo.Seat.CreateBatch(ctx, seats); err != nil {
		s.log.Error("Failed to create seats, removing showtime",
			zap.Error(err), zap.String("showtime_id", showtime.ID.String()))

		// Context may already be cancelled; the cleanup still has to run.
		if delErr := s.remove(context.WithoutCancel(ctx), showtime.ID); delErr != nil {
			s.log.Error("Failed to remove showtime after seat failure",
				zap.Error(delErr), zap.String("showtime_id", showtime.ID.String()))
		}
		return nil, fmt.Errorf("create seats for showtime %s: %w", showtime.ID, err)
	}

	s.log.Info("Showtime created",
		zap.String("showtime_id", showtime.ID.String()),
		zap.String("movie_id", movieID.String()),
		zap.Int("seats", len(seats)))

	return &response.CreateShowtimeResponse{
		Showtime:   response.ShowtimeToResponse(showtime, totalSeats),
		SeatsAdded: len(seats),
	}, nil
}

func (s *showtimeService) GetShowtime(ctx context.Context, id uuid.UUID) (*response.ShowtimeResponse, error) {
	showtime, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	seats, err := s.seats(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.ShowtimeToResponse(showtime, countAvailable(seats))
	return &resp, nil
}

func (s *showtimeService) ListShowtimes(ctx context.Context, movieID uuid.UUID, date string) ([]response.ShowtimeResponse, error) {
	date = strings.TrimSpace(date)
	if date != "" {
		if _, err := time.Parse(entity.ShowDateLayout, date); err != nil {
			return nil, fieldError("date", "Date must be YYYY-MM-DD")
		}
	}

	showtimes, err := s.repo.Showtime.FindByMovie(ctx, movieID, date)
	if err != nil {
		s.log.Error("Failed to list showtimes", zap.Error(err), zap.String("movie_id", movieID.String()))
		return nil, fmt.Errorf("list showtimes for movie %s: %w", movieID, err)
	}

	result := make([]response.ShowtimeResponse, 0, len(showtimes))
	for _, st := range showtimes {
		seats, err := s.seats(ctx, st.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, response.ShowtimeToResponse(st, countAvailable(seats)))
	}

	return result, nil
}

func (s *showtimeService) DeleteShowtime(ctx context.Context, id uuid.UUID) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}

	if err := s.remove(ctx, id); err != nil {
		s.log.Error("Failed to delete showtime", zap.Error(err), zap.String("showtime_id", id.String()))
		return err
	}

	s.log.Info("Showtime deleted", zap.String("showtime_id", id.String()))
	return nil
}

// remove deletes the seats first so a failure leaves the showtime in place
// and the delete can be retried.
func (s *showtimeService) remove(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Seat.DeleteByShowtimeID(ctx, id); err != nil {
		return fmt.Errorf("delete seats of showtime %s: %w", id, err)
	}
	if err := s.repo.Showtime.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete showtime %s: %w", id, err)
	}
	return nil
}

func (s *showtimeService) GetSeatMap(ctx context.Context, id uuid.UUID) (*response.SeatMapResponse, error) {
	showtime, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	seats, err := s.seats(ctx, id)
	if err != nil {
		return nil, err
	}

	selection := seating.NewSelection(seats)
	rows := make([]response.SeatRowResponse, 0)
	for _, row := range selection.Rows() {
		rr := response.SeatRowResponse{
			Row:   row.Label,
			Seats: make([]response.SeatResponse, 0, len(row.Seats)),
		}
		for _, seat := range row.Seats {
			rr.Seats = append(rr.Seats, response.SeatToResponse(seat))
		}
		rows = append(rows, rr)
	}

	return &response.SeatMapResponse{
		Showtime: response.ShowtimeToResponse(showtime, countAvailable(seats)),
		Rows:     rows,
	}, nil
}

// Quote replays the toggles against the current seat statuses. Toggles on
// booked or unknown seats are reported back as ignored.
func (s *showtimeService) Quote(ctx context.Context, id uuid.UUID, req *request.QuoteRequest) (*response.QuoteResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, NewValidationError("Validation failed", errs)
	}

	if _, err := s.find(ctx, id); err != nil {
		return nil, err
	}

	seats, err := s.seats(ctx, id)
	if err != nil {
		return nil, err
	}

	selection := seating.NewSelection(seats)
	resp := &response.QuoteResponse{
		SelectedSeatIDs: []string{},
		SeatLabels:      []string{},
		IgnoredSeatIDs:  []string{},
	}

	for _, raw := range req.Toggles {
		seatID := uuid.MustParse(raw)
		if !selection.Toggle(seatID) {
			resp.IgnoredSeatIDs = append(resp.IgnoredSeatIDs, raw)
		}
	}

	for _, seat := range selection.Selected() {
		resp.SelectedSeatIDs = append(resp.SelectedSeatIDs, seat.ID.String())
		resp.SeatLabels = append(resp.SeatLabels, seat.Label())
	}
	resp.TotalPrice = selection.Total()

	return resp, nil
}

func (s *showtimeService) find(ctx context.Context, id uuid.UUID) (*entity.Showtime, error) {
	showtime, err := s.repo.Showtime.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find showtime", zap.Error(err), zap.String("showtime_id", id.String()))
		return nil, fmt.Errorf("find showtime %s: %w", id, err)
	}
	if showtime == nil {
		return nil, fmt.Errorf("showtime %s: %w", id, ErrNotFound)
	}
	return showtime, nil
}

func (s *showtimeService) seats(ctx context.Context, showtimeID uuid.UUID) ([]*entity.Seat, error) {
	seats, err := s.repo.Seat.FindByShowtimeID(ctx, showtimeID)
	if err != nil {
		s.log.Error("Failed to load seats", zap.Error(err), zap.String("showtime_id", showtimeID.String()))
		return nil, fmt.Errorf("load seats for showtime %s: %w", showtimeID, err)
	}
	return seats, nil
}

func countAvailable(seats []*entity.Seat) int {
	n := 0
	for _, seat := range seats {
		if !seat.IsBooked() {
			n++
		}
	}
	return n
}
