package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/dto/response"
	"cinema-ticketing/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MovieService interface {
	CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error)
	GetMovie(ctx context.Context, id uuid.UUID) (*response.MovieResponse, error)
	ListMovies(ctx context.Context, req *request.MovieListRequest) (*response.PaginatedResponse[response.MovieResponse], error)
	UpdateMovie(ctx context.Context, id uuid.UUID, req *request.MovieRequest) (*response.MovieResponse, error)
	DeleteMovie(ctx context.Context, id uuid.UUID) error
}

type movieService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewMovieService(repo *repository.Repository, log *zap.Logger) MovieService {
	return &movieService{
		repo: repo,
		log:  log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error) {
	movie := &entity.Movie{}
	if err := s.apply(movie, req); err != nil {
		return nil, err
	}

	movie.Record = entity.NewRecord(time.Now())

	if err := s.repo.Movie.Create(ctx, movie); err != nil {
		s.log.Error("Failed to create movie", zap.Error(err), zap.String("title", movie.Title))
		return nil, fmt.Errorf("create movie: %w", err)
	}

	s.log.Info("Movie created", zap.String("movie_id", movie.ID.String()), zap.String("title", movie.Title))

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) GetMovie(ctx context.Context, id uuid.UUID) (*response.MovieResponse, error) {
	movie, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) ListMovies(ctx context.Context, req *request.MovieListRequest) (*response.PaginatedResponse[response.MovieResponse], error) {
	search := strings.TrimSpace(req.Search)

	movies, err := s.repo.Movie.FindAll(ctx, req.Offset(), req.Limit(), search)
	if err != nil {
		s.log.Error("Failed to list movies", zap.Error(err))
		return nil, fmt.Errorf("list movies: %w", err)
	}

	total, err := s.repo.Movie.CountAll(ctx, search)
	if err != nil {
		s.log.Error("Failed to count movies", zap.Error(err))
		return nil, fmt.Errorf("count movies: %w", err)
	}

	data := make([]response.MovieResponse, 0, len(movies))
	for _, m := range movies {
		data = append(data, response.MovieToResponse(m))
	}

	return response.NewPaginatedResponse(data, req.PageNumber(), req.Limit(), total), nil
}

func (s *movieService) UpdateMovie(ctx context.Context, id uuid.UUID, req *request.MovieRequest) (*response.MovieResponse, error) {
	movie, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.apply(movie, req); err != nil {
		return nil, err
	}
	movie.Touch(time.Now())

	if err := s.repo.Movie.Update(ctx, movie); err != nil {
		s.log.Error("Failed to update movie", zap.Error(err), zap.String("movie_id", id.String()))
		return nil, fmt.Errorf("update movie %s: %w", id, err)
	}

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

// DeleteMovie leaves showtimes and bookings of the movie in place; reads
// of those bookings fall back to a placeholder title.
func (s *movieService) DeleteMovie(ctx context.Context, id uuid.UUID) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Movie.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete movie", zap.Error(err), zap.String("movie_id", id.String()))
		return fmt.Errorf("delete movie %s: %w", id, err)
	}

	s.log.Info("Movie deleted", zap.String("movie_id", id.String()))
	return nil
}

func (s *movieService) find(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find movie", zap.Error(err), zap.String("movie_id", id.String()))
		return nil, fmt.Errorf("find movie %s: %w", id, err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %s: %w", id, ErrNotFound)
	}
	return movie, nil
}

func (s *movieService) apply(movie *entity.Movie, req *request.MovieRequest) error {
	req.Title = strings.TrimSpace(req.Title)

	errs := utils.ValidateStruct(req)
	if errs == nil {
		errs = map[string]string{}
	}

	release, err := ParseMovieDate(req.ReleaseDate)
	if err != nil {
		errs["release_date"] = "Must be a date (YYYY-MM-DD or RFC3339)"
	}
	end, err := ParseMovieDate(req.EndDate)
	if err != nil {
		errs["end_date"] = "Must be a date (YYYY-MM-DD or RFC3339)"
	}

	if len(errs) > 0 {
		s.log.Warn("Movie validation failed", zap.Any("errors", errs))
		return NewValidationError("Validation failed", errs)
	}

	movie.Title = req.Title
	movie.Genre = req.Genre
	movie.Duration = req.Duration
	movie.Synopsis = req.Synopsis
	movie.Director = req.Director
	movie.Cast = req.Cast
	movie.PosterURL = req.PosterURL
	movie.TrailerURL = req.TrailerURL
	movie.Rating = 0
	if req.Rating != nil {
		movie.Rating = *req.Rating
	}
	movie.ReleaseDate = release
	movie.EndDate = end
	return nil
}

// ParseMovieDate returns nil for an empty value.
func ParseMovieDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid date %q", value)
}
