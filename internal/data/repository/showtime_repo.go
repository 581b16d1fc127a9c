package repository

import (
	"context"
	"errors"
	"fmt"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ShowtimeRepository interface {
	Create(ctx context.Context, showtime *entity.Showtime) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Showtime, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Showtime, error)
	FindByMovieDateTime(ctx context.Context, movieID uuid.UUID, date, showTime string) (*entity.Showtime, error)
	// FindByMovie lists showtimes ordered by date and time. An empty date
	// returns every date.
	FindByMovie(ctx context.Context, movieID uuid.UUID, date string) ([]*entity.Showtime, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type showtimeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewShowtimeRepository(db database.PgxIface, log *zap.Logger) ShowtimeRepository {
	return &showtimeRepository{
		db:  db,
		log: log.With(zap.String("repository", "showtime")),
	}
}

const showtimeColumns = `id, movie_id, show_date, show_time, screen, price, total_seats, available_seats, created_at`

func scanShowtime(row scanner) (*entity.Showtime, error) {
	var st entity.Showtime
	err := row.Scan(
		&st.ID,
		&st.MovieID,
		&st.Date,
		&st.Time,
		&st.Screen,
		&st.Price,
		&st.TotalSeats,
		&st.AvailableSeats,
		&st.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *showtimeRepository) Create(ctx context.Context, showtime *entity.Showtime) error {
	query := `
		INSERT INTO showtimes (` + showtimeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		showtime.ID,
		showtime.MovieID,
		showtime.Date,
		showtime.Time,
		showtime.Screen,
		showtime.Price,
		showtime.TotalSeats,
		showtime.AvailableSeats,
		showtime.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create showtime",
			zap.Error(err),
			zap.String("movie_id", showtime.MovieID.String()),
			zap.String("date", showtime.Date),
			zap.String("time", showtime.Time),
		)
		return fmt.Errorf("create showtime: %w", err)
	}

	return nil
}

func (r *showtimeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Showtime, error) {
	query := `SELECT ` + showtimeColumns + ` FROM showtimes WHERE id = $1`

	showtime, err := scanShowtime(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find showtime by ID",
			zap.Error(err),
			zap.String("showtime_id", id.String()),
		)
		return nil, fmt.Errorf("find showtime %s: %w", id, err)
	}

	return showtime, nil
}

func (r *showtimeRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Showtime, error) {
	if len(ids) == 0 {
		return []*entity.Showtime{}, nil
	}

	query := `SELECT ` + showtimeColumns + ` FROM showtimes WHERE id = ANY($1)`
	return r.queryShowtimes(ctx, query, ids)
}

func (r *showtimeRepository) FindByMovieDateTime(ctx context.Context, movieID uuid.UUID, date, showTime string) (*entity.Showtime, error) {
	query := `
		SELECT ` + showtimeColumns + `
		FROM showtimes
		WHERE movie_id = $1 AND show_date = $2 AND show_time = $3
		ORDER BY created_at DESC
		LIMIT 1
	`

	showtime, err := scanShowtime(r.db.QueryRow(ctx, query, movieID, date, showTime))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find showtime by movie/date/time",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
		)
		return nil, fmt.Errorf("find showtime for movie %s at %s %s: %w", movieID, date, showTime, err)
	}

	return showtime, nil
}

func (r *showtimeRepository) FindByMovie(ctx context.Context, movieID uuid.UUID, date string) ([]*entity.Showtime, error) {
	query := `
		SELECT ` + showtimeColumns + `
		FROM showtimes
		WHERE movie_id = $1 AND ($2 = '' OR show_date = $2)
		ORDER BY show_date, show_time
	`

	return r.queryShowtimes(ctx, query, movieID, date)
}

func (r *showtimeRepository) queryShowtimes(ctx context.Context, query string, args ...any) ([]*entity.Showtime, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query showtimes", zap.Error(err))
		return nil, fmt.Errorf("query showtimes: %w", err)
	}
	defer rows.Close()

	showtimes := []*entity.Showtime{}
	for rows.Next() {
		st, err := scanShowtime(rows)
		if err != nil {
			r.log.Error("Failed to scan showtime row", zap.Error(err))
			return nil, fmt.Errorf("scan showtime: %w", err)
		}
		showtimes = append(showtimes, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate showtime rows: %w", err)
	}

	return showtimes, nil
}

func (r *showtimeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM showtimes WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete showtime",
			zap.Error(err),
			zap.String("showtime_id", id.String()),
		)
		return fmt.Errorf("delete showtime %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete showtime %s: %w", id, ErrNotFound)
	}

	return nil
}
