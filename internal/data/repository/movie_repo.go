package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// MovieStats counts the catalogue at one instant. A movie is active while
// release_date <= at <= end_date and upcoming before its release date;
// movies with a missing date count as neither.
type MovieStats struct {
	Total    int64
	Active   int64
	Upcoming int64
}

type MovieRepository interface {
	Create(ctx context.Context, movie *entity.Movie) error
	CreateBatch(ctx context.Context, movies []*entity.Movie) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Movie, error)
	FindAll(ctx context.Context, offset, limit int, search string) ([]*entity.Movie, error)
	CountAll(ctx context.Context, search string) (int64, error)
	Update(ctx context.Context, movie *entity.Movie) error
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context, at time.Time) (MovieStats, error)
}

type movieRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieRepository(db database.PgxIface, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

const movieColumns = `id, title, genre, duration, synopsis, director, cast_members,
	poster_url, trailer_url, rating, release_date, end_date, created_at, updated_at`

const insertMovieSQL = `
	INSERT INTO movies (` + movieColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
`

func movieArgs(m *entity.Movie) []any {
	return []any{
		m.ID,
		m.Title,
		m.Genre,
		m.Duration,
		m.Synopsis,
		m.Director,
		m.Cast,
		m.PosterURL,
		m.TrailerURL,
		m.Rating,
		m.ReleaseDate,
		m.EndDate,
		m.CreatedAt,
		m.UpdatedAt,
	}
}

func scanMovie(row scanner) (*entity.Movie, error) {
	var m entity.Movie
	err := row.Scan(
		&m.ID,
		&m.Title,
		&m.Genre,
		&m.Duration,
		&m.Synopsis,
		&m.Director,
		&m.Cast,
		&m.PosterURL,
		&m.TrailerURL,
		&m.Rating,
		&m.ReleaseDate,
		&m.EndDate,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *movieRepository) Create(ctx context.Context, movie *entity.Movie) error {
	_, err := r.db.Exec(ctx, insertMovieSQL, movieArgs(movie)...)
	if err != nil {
		r.log.Error("Failed to create movie",
			zap.Error(err),
			zap.String("title", movie.Title),
		)
		return fmt.Errorf("create movie %q: %w", movie.Title, err)
	}

	return nil
}

// CreateBatch inserts all movies in one transaction; either every row lands
// or none does.
func (r *movieRepository) CreateBatch(ctx context.Context, movies []*entity.Movie) error {
	if len(movies) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin movie batch: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, m := range movies {
		batch.Queue(insertMovieSQL, movieArgs(m)...)
	}

	results := tx.SendBatch(ctx, batch)
	for i := range movies {
		if _, err := results.Exec(); err != nil {
			results.Close()
			r.log.Error("Failed to insert movie in batch",
				zap.Error(err),
				zap.Int("index", i),
				zap.String("title", movies[i].Title),
			)
			return fmt.Errorf("insert movie %q: %w", movies[i].Title, err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("close movie batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit movie batch", zap.Error(err), zap.Int("count", len(movies)))
		return fmt.Errorf("commit movie batch: %w", err)
	}

	return nil
}

func (r *movieRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = $1`

	movie, err := scanMovie(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by ID",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return nil, fmt.Errorf("find movie %s: %w", id, err)
	}

	return movie, nil
}

func (r *movieRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Movie, error) {
	if len(ids) == 0 {
		return []*entity.Movie{}, nil
	}

	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = ANY($1)`
	return r.queryMovies(ctx, query, ids)
}

func (r *movieRepository) FindAll(ctx context.Context, offset, limit int, search string) ([]*entity.Movie, error) {
	query := `
		SELECT ` + movieColumns + `
		FROM movies
		WHERE ($1 = '' OR title ILIKE '%' || $1 || '%')
		ORDER BY release_date DESC NULLS LAST, title
		LIMIT $2 OFFSET $3
	`

	movies, err := r.queryMovies(ctx, query, search, limit, offset)
	if err != nil {
		return nil, err
	}

	r.log.Debug("Movies found",
		zap.Int("count", len(movies)),
		zap.Int("offset", offset),
		zap.Int("limit", limit),
	)

	return movies, nil
}

func (r *movieRepository) queryMovies(ctx context.Context, query string, args ...any) ([]*entity.Movie, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query movies", zap.Error(err))
		return nil, fmt.Errorf("query movies: %w", err)
	}
	defer rows.Close()

	movies := []*entity.Movie{}
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			r.log.Error("Failed to scan movie row", zap.Error(err))
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, movie)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate movie rows: %w", err)
	}

	return movies, nil
}

func (r *movieRepository) CountAll(ctx context.Context, search string) (int64, error) {
	query := `SELECT COUNT(*) FROM movies WHERE ($1 = '' OR title ILIKE '%' || $1 || '%')`

	var total int64
	if err := r.db.QueryRow(ctx, query, search).Scan(&total); err != nil {
		r.log.Error("Failed to count movies", zap.Error(err))
		return 0, fmt.Errorf("count movies: %w", err)
	}

	return total, nil
}

func (r *movieRepository) Update(ctx context.Context, movie *entity.Movie) error {
	query := `
		UPDATE movies
		SET title = $2, genre = $3, duration = $4, synopsis = $5, director = $6,
		    cast_members = $7, poster_url = $8, trailer_url = $9, rating = $10,
		    release_date = $11, end_date = $12, updated_at = $13
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		movie.ID,
		movie.Title,
		movie.Genre,
		movie.Duration,
		movie.Synopsis,
		movie.Director,
		movie.Cast,
		movie.PosterURL,
		movie.TrailerURL,
		movie.Rating,
		movie.ReleaseDate,
		movie.EndDate,
		movie.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update movie",
			zap.Error(err),
			zap.String("movie_id", movie.ID.String()),
		)
		return fmt.Errorf("update movie %s: %w", movie.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update movie %s: %w", movie.ID, ErrNotFound)
	}

	return nil
}

func (r *movieRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete movie",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return fmt.Errorf("delete movie %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete movie %s: %w", id, ErrNotFound)
	}

	r.log.Info("Movie deleted", zap.String("movie_id", id.String()))
	return nil
}

func (r *movieRepository) Stats(ctx context.Context, at time.Time) (MovieStats, error) {
	var stats MovieStats
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE release_date <= $1 AND end_date >= $1),
		       COUNT(*) FILTER (WHERE release_date > $1)
		FROM movies`, at).Scan(&stats.Total, &stats.Active, &stats.Upcoming)
	if err != nil {
		r.log.Error("Failed to count movie stats", zap.Error(err))
		return MovieStats{}, fmt.Errorf("movie stats: %w", err)
	}
	return stats, nil
}
