package importer

import (
	"context"
	"fmt"
	"io"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxBatchSize is the largest number of movies written in one batch.
const MaxBatchSize = 500

type Result struct {
	Total     int
	Succeeded int
	Failed    int
	Batches   int
}

type Importer struct {
	movies    repository.MovieRepository
	batchSize int
	log       *zap.Logger
	now       func() time.Time
}

func New(movies repository.MovieRepository, batchSize int, log *zap.Logger) *Importer {
	if batchSize <= 0 || batchSize > MaxBatchSize {
		batchSize = MaxBatchSize
	}
	return &Importer{
		movies:    movies,
		batchSize: batchSize,
		log:       log.With(zap.String("component", "importer")),
		now:       time.Now,
	}
}

// ImportCSV parses r and writes the movies in batches.
func (im *Importer) ImportCSV(ctx context.Context, r io.Reader) (Result, error) {
	movies, err := ParseMovies(r, im.log)
	if err != nil {
		return Result{}, err
	}
	im.log.Info("CSV processed", zap.Int("movies", len(movies)))

	return im.Import(ctx, movies)
}

// Import writes the movies in batches. A failed batch is counted and
// skipped; the remaining batches still run. Only a cancelled context
// stops the import early.
func (im *Importer) Import(ctx context.Context, movies []*entity.Movie) (Result, error) {
	res := Result{Total: len(movies)}

	for start := 0; start < len(movies); start += im.batchSize {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("import interrupted after %d batches: %w", res.Batches, err)
		}

		end := min(start+im.batchSize, len(movies))
		chunk := movies[start:end]
		res.Batches++

		now := im.now()
		for _, m := range chunk {
			m.ID = uuid.New()
			m.CreatedAt = now
			m.UpdatedAt = now
		}

		if err := im.movies.CreateBatch(ctx, chunk); err != nil {
			res.Failed += len(chunk)
			im.log.Error("Batch failed", zap.Int("batch", res.Batches), zap.Int("movies", len(chunk)), zap.Error(err))
			continue
		}

		res.Succeeded += len(chunk)
		im.log.Info("Batch uploaded", zap.Int("batch", res.Batches), zap.Int("movies", len(chunk)))
	}

	im.log.Info("Import complete",
		zap.Int("total", res.Total),
		zap.Int("succeeded", res.Succeeded),
		zap.Int("failed", res.Failed))

	return res, nil
}
