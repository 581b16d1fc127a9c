package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovieService_CRUD(t *testing.T) {
	env := newTestEnv(t, utils.CommitModeTransactional, nil)
	ctx := context.Background()
	movies := env.service.Movie

	rating := 8.1
	created, err := movies.CreateMovie(ctx, &request.MovieRequest{
		Title:       "  Paper Lanterns ",
		Genre:       "Drama",
		Duration:    112,
		Rating:      &rating,
		ReleaseDate: "2025-11-01",
		EndDate:     "2026-01-15T00:00:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, "Paper Lanterns", created.Title)
	require.NotNil(t, created.ReleaseDate)
	assert.Equal(t, time.November, created.ReleaseDate.Month())
	require.NotNil(t, created.EndDate)

	id := uuid.MustParse(created.ID)
	updated, err := movies.UpdateMovie(ctx, id, &request.MovieRequest{Title: "Paper Lanterns (Director's Cut)", Duration: 131})
	require.NoError(t, err)
	assert.Equal(t, 131, updated.Duration)
	assert.Nil(t, updated.ReleaseDate)

	list, err := movies.ListMovies(ctx, &request.MovieListRequest{
		PaginatedRequest: request.PaginatedRequest{Page: 1, PerPage: 10},
		Search:           "lantern",
	})
	require.NoError(t, err)
	require.Len(t, list.Data, 1)
	assert.Equal(t, created.ID, list.Data[0].ID)

	require.NoError(t, movies.DeleteMovie(ctx, id))
	_, err = movies.GetMovie(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMovieService_Validation(t *testing.T) {
	env := newTestEnv(t, utils.CommitModeTransactional, nil)

	_, err := env.service.Movie.CreateMovie(context.Background(), &request.MovieRequest{
		Title:       "",
		Duration:    -5,
		ReleaseDate: "next friday",
	})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "title")
	assert.Contains(t, verr.Fields, "duration")
	assert.Contains(t, verr.Fields, "release_date")
}

func TestParseMovieDate(t *testing.T) {
	got, err := ParseMovieDate("")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = ParseMovieDate("2025-12-24")
	require.NoError(t, err)
	assert.Equal(t, 24, got.Day())

	_, err = ParseMovieDate("24-12-2025")
	assert.Error(t, err)
}
