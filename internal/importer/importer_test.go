package importer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const sampleCSV = `title,rating,duration,genre,synopsis,director,cast,posterUrl,trailerUrl,releaseDate,endDate
Monsoon Letters,7.8,104,Romance,Two pen pals,Ayu Pratiwi,"Raka, Sinta",https://img.example.com/m.jpg,https://video.example.com/m,"December 24, 2025 at 1:00:00 PM UTC+7","January 31, 2026 at 11:59:00 PM UTC+7"
Harbour Lights,not-a-number,,Drama,,,,,,someday,
`

func TestParseReleaseDate(t *testing.T) {
	got, err := ParseReleaseDate("December 24, 2025 at 1:00:00 PM UTC+7")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2025, 12, 24, 6, 0, 0, 0, time.UTC)))

	got, err = ParseReleaseDate("March 3, 2026 at 9:30:00 AM")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2026, 3, 3, 9, 30, 0, 0, time.UTC)))

	got, err = ParseReleaseDate("July 1, 2025 at 8:00:00 PM UTC-5")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2025, 7, 2, 1, 0, 0, 0, time.UTC)))

	got, err = ParseReleaseDate("2025-12-24")
	require.NoError(t, err)
	assert.Equal(t, 24, got.Day())

	got, err = ParseReleaseDate("")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = ParseReleaseDate("someday")
	assert.Error(t, err)
}

func TestParseMovies(t *testing.T) {
	movies, err := ParseMovies(strings.NewReader(sampleCSV), zap.NewNop())
	require.NoError(t, err)
	require.Len(t, movies, 2)

	first := movies[0]
	assert.Equal(t, "Monsoon Letters", first.Title)
	assert.Equal(t, 7.8, first.Rating)
	assert.Equal(t, 104, first.Duration)
	assert.Equal(t, "Raka, Sinta", first.Cast)
	require.NotNil(t, first.ReleaseDate)
	require.NotNil(t, first.EndDate)
	assert.True(t, first.EndDate.After(*first.ReleaseDate))

	second := movies[1]
	assert.Equal(t, 0.0, second.Rating)
	assert.Equal(t, 0, second.Duration)
	assert.Nil(t, second.ReleaseDate)
	assert.Nil(t, second.EndDate)
}

func TestParseMovies_NonFiniteRatingIsZero(t *testing.T) {
	csv := "title,rating\nFirst,NaN\nSecond,Inf\nThird,-Infinity\n"
	movies, err := ParseMovies(strings.NewReader(csv), zap.NewNop())
	require.NoError(t, err)
	require.Len(t, movies, 3)
	for _, m := range movies {
		assert.Equal(t, 0.0, m.Rating, m.Title)
	}
}

func TestParseMovies_BadFiles(t *testing.T) {
	_, err := ParseMovies(strings.NewReader(""), zap.NewNop())
	assert.Error(t, err)

	_, err = ParseMovies(strings.NewReader("name,rating\nx,1\n"), zap.NewNop())
	assert.Error(t, err)
}

type mockMovieRepo struct {
	repository.MovieRepository
	mock.Mock
}

func (m *mockMovieRepo) CreateBatch(ctx context.Context, movies []*entity.Movie) error {
	args := m.Called(ctx, movies)
	return args.Error(0)
}

func movies(n int) []*entity.Movie {
	out := make([]*entity.Movie, n)
	for i := range out {
		out[i] = &entity.Movie{Title: "Film"}
	}
	return out
}

func TestImport_Batches(t *testing.T) {
	repo := &mockMovieRepo{}
	sizes := []int{}
	repo.On("CreateBatch", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		sizes = append(sizes, len(args.Get(1).([]*entity.Movie)))
	}).Return(nil)

	im := New(repo, 500, zap.NewNop())
	res, err := im.Import(context.Background(), movies(1201))
	require.NoError(t, err)

	assert.Equal(t, []int{500, 500, 201}, sizes)
	assert.Equal(t, Result{Total: 1201, Succeeded: 1201, Batches: 3}, res)
}

func TestImport_FailedBatchContinues(t *testing.T) {
	repo := &mockMovieRepo{}
	repo.On("CreateBatch", mock.Anything, mock.Anything).Return(errors.New("deadline exceeded")).Once()
	repo.On("CreateBatch", mock.Anything, mock.Anything).Return(nil)

	im := New(repo, 2, zap.NewNop())
	list := movies(5)
	res, err := im.Import(context.Background(), list)
	require.NoError(t, err)

	assert.Equal(t, Result{Total: 5, Succeeded: 3, Failed: 2, Batches: 3}, res)
	repo.AssertNumberOfCalls(t, "CreateBatch", 3)
	for _, m := range list {
		assert.NotZero(t, m.ID)
	}
}

func TestImport_ClampsBatchSize(t *testing.T) {
	im := New(&mockMovieRepo{}, 10_000, zap.NewNop())
	assert.Equal(t, MaxBatchSize, im.batchSize)
}
