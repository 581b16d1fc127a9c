package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/dto/response"
	"cinema-ticketing/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDashboard(t *testing.T) {
	env := newTestEnv(t, utils.CommitModeTransactional, nil)
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	day := 24 * time.Hour

	for _, dates := range [][2]time.Duration{{-day, day}, {day, 3 * day}, {-3 * day, -day}} {
		release, end := now.Add(dates[0]), now.Add(dates[1])
		require.NoError(t, env.repo.Movie.Create(ctx, &entity.Movie{
			Record:      entity.NewRecord(now),
			Title:       "Scheduled",
			ReleaseDate: &release,
			EndDate:     &end,
		}))
	}

	// seven bookings one hour apart, the oldest two outside the last day
	var refs []string
	for i := 0; i < 7; i++ {
		created := now.Add(-time.Duration(i) * time.Hour)
		if i >= 5 {
			created = now.Add(-day - time.Duration(i)*time.Hour)
		}
		b := &entity.Booking{
			Record:        entity.NewRecord(created),
			Reference:     fmt.Sprintf("DASH%04d", i),
			UserID:        env.user.ID,
			MovieID:       env.movie.ID,
			ShowtimeID:    uuid.New(),
			TotalPrice:    0.1,
			PaymentMethod: entity.PaymentMethodPayPal,
			Status:        entity.BookingStatusConfirmed,
		}
		if i == 0 {
			b.MovieID = uuid.New()
		}
		if i == 6 {
			b.Status = entity.BookingStatusCancelled
		}
		require.NoError(t, env.repo.Booking.Create(ctx, b))
		refs = append(refs, b.Reference)
	}

	svc := &dashboardService{repo: env.repo, log: zap.NewNop(), now: func() time.Time { return now }}
	resp, err := svc.Dashboard(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(4), resp.TotalMovies)
	assert.Equal(t, int64(1), resp.ActiveMovies)
	assert.Equal(t, int64(1), resp.UpcomingMovies)
	assert.Equal(t, int64(7), resp.TotalBookings)
	assert.Equal(t, int64(5), resp.RecentBookings)
	assert.Equal(t, 0.7, resp.TotalRevenue)

	require.Len(t, resp.LatestBookings, 5)
	for i, b := range resp.LatestBookings {
		assert.Equal(t, refs[i], b.Reference)
	}
	assert.Equal(t, response.UnknownMovie, resp.LatestBookings[0].MovieTitle)
	assert.Equal(t, env.movie.Title, resp.LatestBookings[1].MovieTitle)
}

func TestDashboard_Empty(t *testing.T) {
	env := newTestEnv(t, utils.CommitModeTransactional, nil)

	resp, err := env.service.Dashboard.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.TotalMovies)
	assert.Zero(t, resp.ActiveMovies)
	assert.Zero(t, resp.TotalBookings)
	assert.Zero(t, resp.TotalRevenue)
	assert.NotNil(t, resp.LatestBookings)
	assert.Empty(t, resp.LatestBookings)
}
