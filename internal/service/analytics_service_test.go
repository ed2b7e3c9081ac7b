package service

import (
	"context"
	"testing"
	"time"

	"pulse/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyticsService_LikesPerDay(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("aggregates and formats days", func(t *testing.T) {
		likeRepo := noopLikeRepo()
		likeRepo.aggregatePerDayFn = func(_ context.Context, from, to time.Time) ([]models.DayLikes, error) {
			assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), from)
			assert.Equal(t, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), to)
			return []models.DayLikes{
				{Date: time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC), LikesCount: 4},
				{Date: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), LikesCount: 1},
			}, nil
		}

		svc := NewAnalyticsService(likeRepo)
		result, err := svc.LikesPerDay(ctx, "2026-02-01", "2026-02-28")
		require.NoError(t, err)
		require.Len(t, result, 2)
		assert.Equal(t, DayCount{Date: "2026-02-03", Count: 4}, result[0])
		assert.Equal(t, DayCount{Date: "2026-02-10", Count: 1}, result[1])
	})

	t.Run("missing parameters", func(t *testing.T) {
		svc := NewAnalyticsService(noopLikeRepo())

		_, err := svc.LikesPerDay(ctx, "", "2026-02-28")
		assertAppError(t, err, models.CodeValidation)

		_, err = svc.LikesPerDay(ctx, "2026-02-01", "")
		assertAppError(t, err, models.CodeValidation)
	})

	t.Run("malformed dates", func(t *testing.T) {
		svc := NewAnalyticsService(noopLikeRepo())

		for _, bad := range []string{"02-01-2026", "2026/02/01", "2026-2-1", "not-a-date", "2026-13-40"} {
			_, err := svc.LikesPerDay(ctx, bad, "2026-02-28")
			assertAppError(t, err, models.CodeValidation)
		}
	})

	t.Run("inverted range", func(t *testing.T) {
		svc := NewAnalyticsService(noopLikeRepo())
		_, err := svc.LikesPerDay(ctx, "2026-02-28", "2026-02-01")
		assertAppError(t, err, models.CodeInvalidRange)
	})

	t.Run("single day range is valid", func(t *testing.T) {
		likeRepo := noopLikeRepo()
		likeRepo.aggregatePerDayFn = func(_ context.Context, from, to time.Time) ([]models.DayLikes, error) {
			assert.True(t, from.Equal(to))
			return []models.DayLikes{{Date: from, LikesCount: 2}}, nil
		}

		svc := NewAnalyticsService(likeRepo)
		result, err := svc.LikesPerDay(ctx, "2026-02-01", "2026-02-01")
		require.NoError(t, err)
		assert.Len(t, result, 1)
	})

	t.Run("no likes in window", func(t *testing.T) {
		svc := NewAnalyticsService(noopLikeRepo())
		_, err := svc.LikesPerDay(ctx, "2026-02-01", "2026-02-28")
		assertAppError(t, err, models.CodeEmptyResult)
	})
}
