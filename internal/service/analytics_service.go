package service

import (
	"context"
	"time"

	"pulse/internal/cache"
	"pulse/internal/models"
	"pulse/internal/repository"
)

// AnalyticsService aggregates like activity over time.
type AnalyticsService struct {
	likeRepo repository.LikeRepository
}

// NewAnalyticsService returns an AnalyticsService.
func NewAnalyticsService(likeRepo repository.LikeRepository) *AnalyticsService {
	return &AnalyticsService{likeRepo: likeRepo}
}

// DayCount is one day of like activity.
type DayCount struct {
	Date  string `json:"date"`
	Count int64  `json:"likes_count"`
}

const dateLayout = "2006-01-02"

// LikesPerDay returns the number of likes per day within [dateFrom, dateTo]
// inclusive, ascending by date. Days without likes are omitted. An empty
// result is an error, not an empty list, so callers can surface it as 404.
func (s *AnalyticsService) LikesPerDay(ctx context.Context, dateFrom, dateTo string) ([]DayCount, error) {
	if dateFrom == "" || dateTo == "" {
		return nil, models.NewValidationError("date_from and date_to are required")
	}

	from, err := time.ParseInLocation(dateLayout, dateFrom, time.UTC)
	if err != nil {
		return nil, models.NewValidationError("date_from must be formatted as YYYY-MM-DD")
	}
	to, err := time.ParseInLocation(dateLayout, dateTo, time.UTC)
	if err != nil {
		return nil, models.NewValidationError("date_to must be formatted as YYYY-MM-DD")
	}

	if to.Before(from) {
		return nil, models.NewInvalidRangeError("date_to must not be earlier than date_from")
	}

	var result []DayCount
	err = cache.Aside(ctx, cache.AnalyticsKey(dateFrom, dateTo), &result, cache.AnalyticsTTL, func() error {
		rows, aggErr := s.likeRepo.AggregatePerDay(ctx, from, to)
		if aggErr != nil {
			return aggErr
		}
		result = make([]DayCount, 0, len(rows))
		for _, row := range rows {
			result = append(result, DayCount{
				Date:  row.Date.UTC().Format(dateLayout),
				Count: row.LikesCount,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(result) == 0 {
		return nil, models.NewEmptyResultError("No likes found for the given period")
	}
	return result, nil
}
