package repository

import (
	"context"
	"time"

	"pulse/internal/cache"
	"pulse/internal/models"

	"gorm.io/gorm"
)

// LikeRepository defines persistence operations for likes.
type LikeRepository interface {
	Create(ctx context.Context, like *models.Like) error
	Exists(ctx context.Context, postID, userID uint) (bool, error)
	DeleteByPostAndUser(ctx context.Context, postID, userID uint) (int64, error)
	CountForPost(ctx context.Context, postID uint) (int64, error)
	AggregatePerDay(ctx context.Context, from, to time.Time) ([]models.DayLikes, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository returns a new LikeRepository implementation.
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Create inserts the like. The composite unique index on (post_id,
// liked_by_id) is the actual duplicate guard: when two requests race past
// the existence pre-check, the second insert fails here and is reported as
// an already-liked conflict, never as a duplicate row.
func (r *likeRepository) Create(ctx context.Context, like *models.Like) error {
	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewAlreadyLikedError()
		}
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, like.PostID)
	cache.InvalidateAnalytics(ctx)
	return nil
}

func (r *likeRepository) Exists(ctx context.Context, postID, userID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("post_id = ? AND liked_by_id = ?", postID, userID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// DeleteByPostAndUser removes the like and returns how many rows were
// deleted, so the caller can distinguish "unliked" from "was never liked".
func (r *likeRepository) DeleteByPostAndUser(ctx context.Context, postID, userID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("post_id = ? AND liked_by_id = ?", postID, userID).
		Delete(&models.Like{})
	if result.Error != nil {
		return 0, models.NewInternalError(result.Error)
	}
	if result.RowsAffected > 0 {
		cache.InvalidatePost(ctx, postID)
		cache.InvalidateAnalytics(ctx)
	}
	return result.RowsAffected, nil
}

func (r *likeRepository) CountForPost(ctx context.Context, postID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// AggregatePerDay groups likes by their day within [from, to] inclusive,
// ascending. Days with no likes produce no row.
func (r *likeRepository) AggregatePerDay(ctx context.Context, from, to time.Time) ([]models.DayLikes, error) {
	var rows []models.DayLikes
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Select("liked_date, COUNT(id) as likes_count").
		Where("liked_date BETWEEN ? AND ?", from, to).
		Group("liked_date").
		Order("liked_date ASC").
		Scan(&rows).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return rows, nil
}
