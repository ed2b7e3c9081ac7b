package service

import (
	"context"
	"time"

	"pulse/internal/middleware"
	"pulse/internal/models"
	"pulse/internal/repository"
)

// EventPublisher pushes domain events to interested subscribers. A nil
// publisher disables notifications.
type EventPublisher interface {
	Publish(ctx context.Context, event string, payload interface{})
}

// LikeService implements liking and unliking of posts.
type LikeService struct {
	likeRepo repository.LikeRepository
	postRepo repository.PostRepository
	notifier EventPublisher
	now      func() time.Time
}

// NewLikeService returns a LikeService. notifier may be nil.
func NewLikeService(likeRepo repository.LikeRepository, postRepo repository.PostRepository, notifier EventPublisher) *LikeService {
	return &LikeService{
		likeRepo: likeRepo,
		postRepo: postRepo,
		notifier: notifier,
		now:      time.Now,
	}
}

// Like records that userID liked postID and returns the refreshed post.
// The existence check is only a fast path; when two requests race past it,
// the unique index on (post_id, liked_by_id) rejects the second insert and
// the loser receives the same already-liked conflict.
func (s *LikeService) Like(ctx context.Context, userID, postID uint) (*models.Post, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, userID); err != nil {
		return nil, err
	}

	liked, err := s.likeRepo.Exists(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if liked {
		middleware.LikeOperations.WithLabelValues("like", "conflict").Inc()
		return nil, models.NewAlreadyLikedError()
	}

	like := &models.Like{
		PostID:    postID,
		LikedByID: userID,
		LikedDate: models.DateOf(s.now()),
	}
	if err := s.likeRepo.Create(ctx, like); err != nil {
		middleware.LikeOperations.WithLabelValues("like", "conflict").Inc()
		return nil, err
	}
	middleware.LikeOperations.WithLabelValues("like", "ok").Inc()

	if s.notifier != nil {
		s.notifier.Publish(ctx, "post.liked", map[string]interface{}{
			"post_id": postID,
			"user_id": userID,
		})
	}

	return s.postRepo.GetByID(ctx, postID, userID)
}

// Unlike removes userID's like from postID and returns the refreshed post.
// The delete itself decides the outcome: zero rows affected means there was
// nothing to remove, regardless of what any earlier check saw.
func (s *LikeService) Unlike(ctx context.Context, userID, postID uint) (*models.Post, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, userID); err != nil {
		return nil, err
	}

	rows, err := s.likeRepo.DeleteByPostAndUser(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		middleware.LikeOperations.WithLabelValues("unlike", "conflict").Inc()
		return nil, models.NewNotLikedError()
	}
	middleware.LikeOperations.WithLabelValues("unlike", "ok").Inc()

	if s.notifier != nil {
		s.notifier.Publish(ctx, "post.unliked", map[string]interface{}{
			"post_id": postID,
			"user_id": userID,
		})
	}

	return s.postRepo.GetByID(ctx, postID, userID)
}
