package service

import (
	"context"

	"pulse/internal/models"
	"pulse/internal/repository"
)

// PostService implements post creation, listing and author-only mutation.
type PostService struct {
	postRepo repository.PostRepository
	notifier EventPublisher
	isAdmin  func(ctx context.Context, userID uint) (bool, error)
}

type CreatePostInput struct {
	AuthorID uint
	Title    string
	Text     string
}

type ListPostsInput struct {
	Limit         int
	Offset        int
	CurrentUserID uint
	AuthorID      *uint
}

type UpdatePostInput struct {
	UserID uint
	PostID uint
	Title  *string
	Text   *string
}

type DeletePostInput struct {
	UserID uint
	PostID uint
}

// NewPostService returns a PostService. notifier and isAdmin may be nil.
func NewPostService(
	postRepo repository.PostRepository,
	notifier EventPublisher,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *PostService {
	return &PostService{
		postRepo: postRepo,
		notifier: notifier,
		isAdmin:  isAdmin,
	}
}

const (
	maxTitleLen = 300
	maxTextLen  = 50000
)

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.Text == "" {
		return nil, models.NewValidationError("Text is required")
	}
	if len(in.Text) > maxTextLen {
		return nil, models.NewValidationError("Text too long (max 50000 characters)")
	}
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}

	post := &models.Post{
		AuthorID: in.AuthorID,
		Title:    in.Title,
		Text:     in.Text,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.Publish(ctx, "post.created", map[string]interface{}{
			"post_id":   post.ID,
			"author_id": in.AuthorID,
		})
	}

	return s.postRepo.GetByID(ctx, post.ID, in.AuthorID)
}

func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) ([]*models.Post, error) {
	if in.AuthorID != nil {
		return s.postRepo.GetByAuthorID(ctx, *in.AuthorID, in.Limit, in.Offset, in.CurrentUserID)
	}
	return s.postRepo.List(ctx, in.Limit, in.Offset, in.CurrentUserID)
}

func (s *PostService) GetPost(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id, currentUserID)
}

// UpdatePost applies a partial update. Only the author may modify a post.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID, in.UserID)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own posts")
	}

	if in.Title != nil {
		if len(*in.Title) > maxTitleLen {
			return nil, models.NewValidationError("Title too long (max 300 characters)")
		}
		post.Title = *in.Title
	}
	if in.Text != nil {
		if *in.Text == "" {
			return nil, models.NewValidationError("Text is required")
		}
		if len(*in.Text) > maxTextLen {
			return nil, models.NewValidationError("Text too long (max 50000 characters)")
		}
		post.Text = *in.Text
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, in.PostID, in.UserID)
}

// DeletePost removes a post. Only the author, or an admin, may delete it.
func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.postRepo.GetByID(ctx, in.PostID, in.UserID)
	if err != nil {
		return err
	}

	if post.AuthorID != in.UserID {
		if s.isAdmin == nil {
			return models.NewForbiddenError("You can only delete your own posts")
		}
		admin, err := s.isAdmin(ctx, in.UserID)
		if err != nil {
			return err
		}
		if !admin {
			return models.NewForbiddenError("You can only delete your own posts")
		}
	}

	return s.postRepo.Delete(ctx, in.PostID)
}
