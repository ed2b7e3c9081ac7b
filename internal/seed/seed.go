package seed

import (
	"fmt"
	"log"

	"pulse/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers        int
	MaxPostsPerUser int
	MaxLikesPerUser int
	MaxDaysBack     int
	ShouldClean     bool
}

// Seed populates the database with users, posts and likes. Each user writes
// up to MaxPostsPerUser posts and likes up to MaxLikesPerUser random posts,
// never the same post twice.
func Seed(db *gorm.DB, opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 10
	}
	if opts.MaxPostsPerUser <= 0 {
		opts.MaxPostsPerUser = 5
	}
	if opts.MaxLikesPerUser <= 0 {
		opts.MaxLikesPerUser = 10
	}

	if opts.ShouldClean {
		if err := Clean(db); err != nil {
			return err
		}
	}

	factory := NewFactory(db, opts)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			return fmt.Errorf("seed user %d: %w", i, err)
		}
		users = append(users, user)
	}
	log.Printf("Seeded %d users", len(users))

	var posts []*models.Post
	for _, user := range users {
		count := factory.rand.Intn(opts.MaxPostsPerUser + 1)
		for i := 0; i < count; i++ {
			post, err := factory.CreatePost(user)
			if err != nil {
				return fmt.Errorf("seed post for user %d: %w", user.ID, err)
			}
			posts = append(posts, post)
		}
	}
	log.Printf("Seeded %d posts", len(posts))

	if len(posts) == 0 {
		return nil
	}

	likes := 0
	for _, user := range users {
		count := factory.rand.Intn(opts.MaxLikesPerUser + 1)
		if count > len(posts) {
			count = len(posts)
		}
		// Shuffle and take a prefix so a user never likes a post twice
		perm := factory.rand.Perm(len(posts))
		for _, idx := range perm[:count] {
			if _, err := factory.CreateLike(posts[idx], user); err != nil {
				return fmt.Errorf("seed like for user %d: %w", user.ID, err)
			}
			likes++
		}
	}
	log.Printf("Seeded %d likes", likes)

	return nil
}

// Clean removes all seeded data, children first.
func Clean(db *gorm.DB) error {
	for _, model := range []interface{}{&models.Like{}, &models.Post{}, &models.User{}} {
		if err := db.Where("1 = 1").Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
