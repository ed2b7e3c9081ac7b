// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"math/rand"
	"time"

	"pulse/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
	opts Options
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
		opts: opts,
	}
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("SeedPass123!"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:     gofakeit.Email(),
		Password:  string(hashed),
		Pseudonym: gofakeit.Username(),
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePost constructs and persists a sample `models.Post` for the author,
// spread over the configured window of past days.
func (f *Factory) CreatePost(author *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := &models.Post{
		AuthorID:  author.ID,
		Title:     gofakeit.Sentence(5),
		Text:      gofakeit.Paragraph(1, 3, 5, "\n"),
		CreatedAt: f.pastTimestamp(),
	}

	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateLike persists a like from user on post, dated some day in the past
// window. Callers must not hand in the same (post, user) pair twice.
func (f *Factory) CreateLike(post *models.Post, user *models.User, overrides ...func(*models.Like)) (*models.Like, error) {
	like := &models.Like{
		PostID:    post.ID,
		LikedByID: user.ID,
		LikedDate: models.DateOf(f.pastTimestamp()),
	}

	for _, override := range overrides {
		override(like)
	}

	if err := f.db.Create(like).Error; err != nil {
		return nil, err
	}
	return like, nil
}

func (f *Factory) pastTimestamp() time.Time {
	maxDays := f.opts.MaxDaysBack
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.rand.Intn(maxDays)
	hoursBack := f.rand.Intn(24)
	minsBack := f.rand.Intn(60)
	return time.Now().UTC().
		Add(-time.Duration(daysBack)*24*time.Hour -
			time.Duration(hoursBack)*time.Hour -
			time.Duration(minsBack)*time.Minute)
}
