package seed

import (
	"testing"

	"pulse/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Post{}, &models.Like{}))
	return db
}

func TestSeed(t *testing.T) {
	db := setupTestDB(t)

	err := Seed(db, Options{
		NumUsers:        5,
		MaxPostsPerUser: 3,
		MaxLikesPerUser: 4,
		MaxDaysBack:     30,
	})
	require.NoError(t, err)

	var userCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	assert.Equal(t, int64(5), userCount)

	// No user may like the same post twice; the seeder has to respect the
	// same uniqueness the API enforces
	var dupes []struct {
		PostID    uint
		LikedByID uint
		Cnt       int64
	}
	require.NoError(t, db.Model(&models.Like{}).
		Select("post_id, liked_by_id, COUNT(*) as cnt").
		Group("post_id, liked_by_id").
		Having("COUNT(*) > 1").
		Scan(&dupes).Error)
	assert.Empty(t, dupes)

	var likes []models.Like
	require.NoError(t, db.Find(&likes).Error)
	for _, like := range likes {
		got := like.LikedDate.UTC()
		assert.True(t, got.Equal(models.DateOf(got)), "liked_date must be a day boundary, got %v", got)
	}
}

func TestSeedClean(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, Seed(db, Options{NumUsers: 3, MaxPostsPerUser: 2, MaxLikesPerUser: 2}))
	require.NoError(t, Seed(db, Options{NumUsers: 2, MaxPostsPerUser: 1, MaxLikesPerUser: 1, ShouldClean: true}))

	var userCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	assert.Equal(t, int64(2), userCount)
}

func TestFactoryCreateUserOverrides(t *testing.T) {
	db := setupTestDB(t)
	factory := NewFactory(db, Options{})

	user, err := factory.CreateUser(func(u *models.User) {
		u.Email = "fixed@example.com"
		u.IsAdmin = true
	})
	require.NoError(t, err)
	assert.Equal(t, "fixed@example.com", user.Email)
	assert.True(t, user.IsAdmin)
}
