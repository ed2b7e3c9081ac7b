package models

import "time"

// Like records that a user liked a post. The (post, liked_by) pair is
// unique; the composite index is the correctness mechanism under
// concurrent likes, not the application-level existence check.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_likes_post_liked_by" json:"post_id"`
	LikedByID uint      `gorm:"not null;uniqueIndex:idx_likes_post_liked_by" json:"liked_by_id"`
	LikedDate time.Time `gorm:"not null;index" json:"liked_date"`

	Post    Post `gorm:"foreignKey:PostID" json:"-"`
	LikedBy User `gorm:"foreignKey:LikedByID" json:"-"`
}

// DayLikes is one row of the per-day like aggregation.
type DayLikes struct {
	Date       time.Time `gorm:"column:liked_date" json:"date"`
	LikesCount int64     `gorm:"column:likes_count" json:"likes_count"`
}

// DateOf truncates t to a calendar date at UTC midnight, the normal form
// for Like.LikedDate values and analytics range bounds.
func DateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
