package models

import "time"

// Post represents a post authored by a user. Title is optional, text is
// required. CreatedAt is set once at creation and never updated; listings
// are ordered by it ascending.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	AuthorID uint   `gorm:"not null;index" json:"author_id"`
	Author   User   `gorm:"foreignKey:AuthorID" json:"author"`
	Title    string `json:"title"`
	Text     string `gorm:"type:text;not null" json:"text"`
	// LikesCount is not persisted; computed at query time
	LikesCount int64 `gorm:"->" json:"likes"`
	// Liked indicates whether the current requesting user liked this post (computed)
	Liked     bool      `gorm:"->" json:"liked"`
	CreatedAt time.Time `gorm:"<-:create" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Likes []Like `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
}
