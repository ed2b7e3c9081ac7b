// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents a registered account in the Pulse application.
// Deletion is immediate and cascades to the user's posts and likes.
type User struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Email         string     `gorm:"uniqueIndex;not null" json:"email"`
	Password      string     `gorm:"not null" json:"-"`
	Pseudonym     string     `json:"pseudonym"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	IsAdmin       bool       `gorm:"default:false" json:"is_admin"`
	LastLoginAt   *time.Time `json:"last_login_at"`
	LastRequestAt *time.Time `json:"last_request_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	Posts []Post `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"posts,omitempty"`
	Likes []Like `gorm:"foreignKey:LikedByID;constraint:OnDelete:CASCADE" json:"-"`
}
