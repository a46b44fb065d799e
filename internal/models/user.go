// Package models contains data structures for the application's domain models.
package models

import (
	"crypto/md5"
	"fmt"
	"time"
)

// User represents a registered account in the Plume application.
// Username and email are stored normalized (trimmed, lower-cased); the unique
// indexes are the final arbiter against concurrent duplicate registrations.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:30;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;size:254;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Posts     []Post    `gorm:"foreignKey:AuthorID" json:"posts,omitempty"`
}

// PublicUser is the projection of a user that is safe to hand to any viewer:
// no email, no credential hash.
type PublicUser struct {
	ID       uint   `json:"id,omitempty"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// AvatarURL derives the gravatar-style avatar reference from a normalized
// email address. It is computed on demand and never persisted.
func AvatarURL(email string) string {
	sum := md5.Sum([]byte(email))
	return fmt.Sprintf("https://gravatar.com/avatar/%x?s=128", sum)
}

// Public returns the user's public projection.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
		Avatar:   AvatarURL(u.Email),
	}
}
