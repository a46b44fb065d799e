package models

import "time"

// Post represents an authored text post. AuthorID and CreatedAt are fixed at
// creation; only title and body may change afterwards, and only by the author.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthorRef is the resolved public identity attached to a PostView.
type AuthorRef struct {
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// PostView is the enriched read shape: a post joined with its author's public
// identity and an ownership flag relative to the requesting user. Only the
// repository's composer builds this type, so the shape and the IsOwner rule
// are computed identically on every read path.
type PostView struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	Author    AuthorRef `json:"author"`
	IsOwner   bool      `json:"is_owner"`
}
