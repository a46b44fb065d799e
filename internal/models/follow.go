package models

import "time"

// Follow is a directed edge meaning the follower's feed includes the followed
// user's posts. The composite unique index makes the store the final arbiter
// against concurrent duplicate follows; the service-level pre-check only
// exists to produce a friendly error in the common case.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_follow_edge;index" json:"follower_id"`
	FollowedID uint      `gorm:"not null;uniqueIndex:idx_follow_edge;index" json:"followed_id"`
	CreatedAt  time.Time `json:"created_at"`

	Follower User `gorm:"foreignKey:FollowerID" json:"-"`
	Followed User `gorm:"foreignKey:FollowedID" json:"-"`
}

// TableName specifies the table name for GORM
func (Follow) TableName() string {
	return "follows"
}
