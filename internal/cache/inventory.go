package cache

import (
	"fmt"
	"time"
)

// Cache TTLs.
const (
	PostTTL    = 30 * time.Minute
	ProfileTTL = 10 * time.Minute
)

// PostKey returns the cache key for a single post view.
func PostKey(postID uint) string {
	return fmt.Sprintf("post:%d", postID)
}

// ProfileKey returns the cache key for a user profile.
func ProfileKey(username string) string {
	return fmt.Sprintf("profile:%s", username)
}
