package service

import (
	"context"

	"plume/internal/models"
	"plume/internal/repository"
)

// FeedService assembles the home feed from the follow graph.
type FeedService struct {
	follows repository.FollowRepository
	posts   repository.PostRepository
}

// NewFeedService creates a new feed service instance.
func NewFeedService(follows repository.FollowRepository, posts repository.PostRepository) *FeedService {
	return &FeedService{follows: follows, posts: posts}
}

// BuildFeed returns the posts of every user the caller follows, newest first.
// A user following nobody gets an empty feed without a post-store round trip.
func (s *FeedService) BuildFeed(ctx context.Context, userID uint) ([]*models.PostView, error) {
	followedIDs, err := s.follows.ListFollowedIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(followedIDs) == 0 {
		return []*models.PostView{}, nil
	}
	return s.posts.GetViewsByAuthors(ctx, followedIDs, userID)
}
