package service

import (
	"context"

	"plume/internal/cache"
	"plume/internal/models"
	"plume/internal/repository"
	"plume/internal/validation"
)

// FollowService handles the directed follow graph between users.
type FollowService struct {
	follows repository.FollowRepository
	users   repository.UserRepository
}

// NewFollowService creates a new follow service instance.
func NewFollowService(follows repository.FollowRepository, users repository.UserRepository) *FollowService {
	return &FollowService{follows: follows, users: users}
}

// Follow creates an edge from the caller to the named user. Every violation is
// accumulated before returning. The composite unique index settles concurrent
// duplicate follows; a lost race reads the same as an ordinary duplicate.
func (s *FollowService) Follow(ctx context.Context, followerID uint, rawUsername string) error {
	username := validation.NormalizeUsername(rawUsername)

	target, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return err
	}

	var violations []string
	if target == nil {
		violations = append(violations, validation.ErrFollowMissing)
	} else {
		if target.ID == followerID {
			violations = append(violations, validation.ErrFollowSelf)
		}
		exists, err := s.follows.Exists(ctx, followerID, target.ID)
		if err != nil {
			return err
		}
		if exists {
			violations = append(violations, validation.ErrFollowDuplicate)
		}
	}
	if len(violations) > 0 {
		return models.NewValidationErrors(violations...)
	}

	edge := &models.Follow{FollowerID: followerID, FollowedID: target.ID}
	if err := s.follows.Create(ctx, edge); err != nil {
		if repository.IsDuplicateKey(err) {
			return models.NewValidationErrors(validation.ErrFollowDuplicate)
		}
		return err
	}

	s.invalidateProfiles(ctx, followerID, username)
	return nil
}

// Unfollow removes the edge from the caller to the named user.
func (s *FollowService) Unfollow(ctx context.Context, followerID uint, rawUsername string) error {
	username := validation.NormalizeUsername(rawUsername)

	target, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return err
	}

	var violations []string
	if target == nil {
		violations = append(violations, validation.ErrFollowMissing)
	} else {
		exists, err := s.follows.Exists(ctx, followerID, target.ID)
		if err != nil {
			return err
		}
		if !exists {
			violations = append(violations, validation.ErrUnfollowMissing)
		}
	}
	if len(violations) > 0 {
		return models.NewValidationErrors(violations...)
	}

	if err := s.follows.Delete(ctx, followerID, target.ID); err != nil {
		return err
	}

	s.invalidateProfiles(ctx, followerID, username)
	return nil
}

// invalidateProfiles drops both cached profiles an edge change affects: the
// target's follower count and the follower's following count.
func (s *FollowService) invalidateProfiles(ctx context.Context, followerID uint, targetUsername string) {
	cache.Invalidate(ctx, cache.ProfileKey(targetUsername))
	if follower, err := s.users.GetByID(ctx, followerID); err == nil && follower != nil {
		cache.Invalidate(ctx, cache.ProfileKey(follower.Username))
	}
}

// IsFollowing reports whether the caller follows the named user.
func (s *FollowService) IsFollowing(ctx context.Context, followerID uint, rawUsername string) (bool, error) {
	target, err := s.users.GetByUsername(ctx, validation.NormalizeUsername(rawUsername))
	if err != nil {
		return false, err
	}
	if target == nil {
		return false, models.NewNotFoundError("User")
	}
	return s.follows.Exists(ctx, followerID, target.ID)
}

// GetFollowers lists the public identities of everyone following the named user.
func (s *FollowService) GetFollowers(ctx context.Context, rawUsername string) ([]models.PublicUser, error) {
	target, err := s.resolveUser(ctx, rawUsername)
	if err != nil {
		return nil, err
	}
	return s.follows.ListFollowers(ctx, target.ID)
}

// GetFollowing lists the public identities of everyone the named user follows.
func (s *FollowService) GetFollowing(ctx context.Context, rawUsername string) ([]models.PublicUser, error) {
	target, err := s.resolveUser(ctx, rawUsername)
	if err != nil {
		return nil, err
	}
	return s.follows.ListFollowing(ctx, target.ID)
}

func (s *FollowService) resolveUser(ctx context.Context, rawUsername string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, validation.NormalizeUsername(rawUsername))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User")
	}
	return user, nil
}
