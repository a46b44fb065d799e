package repository

import (
	"context"

	"plume/internal/models"

	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow-edge data operations.
type FollowRepository interface {
	Create(ctx context.Context, follow *models.Follow) error
	Delete(ctx context.Context, followerID, followedID uint) error
	Exists(ctx context.Context, followerID, followedID uint) (bool, error)
	CountFollowers(ctx context.Context, userID uint) (int64, error)
	CountFollowing(ctx context.Context, userID uint) (int64, error)
	ListFollowers(ctx context.Context, userID uint) ([]models.PublicUser, error)
	ListFollowing(ctx context.Context, userID uint) ([]models.PublicUser, error)
	ListFollowedIDs(ctx context.Context, followerID uint) ([]uint, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository instance.
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Create(ctx context.Context, follow *models.Follow) error {
	if err := r.db.WithContext(ctx).Create(follow).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *followRepository) Delete(ctx context.Context, followerID, followedID uint) error {
	err := r.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&models.Follow{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *followRepository) Exists(ctx context.Context, followerID, followedID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *followRepository) CountFollowers(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("followed_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *followRepository) CountFollowing(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *followRepository) ListFollowers(ctx context.Context, userID uint) ([]models.PublicUser, error) {
	return r.listEdgeUsers(ctx, "users.id = follows.follower_id", "follows.followed_id = ?", userID)
}

func (r *followRepository) ListFollowing(ctx context.Context, userID uint) ([]models.PublicUser, error) {
	return r.listEdgeUsers(ctx, "users.id = follows.followed_id", "follows.follower_id = ?", userID)
}

// listEdgeUsers resolves one side of the follow edge to public identities.
func (r *followRepository) listEdgeUsers(ctx context.Context, joinOn, where string, userID uint) ([]models.PublicUser, error) {
	var rows []struct {
		Username string
		Email    string
	}
	err := r.db.WithContext(ctx).Table("follows").
		Select("users.username, users.email").
		Joins("JOIN users ON "+joinOn).
		Where(where, userID).
		Order("follows.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	users := make([]models.PublicUser, 0, len(rows))
	for _, row := range rows {
		users = append(users, models.PublicUser{
			Username: row.Username,
			Avatar:   models.AvatarURL(row.Email),
		})
	}
	return users, nil
}

func (r *followRepository) ListFollowedIDs(ctx context.Context, followerID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ?", followerID).
		Pluck("followed_id", &ids).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}
