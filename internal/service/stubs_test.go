package service

import (
	"context"

	"plume/internal/models"
	"plume/internal/repository"
)

type userRepoStub struct {
	createFn        func(context.Context, *models.User) error
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}

type postRepoStub struct {
	createFn            func(context.Context, *models.Post) error
	getByIDFn           func(context.Context, uint) (*models.Post, error)
	updateContentFn     func(context.Context, uint, string, string) error
	deleteFn            func(context.Context, uint) error
	getViewFn           func(context.Context, uint, uint) (*models.PostView, error)
	getViewsByAuthorFn  func(context.Context, uint, uint) ([]*models.PostView, error)
	getViewsByAuthorsFn func(context.Context, []uint, uint) ([]*models.PostView, error)
	searchViewsFn       func(context.Context, string, uint, repository.RankStage) ([]*models.PostView, error)
	countByAuthorFn     func(context.Context, uint) (int64, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) UpdateContent(ctx context.Context, id uint, title, body string) error {
	return s.updateContentFn(ctx, id, title, body)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) GetView(ctx context.Context, postID, viewerID uint) (*models.PostView, error) {
	return s.getViewFn(ctx, postID, viewerID)
}
func (s *postRepoStub) GetViewsByAuthor(ctx context.Context, authorID, viewerID uint) ([]*models.PostView, error) {
	return s.getViewsByAuthorFn(ctx, authorID, viewerID)
}
func (s *postRepoStub) GetViewsByAuthors(ctx context.Context, authorIDs []uint, viewerID uint) ([]*models.PostView, error) {
	return s.getViewsByAuthorsFn(ctx, authorIDs, viewerID)
}
func (s *postRepoStub) SearchViews(ctx context.Context, term string, viewerID uint, rank repository.RankStage) ([]*models.PostView, error) {
	return s.searchViewsFn(ctx, term, viewerID, rank)
}
func (s *postRepoStub) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	return s.countByAuthorFn(ctx, authorID)
}

type followRepoStub struct {
	createFn          func(context.Context, *models.Follow) error
	deleteFn          func(context.Context, uint, uint) error
	existsFn          func(context.Context, uint, uint) (bool, error)
	countFollowersFn  func(context.Context, uint) (int64, error)
	countFollowingFn  func(context.Context, uint) (int64, error)
	listFollowersFn   func(context.Context, uint) ([]models.PublicUser, error)
	listFollowingFn   func(context.Context, uint) ([]models.PublicUser, error)
	listFollowedIDsFn func(context.Context, uint) ([]uint, error)
}

func (s *followRepoStub) Create(ctx context.Context, follow *models.Follow) error {
	return s.createFn(ctx, follow)
}
func (s *followRepoStub) Delete(ctx context.Context, followerID, followedID uint) error {
	return s.deleteFn(ctx, followerID, followedID)
}
func (s *followRepoStub) Exists(ctx context.Context, followerID, followedID uint) (bool, error) {
	return s.existsFn(ctx, followerID, followedID)
}
func (s *followRepoStub) CountFollowers(ctx context.Context, userID uint) (int64, error) {
	return s.countFollowersFn(ctx, userID)
}
func (s *followRepoStub) CountFollowing(ctx context.Context, userID uint) (int64, error) {
	return s.countFollowingFn(ctx, userID)
}
func (s *followRepoStub) ListFollowers(ctx context.Context, userID uint) ([]models.PublicUser, error) {
	return s.listFollowersFn(ctx, userID)
}
func (s *followRepoStub) ListFollowing(ctx context.Context, userID uint) ([]models.PublicUser, error) {
	return s.listFollowingFn(ctx, userID)
}
func (s *followRepoStub) ListFollowedIDs(ctx context.Context, followerID uint) ([]uint, error) {
	return s.listFollowedIDsFn(ctx, followerID)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:        func(context.Context, *models.User) error { return nil },
		getByIDFn:       func(context.Context, uint) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		getByEmailFn:    func(context.Context, string) (*models.User, error) { return nil, nil },
	}
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:        func(context.Context, *models.Post) error { return nil },
		getByIDFn:       func(context.Context, uint) (*models.Post, error) { return nil, nil },
		updateContentFn: func(context.Context, uint, string, string) error { return nil },
		deleteFn:        func(context.Context, uint) error { return nil },
		getViewFn:       func(context.Context, uint, uint) (*models.PostView, error) { return nil, nil },
		getViewsByAuthorFn: func(context.Context, uint, uint) ([]*models.PostView, error) {
			return nil, nil
		},
		getViewsByAuthorsFn: func(context.Context, []uint, uint) ([]*models.PostView, error) {
			return nil, nil
		},
		searchViewsFn: func(context.Context, string, uint, repository.RankStage) ([]*models.PostView, error) {
			return nil, nil
		},
		countByAuthorFn: func(context.Context, uint) (int64, error) { return 0, nil },
	}
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		createFn:          func(context.Context, *models.Follow) error { return nil },
		deleteFn:          func(context.Context, uint, uint) error { return nil },
		existsFn:          func(context.Context, uint, uint) (bool, error) { return false, nil },
		countFollowersFn:  func(context.Context, uint) (int64, error) { return 0, nil },
		countFollowingFn:  func(context.Context, uint) (int64, error) { return 0, nil },
		listFollowersFn:   func(context.Context, uint) ([]models.PublicUser, error) { return nil, nil },
		listFollowingFn:   func(context.Context, uint) ([]models.PublicUser, error) { return nil, nil },
		listFollowedIDsFn: func(context.Context, uint) ([]uint, error) { return nil, nil },
	}
}
