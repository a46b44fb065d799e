// Package service contains the application's business logic.
package service

import (
	"context"

	"plume/internal/cache"
	"plume/internal/middleware"
	"plume/internal/models"
	"plume/internal/repository"
	"plume/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// UserService handles registration, authentication, and profile reads.
type UserService struct {
	users   repository.UserRepository
	posts   repository.PostRepository
	follows repository.FollowRepository
}

// NewUserService creates a new user service instance.
func NewUserService(users repository.UserRepository, posts repository.PostRepository, follows repository.FollowRepository) *UserService {
	return &UserService{users: users, posts: posts, follows: follows}
}

// RegisterInput holds the fields for user registration.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginInput holds the fields for user login.
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Profile is the public view of an account, resolved for a specific viewer.
type Profile struct {
	ID             uint   `json:"id"`
	Username       string `json:"username"`
	Avatar         string `json:"avatar"`
	PostCount      int64  `json:"post_count"`
	FollowerCount  int64  `json:"follower_count"`
	FollowingCount int64  `json:"following_count"`
	IsFollowing    bool   `json:"is_following"`
	IsOwner        bool   `json:"is_owner"`
}

// Register validates the input, accumulating every violation before returning,
// and creates the account. Uniqueness lookups only run for syntactically valid
// values; the unique indexes settle any race, and a lost race is reported with
// the same message as an ordinary duplicate.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	username := validation.NormalizeUsername(input.Username)
	email := validation.NormalizeEmail(input.Email)

	violations := validation.UsernameViolations(username)
	if validation.UsernameSyntaxOK(username) {
		existing, err := s.users.GetByUsername(ctx, username)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			violations = append(violations, validation.ErrUsernameTaken)
		}
	}

	violations = append(violations, validation.EmailViolations(email)...)
	if validation.EmailSyntaxOK(email) {
		existing, err := s.users.GetByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			violations = append(violations, validation.ErrEmailTaken)
		}
	}

	violations = append(violations, validation.PasswordViolations(input.Password)...)

	if len(violations) > 0 {
		return nil, models.NewValidationErrors(violations...)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashed),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, s.duplicateRegistration(ctx, username)
		}
		return nil, err
	}

	middleware.Logger.InfoContext(ctx, "user registered", "username", username)
	return user, nil
}

// duplicateRegistration decides which taken-message to report after the store
// rejected an insert that passed the pre-checks.
func (s *UserService) duplicateRegistration(ctx context.Context, username string) error {
	existing, err := s.users.GetByUsername(ctx, username)
	if err == nil && existing != nil {
		return models.NewValidationErrors(validation.ErrUsernameTaken)
	}
	return models.NewValidationErrors(validation.ErrEmailTaken)
}

// Login verifies the credentials. Unknown username and wrong password return
// the identical error so the response never confirms which part was wrong.
func (s *UserService) Login(ctx context.Context, input LoginInput) (*models.User, error) {
	username := validation.NormalizeUsername(input.Username)

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewAuthError()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return nil, models.NewAuthError()
	}

	return user, nil
}

// GetProfile resolves a username to its public profile for the given viewer.
// Anonymous profiles look the same to everyone, so only those are cached.
func (s *UserService) GetProfile(ctx context.Context, rawUsername string, viewerID uint) (*Profile, error) {
	username := validation.NormalizeUsername(rawUsername)

	fetch := func() (*Profile, error) {
		user, err := s.users.GetByUsername(ctx, username)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, models.NewNotFoundError("User")
		}

		postCount, err := s.posts.CountByAuthor(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		followerCount, err := s.follows.CountFollowers(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		followingCount, err := s.follows.CountFollowing(ctx, user.ID)
		if err != nil {
			return nil, err
		}

		profile := &Profile{
			ID:             user.ID,
			Username:       user.Username,
			Avatar:         models.AvatarURL(user.Email),
			PostCount:      postCount,
			FollowerCount:  followerCount,
			FollowingCount: followingCount,
			IsOwner:        viewerID != 0 && viewerID == user.ID,
		}
		if viewerID != 0 && viewerID != user.ID {
			following, err := s.follows.Exists(ctx, viewerID, user.ID)
			if err != nil {
				return nil, err
			}
			profile.IsFollowing = following
		}
		return profile, nil
	}

	if viewerID == 0 {
		return cache.Aside(ctx, cache.ProfileKey(username), cache.ProfileTTL, fetch)
	}
	return fetch()
}

// UsernameExists reports whether a syntactically valid username is taken.
// Invalid input returns false without touching the store.
func (s *UserService) UsernameExists(ctx context.Context, rawUsername string) bool {
	username := validation.NormalizeUsername(rawUsername)
	if !validation.UsernameSyntaxOK(username) {
		return false
	}
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		middleware.Logger.ErrorContext(ctx, "username lookup failed", "error", err)
		return false
	}
	return user != nil
}

// EmailExists reports whether a syntactically valid email is registered.
func (s *UserService) EmailExists(ctx context.Context, rawEmail string) bool {
	email := validation.NormalizeEmail(rawEmail)
	if !validation.EmailSyntaxOK(email) {
		return false
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		middleware.Logger.ErrorContext(ctx, "email lookup failed", "error", err)
		return false
	}
	return user != nil
}
