package service

import (
	"context"
	"strconv"

	"plume/internal/middleware"
	"plume/internal/models"
	"plume/internal/repository"
	"plume/internal/validation"
)

// PostService handles post creation, mutation, and reads.
type PostService struct {
	posts repository.PostRepository
	users repository.UserRepository
}

// NewPostService creates a new post service instance.
func NewPostService(posts repository.PostRepository, users repository.UserRepository) *PostService {
	return &PostService{posts: posts, users: users}
}

// PostInput holds the writable fields of a post.
type PostInput struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func contentViolations(title, body string) []string {
	var violations []string
	if title == "" {
		violations = append(violations, validation.ErrTitleRequired)
	}
	if body == "" {
		violations = append(violations, validation.ErrBodyRequired)
	}
	return violations
}

// CreatePost sanitizes and validates the input and stores the post with the
// caller as its immutable author.
func (s *PostService) CreatePost(ctx context.Context, authorID uint, input PostInput) (*models.Post, error) {
	title := validation.SanitizeText(input.Title)
	body := validation.SanitizeText(input.Body)

	if violations := contentViolations(title, body); len(violations) > 0 {
		return nil, models.NewValidationErrors(violations...)
	}

	post := &models.Post{
		Title:    title,
		Body:     body,
		AuthorID: authorID,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	middleware.Logger.InfoContext(ctx, "post created", "post_id", post.ID)
	return post, nil
}

// GetPost returns the view of a single post. A malformed or unknown ID is
// reported as not found either way.
func (s *PostService) GetPost(ctx context.Context, rawID string, viewerID uint) (*models.PostView, error) {
	id, err := parsePostID(rawID)
	if err != nil {
		return nil, models.NewNotFoundError("Post")
	}

	view, err := s.posts.GetView(ctx, id, viewerID)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, models.NewNotFoundError("Post")
	}
	return view, nil
}

// UpdatePost replaces a post's title and body. The caller must own the post;
// malformed IDs, missing posts, and posts owned by someone else all produce
// the same permission error.
func (s *PostService) UpdatePost(ctx context.Context, rawID string, viewerID uint, input PostInput) error {
	postID, err := s.resolveOwned(ctx, rawID, viewerID)
	if err != nil {
		return err
	}

	title := validation.SanitizeText(input.Title)
	body := validation.SanitizeText(input.Body)
	if violations := contentViolations(title, body); len(violations) > 0 {
		return models.NewValidationErrors(violations...)
	}

	return s.posts.UpdateContent(ctx, postID, title, body)
}

// DeletePost removes a post owned by the caller.
func (s *PostService) DeletePost(ctx context.Context, rawID string, viewerID uint) error {
	postID, err := s.resolveOwned(ctx, rawID, viewerID)
	if err != nil {
		return err
	}
	return s.posts.Delete(ctx, postID)
}

// GetPostsByUsername lists a user's posts, newest first.
func (s *PostService) GetPostsByUsername(ctx context.Context, rawUsername string, viewerID uint) ([]*models.PostView, error) {
	username := validation.NormalizeUsername(rawUsername)
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User")
	}
	return s.posts.GetViewsByAuthor(ctx, user.ID, viewerID)
}

// resolveOwned resolves a post for mutation through the composed view and
// gates on its ownership flag, so the ownership rule lives in one place. The
// permission error carries no hint of whether the post exists.
func (s *PostService) resolveOwned(ctx context.Context, rawID string, viewerID uint) (uint, error) {
	id, err := parsePostID(rawID)
	if err != nil || viewerID == 0 {
		return 0, models.NewPermissionDeniedError()
	}

	view, err := s.posts.GetView(ctx, id, viewerID)
	if err != nil {
		return 0, err
	}
	if view == nil || !view.IsOwner {
		return 0, models.NewPermissionDeniedError()
	}
	return view.ID, nil
}

func parsePostID(rawID string) (uint, error) {
	id, err := strconv.ParseUint(rawID, 10, 32)
	if err != nil || id == 0 {
		return 0, strconv.ErrSyntax
	}
	return uint(id), nil
}
