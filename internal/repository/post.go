package repository

import (
	"context"
	"errors"
	"strings"

	"plume/internal/cache"
	"plume/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations. All read
// methods return PostViews built by the composer, never raw rows.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	UpdateContent(ctx context.Context, id uint, title, body string) error
	Delete(ctx context.Context, id uint) error
	GetView(ctx context.Context, postID, viewerID uint) (*models.PostView, error)
	GetViewsByAuthor(ctx context.Context, authorID, viewerID uint) ([]*models.PostView, error)
	GetViewsByAuthors(ctx context.Context, authorIDs []uint, viewerID uint) ([]*models.PostView, error)
	SearchViews(ctx context.Context, term string, viewerID uint, rank RankStage) ([]*models.PostView, error)
	CountByAuthor(ctx context.Context, authorID uint) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository instance.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).First(&post, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) UpdateContent(ctx context.Context, id uint, title, body string) error {
	err := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).
		Updates(map[string]any{"title": title, "body": body}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.PostKey(id))
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Post{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.PostKey(id))
	return nil
}

// GetView returns a single post view, or nil when the post does not exist.
// Anonymous reads are identical for every visitor, so only those go through
// the cache.
func (r *postRepository) GetView(ctx context.Context, postID, viewerID uint) (*models.PostView, error) {
	fetch := func() (*models.PostView, error) {
		views, err := composePostViews(ctx, r.db, viewerID, func(q *gorm.DB) *gorm.DB {
			return q.Where("posts.id = ?", postID)
		}, nil)
		if err != nil {
			return nil, err
		}
		if len(views) == 0 {
			return nil, gorm.ErrRecordNotFound
		}
		return views[0], nil
	}

	var view *models.PostView
	var err error
	if viewerID == 0 {
		view, err = cache.Aside(ctx, cache.PostKey(postID), cache.PostTTL, fetch)
	} else {
		view, err = fetch()
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return view, err
}

func (r *postRepository) GetViewsByAuthor(ctx context.Context, authorID, viewerID uint) ([]*models.PostView, error) {
	return composePostViews(ctx, r.db, viewerID, func(q *gorm.DB) *gorm.DB {
		return q.Where("posts.author_id = ?", authorID).Order("posts.created_at DESC")
	}, nil)
}

func (r *postRepository) GetViewsByAuthors(ctx context.Context, authorIDs []uint, viewerID uint) ([]*models.PostView, error) {
	return composePostViews(ctx, r.db, viewerID, func(q *gorm.DB) *gorm.DB {
		return q.Where("posts.author_id IN ?", authorIDs).Order("posts.created_at DESC")
	}, nil)
}

// likeEscaper makes LIKE metacharacters in a search term match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchViews matches the term case-insensitively against title and body and
// applies the rank stage after projection.
func (r *postRepository) SearchViews(ctx context.Context, term string, viewerID uint, rank RankStage) ([]*models.PostView, error) {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
	return composePostViews(ctx, r.db, viewerID, func(q *gorm.DB) *gorm.DB {
		return q.Where(`LOWER(posts.title) LIKE ? ESCAPE '\' OR LOWER(posts.body) LIKE ? ESCAPE '\'`, pattern, pattern)
	}, rank)
}

func (r *postRepository) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("author_id = ?", authorID).Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
