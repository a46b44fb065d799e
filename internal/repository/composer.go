package repository

import (
	"context"
	"time"

	"plume/internal/models"

	"gorm.io/gorm"
)

// PostFilter narrows the post query before the author join. Filters compose
// with gorm scopes, so a filter can add WHERE clauses or ordering.
type PostFilter func(*gorm.DB) *gorm.DB

// RankStage reorders fully projected views. It runs strictly after
// projection, so ranking can never observe raw rows.
type RankStage func([]*models.PostView) []*models.PostView

// postRow is the flat join row the composer scans before projection.
type postRow struct {
	ID             uint
	Title          string
	Body           string
	CreatedAt      time.Time
	AuthorID       uint
	AuthorUsername string
	AuthorEmail    string
}

// composePostViews runs the single query path every post read goes through:
// apply the filter, join post rows to their authors, project each row into a
// PostView with the viewer's ownership flag resolved, then hand the views to
// the optional rank stage.
func composePostViews(ctx context.Context, db *gorm.DB, viewerID uint, filter PostFilter, rank RankStage) ([]*models.PostView, error) {
	query := db.WithContext(ctx).
		Table("posts").
		Select("posts.id, posts.title, posts.body, posts.created_at, posts.author_id, users.username AS author_username, users.email AS author_email").
		Joins("JOIN users ON users.id = posts.author_id")

	if filter != nil {
		query = filter(query)
	}

	var rows []postRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	views := make([]*models.PostView, 0, len(rows))
	for _, row := range rows {
		views = append(views, &models.PostView{
			ID:        row.ID,
			Title:     row.Title,
			Body:      row.Body,
			CreatedAt: row.CreatedAt,
			Author: models.AuthorRef{
				Username: row.AuthorUsername,
				Avatar:   models.AvatarURL(row.AuthorEmail),
			},
			IsOwner: viewerID != 0 && row.AuthorID == viewerID,
		})
	}

	if rank != nil {
		views = rank(views)
	}

	return views, nil
}
