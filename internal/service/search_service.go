package service

import (
	"context"
	"sort"
	"strings"

	"plume/internal/models"
	"plume/internal/repository"
)

// SearchService finds posts matching a search term, most relevant first.
type SearchService struct {
	posts repository.PostRepository
}

// NewSearchService creates a new search service instance.
func NewSearchService(posts repository.PostRepository) *SearchService {
	return &SearchService{posts: posts}
}

// Search returns the posts whose title or body contains the term, ordered by
// relevance. A blank term is a caller error, not an empty result.
func (s *SearchService) Search(ctx context.Context, term string, viewerID uint) ([]*models.PostView, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, models.NewBadRequestError("Search term is required")
	}
	return s.posts.SearchViews(ctx, term, viewerID, relevanceRank(term))
}

// relevanceRank orders views by weighted occurrence count: a title match
// counts three times a body match. Scores are computed once per view, and the
// stable sort keeps the store's recency order among ties.
func relevanceRank(term string) repository.RankStage {
	needle := strings.ToLower(term)
	return func(views []*models.PostView) []*models.PostView {
		scores := make(map[uint]int, len(views))
		for _, v := range views {
			scores[v.ID] = 3*strings.Count(strings.ToLower(v.Title), needle) +
				strings.Count(strings.ToLower(v.Body), needle)
		}
		sort.SliceStable(views, func(i, j int) bool {
			return scores[views[i].ID] > scores[views[j].ID]
		})
		return views
	}
}
