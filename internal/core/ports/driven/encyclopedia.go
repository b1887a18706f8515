package driven

import (
	"context"

	"github.com/draftlab/scriptforge/internal/core/domain"
)

// Encyclopedia fetches and extracts articles from the public
// encyclopedia API. One SearchArticle call may perform several HTTP
// requests (open search, extract, parse, related fetches); the adapter
// rate-limits each of them and writes every extracted article to the
// article cache as a side effect.
type Encyclopedia interface {
	// SearchArticle researches one topic: resolves the best page,
	// follows disambiguation, harvests related articles and derives key
	// facts and sections. Returns domain.ErrNotFound when no candidate
	// page exists.
	SearchArticle(ctx context.Context, topic string) (*domain.ArticleRecord, error)

	// RefreshArticle behaves like SearchArticle but overwrites cache
	// files that already exist for the topic and its related articles.
	RefreshArticle(ctx context.Context, topic string) (*domain.ArticleRecord, error)

	// BuildDossier produces the human-readable markdown dossier for a
	// topic, including images, and persists it to the cache.
	BuildDossier(ctx context.Context, topic string) (string, error)
}
