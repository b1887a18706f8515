package driving

import (
	"context"

	"github.com/draftlab/scriptforge/internal/core/domain"
)

// MarketService analyses the competitive video landscape for a topic.
// Every analysis degrades to explanatory placeholder text when the
// extractor or the LLM gateway is unavailable.
type MarketService interface {
	// SearchVideos fetches basic metadata for videos matching a term.
	SearchVideos(ctx context.Context, term string, maxResults int) ([]domain.Video, error)

	// AnalyzeContent summarises common themes vs unique opportunities.
	AnalyzeContent(ctx context.Context, videos []domain.Video) string

	// ExtractTitlePatterns lists recurring title formats.
	ExtractTitlePatterns(ctx context.Context, videos []domain.Video) []string

	// AnalyzeTopics lists the subject areas the videos cover.
	AnalyzeTopics(ctx context.Context, videos []domain.Video) []string

	// TopicReport produces the full markdown market report for a topic.
	TopicReport(ctx context.Context, topic string, maxVideos int) string
}
