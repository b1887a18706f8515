package driving

import (
	"context"

	"github.com/draftlab/scriptforge/internal/core/domain"
)

// TermPlanner expands a topic and free-text key points into research
// queries. Every method degrades to a documented fallback rather than
// failing when the LLM is unreachable.
type TermPlanner interface {
	// GenerateSearchTerms returns an ordered, case-insensitively unique
	// term list with topic at index 0. Fallback: [topic].
	GenerateSearchTerms(ctx context.Context, topic string) []string

	// ExtractKeywords pulls research-worthy keywords from free text.
	// Fallback: empty list.
	ExtractKeywords(ctx context.Context, text string) []string

	// ExtractBroaderTopics names up to max broader subjects likely to
	// have encyclopedia articles. Fallback: empty list.
	ExtractBroaderTopics(ctx context.Context, topic string, max int) []string

	// ProcessTopicAndKeyPoints combines term generation and keyword
	// extraction, and parses the bulleted key-points text into
	// statements.
	ProcessTopicAndKeyPoints(ctx context.Context, topic, keyPoints string) (terms []string, parsed []string)
}

// ResearchOrchestrator drives the encyclopedia client across planned
// search terms.
type ResearchOrchestrator interface {
	// Research plans terms for the topic, probes the raw topic,
	// broadens on failure and fetches up to the per-run term cap.
	// Per-term failures are recorded, never fatal. With force set,
	// cached terms are re-fetched and their cache files overwritten.
	Research(ctx context.Context, topic, keyPointsText string, force bool) (*domain.ResearchResult, error)
}
