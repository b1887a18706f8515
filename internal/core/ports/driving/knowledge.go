package driving

import (
	"context"

	"github.com/draftlab/scriptforge/internal/core/domain"
)

// KnowledgeService owns the document-to-context pipeline: chunking the
// article cache into the vector index and answering retrieval queries
// against it.
type KnowledgeService interface {
	// LoadDocuments rebuilds the index from the article cache. The
	// previous chunk set is dropped first; the call is idempotent.
	LoadDocuments(ctx context.Context) error

	// Search retrieves up to k chunks relevant to query, with
	// topicContext prepended to the query text before embedding.
	Search(ctx context.Context, query, topicContext string, k int) ([]domain.KnowledgeHit, error)

	// ContextForLLM assembles retrieved chunks into a prompt context
	// block, greedily packing whole "Source: name\ncontent" fragments
	// under maxLen. A fragment that does not fit is dropped entirely.
	ContextForLLM(ctx context.Context, query, topicContext string, maxLen int) (string, error)

	// QuickAnswer produces a best-effort extractive answer for a
	// question, stitched from the top-scoring paragraph of each hit.
	QuickAnswer(ctx context.Context, question, topicContext string, maxResults int) (string, error)

	// Available reports whether the vector backend is usable.
	Available() bool
}
