package driven

import (
	"context"

	"github.com/draftlab/scriptforge/internal/core/domain"
)

// VectorIndex is the persistent similarity-searchable chunk collection.
// The chunk set is rebuilt wholesale on every document load: Reset
// drops and recreates the collection, then Add repopulates it. There is
// no incremental update path.
type VectorIndex interface {
	// Reset drops the collection and recreates it empty.
	Reset(ctx context.Context) error

	// Add inserts chunks with their embeddings.
	Add(ctx context.Context, chunks []domain.Chunk) error

	// Search returns up to k nearest chunks to the query embedding,
	// ordered by ascending cosine distance. An empty index yields an
	// empty slice, not an error.
	Search(ctx context.Context, query []float32, k int) ([]domain.KnowledgeHit, error)

	// Count reports the number of stored chunks.
	Count(ctx context.Context) (int, error)

	// Close releases resources.
	Close() error
}
