package driven

import "context"

// EmbeddingService generates vector embeddings from text. The vector
// index stores what this service produces; the two are configured with
// matching dimensions.
type EmbeddingService interface {
	// Embed generates an embedding for one text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch embeds multiple texts in one request. Used when
	// loading the document cache into the index.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size.
	Dimensions() int

	// ModelName returns the embedding model in use.
	ModelName() string

	// Close releases resources.
	Close() error
}
