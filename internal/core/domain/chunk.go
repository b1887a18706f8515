package domain

// Chunk is a bounded-size fragment of a cached document stored in the
// vector index. Chunk IDs are deterministic ("<source>_<n>") so that
// re-chunking the same content always yields the same identifiers.
type Chunk struct {
	// ID is unique within the index.
	ID string

	// Source is the path of the cached file the chunk came from.
	Source string

	// Content is the chunk text, at most the chunker's size budget.
	Content string

	// Position is the ordinal position within the source document.
	Position int

	// Embedding is the vector representation. Populated by the
	// knowledge service before the chunk is added to the index.
	Embedding []float32
}

// KnowledgeHit is one similarity-search result from the vector index.
type KnowledgeHit struct {
	// ChunkID is the matched chunk.
	ChunkID string

	// Content is the chunk text.
	Content string

	// Source is the originating file path.
	Source string

	// Distance is the cosine distance to the query; smaller is more
	// relevant. Hits are ordered by ascending distance.
	Distance float64
}
