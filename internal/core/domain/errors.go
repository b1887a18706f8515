package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates no matching article or video exists.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrTransport indicates an HTTP or network failure while talking to
	// an external service. Callers treat this as "skip this term", never
	// as fatal for the whole research run.
	ErrTransport = errors.New("transport failure")

	// ErrParse indicates malformed JSON or HTML from an external service.
	ErrParse = errors.New("parse failure")

	// ErrAPIKeyMissing indicates the LLM gateway key is not configured.
	// Constructing a chat client without a key fails with this error;
	// planner helpers degrade to their documented fallbacks instead.
	ErrAPIKeyMissing = errors.New("API key not configured")

	// ErrLLMUnavailable indicates the LLM gateway is not reachable.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. The vector index cannot be loaded without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrVectorIndexUnavailable indicates the vector index backend is
	// missing or uninitialised. Script generation requires the index and
	// fails fast with this error.
	ErrVectorIndexUnavailable = errors.New("vector index unavailable")

	// ErrExtractorUnavailable indicates the video metadata extractor is
	// not installed or not runnable.
	ErrExtractorUnavailable = errors.New("video metadata extractor unavailable")
)
