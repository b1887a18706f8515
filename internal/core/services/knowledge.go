package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/draftlab/scriptforge/internal/core/domain"
	"github.com/draftlab/scriptforge/internal/core/ports/driven"
	"github.com/draftlab/scriptforge/internal/core/ports/driving"
	"github.com/draftlab/scriptforge/internal/logger"
	"github.com/draftlab/scriptforge/internal/normalisers/wikitext"
	"github.com/draftlab/scriptforge/internal/postprocessors/chunker"
)

// Ensure KnowledgeService implements the interface.
var _ driving.KnowledgeService = (*KnowledgeService)(nil)

const (
	defaultSearchK       = 5
	defaultContextLen    = 4000
	defaultAnswerResults = 3
	contextFetchK        = 10
)

// KnowledgeService owns the document-to-context pipeline: it chunks the
// article cache into the vector index and answers retrieval queries
// against it.
type KnowledgeService struct {
	cache    driven.ArticleCache
	chunker  *chunker.Processor
	embedder driven.EmbeddingService
	index    driven.VectorIndex
}

// NewKnowledgeService creates a knowledge service. The embedder and
// index parameters are optional (can be nil); without them the service
// reports unavailable and retrieval operations fail with the matching
// sentinel error.
func NewKnowledgeService(
	cache driven.ArticleCache,
	proc *chunker.Processor,
	embedder driven.EmbeddingService,
	index driven.VectorIndex,
) *KnowledgeService {
	return &KnowledgeService{
		cache:    cache,
		chunker:  proc,
		embedder: embedder,
		index:    index,
	}
}

// Available reports whether the retrieval backend is usable.
func (s *KnowledgeService) Available() bool {
	return s.index != nil && s.embedder != nil
}

// LoadDocuments rebuilds the vector index from the article cache. The
// previous chunk set is dropped wholesale before the new one goes in,
// so the call is idempotent and there is never a stale-chunk state.
func (s *KnowledgeService) LoadDocuments(ctx context.Context) error {
	if s.index == nil {
		return domain.ErrVectorIndexUnavailable
	}
	if s.embedder == nil {
		return domain.ErrEmbeddingUnavailable
	}

	logger.Section("Document Indexing")

	docs, err := s.cache.List(ctx)
	if err != nil {
		return fmt.Errorf("list cached documents: %w", err)
	}

	var chunks []domain.Chunk
	for _, doc := range docs {
		docChunks := s.chunker.Process(doc.Path, doc.Content)
		logger.Debug("Processed %s: %d chunks", doc.Path, len(docChunks))
		chunks = append(chunks, docChunks...)
	}

	if err := s.index.Reset(ctx); err != nil {
		return fmt.Errorf("reset index: %w", err)
	}

	if len(chunks) == 0 {
		logger.Info("No documents to index")
		return nil
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Content
	}

	embeddings, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed chunks: %w", err)
	}
	if len(embeddings) != len(chunks) {
		return fmt.Errorf("embedding count mismatch: got %d for %d chunks", len(embeddings), len(chunks))
	}
	for i := range chunks {
		chunks[i].Embedding = embeddings[i]
	}

	if err := s.index.Add(ctx, chunks); err != nil {
		return fmt.Errorf("index chunks: %w", err)
	}

	logger.Info("Loaded %d chunks from %d documents", len(chunks), len(docs))
	return nil
}

// Search retrieves up to k chunks relevant to query. The topic context
// is prepended to the query text before embedding, which biases the
// vector toward the research subject.
func (s *KnowledgeService) Search(ctx context.Context, query, topicContext string, k int) ([]domain.KnowledgeHit, error) {
	if s.index == nil {
		return nil, domain.ErrVectorIndexUnavailable
	}
	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	if k <= 0 {
		k = defaultSearchK
	}

	searchQuery := strings.TrimSpace(topicContext + " " + query)
	embedding, err := s.embedder.Embed(ctx, searchQuery)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	hits, err := s.index.Search(ctx, embedding, k)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}

	logger.Debug("Found %d results for query: %s", len(hits), query)
	return hits, nil
}

// ContextForLLM assembles retrieved chunks into a prompt context block.
// Fragments are packed greedily in relevance order; the first fragment
// that does not fit under maxLen ends the packing, so the block never
// contains a truncated chunk.
func (s *KnowledgeService) ContextForLLM(ctx context.Context, query, topicContext string, maxLen int) (string, error) {
	if maxLen <= 0 {
		maxLen = defaultContextLen
	}

	hits, err := s.Search(ctx, query, topicContext, contextFetchK)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, hit := range hits {
		part := fmt.Sprintf("Source: %s\n%s\n\n", filepath.Base(hit.Source), hit.Content)
		if b.Len()+len(part) > maxLen {
			break
		}
		b.WriteString(part)
	}
	return strings.TrimSpace(b.String()), nil
}

// QuickAnswer produces a best-effort extractive answer for a question
// without an LLM call: the top-scoring paragraph of each hit is
// stitched into a flowing answer with a Question/Context/Answer/Sources
// framing.
func (s *KnowledgeService) QuickAnswer(ctx context.Context, question, topicContext string, maxResults int) (string, error) {
	if maxResults <= 0 {
		maxResults = defaultAnswerResults
	}

	hits, err := s.Search(ctx, question, topicContext, maxResults)
	if err != nil {
		return "", err
	}
	if len(hits) == 0 {
		return fmt.Sprintf("No information found for: %s", question), nil
	}

	var pieces []string
	var sources []string
	for _, hit := range hits {
		piece := bestParagraph(hit.Content, question)
		if piece == "" {
			continue
		}
		pieces = append(pieces, piece)
		sources = append(sources, readableSourceName(hit.Source))
	}

	if len(pieces) == 0 {
		return fmt.Sprintf("No relevant information found for: %s", question), nil
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("**Question:** %s\n", question))
	if topicContext != "" {
		parts = append(parts, fmt.Sprintf("**Context:** %s\n", topicContext))
	}
	parts = append(parts, "**Answer:**", stitchAnswer(pieces))
	parts = append(parts, fmt.Sprintf("\n**Sources:** %s", strings.Join(dedupeTerms(sources), ", ")))

	return strings.Join(parts, "\n"), nil
}

// bestParagraph cleans a chunk and returns its most question-relevant
// complete paragraph. Scoring is question-word overlap plus a length
// bonus capped at three points, so a long on-topic paragraph beats a
// short keyword match.
func bestParagraph(content, question string) string {
	content = wikitext.CleanText(content)

	var paragraphs []string
	for _, p := range strings.Split(content, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	if len(paragraphs) == 0 {
		return ""
	}

	questionWords := wordSet(question)

	best := ""
	bestScore := -1.0
	for _, para := range paragraphs {
		if len(para) < 30 || strings.ContainsAny(para[:1], "#*-|[") {
			continue
		}

		overlap := 0
		for word := range wordSet(para) {
			if questionWords[word] {
				overlap++
			}
		}
		score := float64(overlap) + min(float64(len(para))/100, 3)
		if score > bestScore {
			best = para
			bestScore = score
		}
	}

	if best == "" {
		return paragraphs[0]
	}
	return best
}

// stitchAnswer joins paragraph pieces with connecting phrases so the
// combined text reads as one answer rather than a list of excerpts.
func stitchAnswer(pieces []string) string {
	var b strings.Builder
	for i, piece := range pieces {
		switch i {
		case 0:
			b.WriteString(piece)
		case 1:
			b.WriteString("\n\nAdditionally, " + lowerFirst(piece))
		default:
			b.WriteString("\n\nFurthermore, " + lowerFirst(piece))
		}
	}
	return b.String()
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// readableSourceName turns a cache file path into display text:
// "Mercury-planet.md" becomes "Mercury planet".
func readableSourceName(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), ".md")
	name = strings.ReplaceAll(name, "_", " ")
	return strings.ReplaceAll(name, "-", " ")
}

func wordSet(s string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(s)) {
		words[w] = true
	}
	return words
}
