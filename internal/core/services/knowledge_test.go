package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftlab/scriptforge/internal/core/domain"
	"github.com/draftlab/scriptforge/internal/postprocessors/chunker"
)

func newTestKnowledge(cache *mockArticleCache, index *mockVectorIndex) *KnowledgeService {
	return NewKnowledgeService(cache, chunker.New(), &mockEmbedder{}, index)
}

func TestKnowledge_Available(t *testing.T) {
	cache := newMockArticleCache()
	assert.True(t, newTestKnowledge(cache, &mockVectorIndex{}).Available())
	assert.False(t, NewKnowledgeService(cache, chunker.New(), nil, &mockVectorIndex{}).Available())
	assert.False(t, NewKnowledgeService(cache, chunker.New(), &mockEmbedder{}, nil).Available())
}

func TestLoadDocuments(t *testing.T) {
	cache := newMockArticleCache()
	require.NoError(t, cache.Save("Coffee", "# Coffee\n\nCoffee is a brewed drink.", false))
	require.NoError(t, cache.Save("Espresso", "# Espresso\n\nEspresso is concentrated coffee.", false))

	index := &mockVectorIndex{}
	svc := newTestKnowledge(cache, index)

	require.NoError(t, svc.LoadDocuments(context.Background()))

	assert.Equal(t, 1, index.resets)
	require.NotEmpty(t, index.chunks)
	for _, chunk := range index.chunks {
		assert.NotEmpty(t, chunk.Embedding, "chunk %s missing embedding", chunk.ID)
	}
}

func TestLoadDocuments_RebuildIsIdempotent(t *testing.T) {
	cache := newMockArticleCache()
	require.NoError(t, cache.Save("Coffee", "# Coffee\n\nBody text here.", false))

	index := &mockVectorIndex{}
	svc := newTestKnowledge(cache, index)

	require.NoError(t, svc.LoadDocuments(context.Background()))
	first := len(index.chunks)
	require.NoError(t, svc.LoadDocuments(context.Background()))

	assert.Equal(t, 2, index.resets)
	assert.Len(t, index.chunks, first, "second load must not accumulate chunks")
}

func TestLoadDocuments_EmptyCache(t *testing.T) {
	index := &mockVectorIndex{}
	svc := newTestKnowledge(newMockArticleCache(), index)

	require.NoError(t, svc.LoadDocuments(context.Background()))
	assert.Equal(t, 1, index.resets, "index is still cleared")
	assert.Empty(t, index.chunks)
}

func TestLoadDocuments_MissingBackends(t *testing.T) {
	cache := newMockArticleCache()

	svc := NewKnowledgeService(cache, chunker.New(), &mockEmbedder{}, nil)
	assert.ErrorIs(t, svc.LoadDocuments(context.Background()), domain.ErrVectorIndexUnavailable)

	svc = NewKnowledgeService(cache, chunker.New(), nil, &mockVectorIndex{})
	assert.ErrorIs(t, svc.LoadDocuments(context.Background()), domain.ErrEmbeddingUnavailable)
}

func TestSearch_PrependsTopicContext(t *testing.T) {
	embedder := &mockEmbedder{}
	index := &mockVectorIndex{hits: []domain.KnowledgeHit{{ChunkID: "a_0", Content: "text", Source: "a.md"}}}
	svc := NewKnowledgeService(newMockArticleCache(), chunker.New(), embedder, index)

	hits, err := svc.Search(context.Background(), "how is it brewed", "coffee", 5)
	require.NoError(t, err)
	require.Len(t, hits, 1)

	require.Len(t, embedder.calls, 1)
	assert.Equal(t, "coffee how is it brewed", embedder.calls[0])
}

func TestSearch_DefaultK(t *testing.T) {
	hits := make([]domain.KnowledgeHit, 8)
	index := &mockVectorIndex{hits: hits}
	svc := newTestKnowledge(newMockArticleCache(), index)

	got, err := svc.Search(context.Background(), "q", "", 0)
	require.NoError(t, err)
	assert.Len(t, got, defaultSearchK)
}

func TestContextForLLM_PacksWholeFragments(t *testing.T) {
	index := &mockVectorIndex{hits: []domain.KnowledgeHit{
		{Content: strings.Repeat("a", 50), Source: "research_sources/first.md"},
		{Content: strings.Repeat("b", 50), Source: "second.md"},
		{Content: strings.Repeat("c", 400), Source: "third.md"},
	}}
	svc := newTestKnowledge(newMockArticleCache(), index)

	block, err := svc.ContextForLLM(context.Background(), "query", "", 160)
	require.NoError(t, err)

	// The third fragment does not fit and is dropped entirely, never
	// truncated.
	assert.Contains(t, block, "Source: first.md")
	assert.Contains(t, block, "Source: second.md")
	assert.NotContains(t, block, "third.md")
	assert.NotContains(t, block, "ccc")
	assert.LessOrEqual(t, len(block), 160)
}

func TestContextForLLM_EmptyIndex(t *testing.T) {
	svc := newTestKnowledge(newMockArticleCache(), &mockVectorIndex{})

	block, err := svc.ContextForLLM(context.Background(), "query", "", 0)
	require.NoError(t, err)
	assert.Empty(t, block)
}

func TestQuickAnswer(t *testing.T) {
	index := &mockVectorIndex{hits: []domain.KnowledgeHit{
		{
			Content: "Coffee is a brewed drink prepared from roasted coffee beans and enjoyed worldwide every day.",
			Source:  "research_sources/Coffee-history.md",
		},
		{
			Content: "Espresso machines force hot water through finely ground coffee at high pressure for extraction.",
			Source:  "Espresso_brewing.md",
		},
	}}
	svc := newTestKnowledge(newMockArticleCache(), index)

	answer, err := svc.QuickAnswer(context.Background(), "how is coffee brewed", "coffee", 3)
	require.NoError(t, err)

	assert.Contains(t, answer, "**Question:** how is coffee brewed")
	assert.Contains(t, answer, "**Context:** coffee")
	assert.Contains(t, answer, "**Answer:**")
	assert.Contains(t, answer, "Additionally, ")
	assert.Contains(t, answer, "**Sources:** Coffee history, Espresso brewing")
}

func TestQuickAnswer_NoResults(t *testing.T) {
	svc := newTestKnowledge(newMockArticleCache(), &mockVectorIndex{})

	answer, err := svc.QuickAnswer(context.Background(), "anything", "", 3)
	require.NoError(t, err)
	assert.Equal(t, "No information found for: anything", answer)
}

func TestQuickAnswer_OmitsEmptyContextLine(t *testing.T) {
	index := &mockVectorIndex{hits: []domain.KnowledgeHit{
		{Content: "Solar panels convert sunlight into electricity using photovoltaic cells made of silicon.", Source: "solar.md"},
	}}
	svc := newTestKnowledge(newMockArticleCache(), index)

	answer, err := svc.QuickAnswer(context.Background(), "how do solar panels work", "", 3)
	require.NoError(t, err)
	assert.NotContains(t, answer, "**Context:**")
}

func TestBestParagraph(t *testing.T) {
	content := "Short line.\n\n" +
		"The brewing process extracts flavor compounds from ground coffee using hot water over several minutes.\n\n" +
		"Unrelated paragraph about the history of tea ceremonies in East Asia and their cultural role."

	best := bestParagraph(content, "how does coffee brewing extract flavor")
	assert.Contains(t, best, "brewing process extracts flavor")
}

func TestBestParagraph_FallsBackToFirst(t *testing.T) {
	// Every paragraph is filtered (too short), so the first survives as
	// the fallback.
	best := bestParagraph("a modest short sentence.", "question")
	assert.Equal(t, "a modest short sentence.", best)
}

func TestStitchAnswer(t *testing.T) {
	got := stitchAnswer([]string{"First piece.", "Second piece.", "Third piece."})
	assert.Equal(t, "First piece.\n\nAdditionally, second piece.\n\nFurthermore, third piece.", got)
}

func TestReadableSourceName(t *testing.T) {
	assert.Equal(t, "Mercury planet", readableSourceName("research_sources/Mercury-planet.md"))
	assert.Equal(t, "solar power", readableSourceName("solar_power.md"))
}
