package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/draftlab/scriptforge/internal/core/domain"
	"github.com/draftlab/scriptforge/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockLLM implements driven.LLMService for testing. Generate and Chat
// pop queued responses in order and record every request they see.
type mockLLM struct {
	mu sync.Mutex

	generateResponses []string
	generateErr       error
	generatePrompts   []string
	generateOpts      []driven.GenerateOptions

	chatTurns    []*driven.ChatTurn
	chatErr      error
	chatMessages [][]driven.ChatMessage
	chatOpts     []driven.ChatOptions
}

func (m *mockLLM) Generate(_ context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.generatePrompts = append(m.generatePrompts, prompt)
	m.generateOpts = append(m.generateOpts, opts)
	if m.generateErr != nil {
		return "", m.generateErr
	}
	if len(m.generateResponses) == 0 {
		return "", fmt.Errorf("mockLLM: no queued generate response")
	}
	resp := m.generateResponses[0]
	m.generateResponses = m.generateResponses[1:]
	return resp, nil
}

func (m *mockLLM) Chat(_ context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (*driven.ChatTurn, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chatMessages = append(m.chatMessages, messages)
	m.chatOpts = append(m.chatOpts, opts)
	if m.chatErr != nil {
		return nil, m.chatErr
	}
	if len(m.chatTurns) == 0 {
		return nil, fmt.Errorf("mockLLM: no queued chat turn")
	}
	turn := m.chatTurns[0]
	m.chatTurns = m.chatTurns[1:]
	return turn, nil
}

func (m *mockLLM) ModelName() string { return "mock-model" }
func (m *mockLLM) Close() error      { return nil }

// mockPromptStore implements driven.PromptStore with compact templates
// that carry the same format verbs as the shipped defaults.
type mockPromptStore struct{}

var mockTemplates = map[string]string{
	driven.PromptChatSystem:      "You are a research assistant.",
	driven.PromptSearchTerms:     `Search terms for topic: %s`,
	driven.PromptExtractKeywords: `Keywords from: %s`,
	driven.PromptBroaderTopics:   `Up to %[1]d broader topics for: %[2]s`,
	driven.PromptSummaryKeyFacts: `Key facts about %[1]s from: %[2]s`,
	driven.PromptSummaryContext:  `Context of %[1]s from: %[2]s`,
	driven.PromptSummaryAngles:   `Angles on %[1]s from: %[2]s`,
	driven.PromptRelatedTopics:   `Related topics for %s (again: %s)`,
	driven.PromptSummaryGeneric:  `Summary of %[1]s from: %[2]s`,
	driven.PromptScriptDraft:     `brand=%[1]s focus=%[2]s topic=%[3]s points=%[4]s tone=%[5]s runtime=%[6]d terms=%[7]s`,
}

func (m *mockPromptStore) Load(name string) (string, error) {
	if tmpl, ok := mockTemplates[name]; ok {
		return tmpl, nil
	}
	return "", fmt.Errorf("unknown prompt %q", name)
}

func (m *mockPromptStore) Reload() {}

// mockEncyclopedia implements driven.Encyclopedia for testing.
type mockEncyclopedia struct {
	articles  map[string]*domain.ArticleRecord
	errs      map[string]error
	searched  []string
	refreshed []string
	cache     *mockArticleCache
}

func (m *mockEncyclopedia) SearchArticle(_ context.Context, topic string) (*domain.ArticleRecord, error) {
	m.searched = append(m.searched, topic)
	return m.lookup(topic, false)
}

func (m *mockEncyclopedia) RefreshArticle(_ context.Context, topic string) (*domain.ArticleRecord, error) {
	m.refreshed = append(m.refreshed, topic)
	return m.lookup(topic, true)
}

func (m *mockEncyclopedia) lookup(topic string, force bool) (*domain.ArticleRecord, error) {
	if err, ok := m.errs[topic]; ok {
		return nil, err
	}
	article, ok := m.articles[topic]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if m.cache != nil {
		_ = m.cache.Save(domain.Slugify(article.Title), "# "+article.Title, force)
	}
	return article, nil
}

func (m *mockEncyclopedia) BuildDossier(_ context.Context, topic string) (string, error) {
	return "# Research Dossier: " + topic, nil
}

// mockArticleCache implements driven.ArticleCache in memory.
type mockArticleCache struct {
	docs map[string]string
	dir  string
}

func newMockArticleCache() *mockArticleCache {
	return &mockArticleCache{docs: make(map[string]string), dir: "research_sources"}
}

func (m *mockArticleCache) Has(slug string) bool {
	_, ok := m.docs[slug]
	return ok
}

func (m *mockArticleCache) Save(slug, markdown string, force bool) error {
	if _, ok := m.docs[slug]; ok && !force {
		return nil
	}
	m.docs[slug] = markdown
	return nil
}

func (m *mockArticleCache) List(_ context.Context) ([]driven.CachedDocument, error) {
	var docs []driven.CachedDocument
	for slug, content := range m.docs {
		docs = append(docs, driven.CachedDocument{Path: slug + ".md", Content: content})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })
	return docs, nil
}

func (m *mockArticleCache) Dir() string { return m.dir }

// mockEmbedder implements driven.EmbeddingService with deterministic
// vectors derived from text length.
type mockEmbedder struct {
	embedErr error
	batchErr error
	calls    []string
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	m.calls = append(m.calls, text)
	return []float32{float32(len(text)), 1, 0}, nil
}

func (m *mockEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	if m.batchErr != nil {
		return nil, m.batchErr
	}
	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		embeddings[i] = []float32{float32(len(text)), 1, 0}
	}
	return embeddings, nil
}

func (m *mockEmbedder) Dimensions() int   { return 3 }
func (m *mockEmbedder) ModelName() string { return "mock-embed" }
func (m *mockEmbedder) Close() error      { return nil }

// mockVectorIndex implements driven.VectorIndex for testing.
type mockVectorIndex struct {
	chunks    []domain.Chunk
	hits      []domain.KnowledgeHit
	resets    int
	searchErr error
	addErr    error
	resetErr  error
}

func (m *mockVectorIndex) Reset(_ context.Context) error {
	if m.resetErr != nil {
		return m.resetErr
	}
	m.resets++
	m.chunks = nil
	return nil
}

func (m *mockVectorIndex) Add(_ context.Context, chunks []domain.Chunk) error {
	if m.addErr != nil {
		return m.addErr
	}
	m.chunks = append(m.chunks, chunks...)
	return nil
}

func (m *mockVectorIndex) Search(_ context.Context, _ []float32, k int) ([]domain.KnowledgeHit, error) {
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if k > len(m.hits) {
		return m.hits, nil
	}
	return m.hits[:k], nil
}

func (m *mockVectorIndex) Count(_ context.Context) (int, error) {
	return len(m.chunks), nil
}

func (m *mockVectorIndex) Close() error { return nil }

// mockExtractor implements driven.VideoMetadataExtractor for testing.
type mockExtractor struct {
	videos  []domain.Video
	err     error
	queries []string
}

func (m *mockExtractor) Search(_ context.Context, query string, _ int) ([]domain.Video, error) {
	m.queries = append(m.queries, query)
	if m.err != nil {
		return nil, m.err
	}
	return m.videos, nil
}

// mockPlanner implements driving.TermPlanner for testing.
type mockPlanner struct {
	terms   []string
	parsed  []string
	broader []string
}

func (m *mockPlanner) GenerateSearchTerms(_ context.Context, topic string) []string {
	if len(m.terms) == 0 {
		return []string{topic}
	}
	return m.terms
}

func (m *mockPlanner) ExtractKeywords(_ context.Context, _ string) []string { return nil }

func (m *mockPlanner) ExtractBroaderTopics(_ context.Context, _ string, _ int) []string {
	return m.broader
}

func (m *mockPlanner) ProcessTopicAndKeyPoints(_ context.Context, topic, _ string) ([]string, []string) {
	terms := m.terms
	if len(terms) == 0 {
		terms = []string{topic}
	}
	return terms, m.parsed
}

// mockResearcher implements driving.ResearchOrchestrator for testing.
type mockResearcher struct {
	result *domain.ResearchResult
	err    error
	topics []string
}

func (m *mockResearcher) Research(_ context.Context, topic, _ string, _ bool) (*domain.ResearchResult, error) {
	m.topics = append(m.topics, topic)
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

// mockKnowledge implements driving.KnowledgeService for testing.
type mockKnowledge struct {
	available bool
	hits      []domain.KnowledgeHit
	loadErr   error
	searchErr error
	loads     int
	queries   []string
}

func (m *mockKnowledge) LoadDocuments(_ context.Context) error {
	m.loads++
	return m.loadErr
}

func (m *mockKnowledge) Search(_ context.Context, query, _ string, k int) ([]domain.KnowledgeHit, error) {
	m.queries = append(m.queries, query)
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if k > len(m.hits) {
		return m.hits, nil
	}
	return m.hits[:k], nil
}

func (m *mockKnowledge) ContextForLLM(_ context.Context, _, _ string, _ int) (string, error) {
	return "", nil
}

func (m *mockKnowledge) QuickAnswer(_ context.Context, question, _ string, _ int) (string, error) {
	return "answer to " + question, nil
}

func (m *mockKnowledge) Available() bool { return m.available }

// mockChat implements driving.ChatService for testing.
type mockChat struct {
	response string
	err      error
	prompts  []string
}

func (m *mockChat) Prompt(_ context.Context, message string, _ []domain.ChatExchange) (string, error) {
	m.prompts = append(m.prompts, message)
	if m.err != nil {
		return "", m.err
	}
	if m.response != "" {
		return m.response, nil
	}
	return "Generated script for: " + firstLine(message), nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
