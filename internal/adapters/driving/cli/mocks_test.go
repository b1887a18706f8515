package cli

import (
	"context"

	"github.com/draftlab/scriptforge/internal/core/domain"
	"github.com/draftlab/scriptforge/internal/core/ports/driven"
)

// mockResearchOrchestrator is a mock implementation of driving.ResearchOrchestrator.
type mockResearchOrchestrator struct {
	result *domain.ResearchResult
	err    error

	topic     string
	keyPoints string
	force     bool
}

func (m *mockResearchOrchestrator) Research(
	_ context.Context,
	topic, keyPointsText string,
	force bool,
) (*domain.ResearchResult, error) {
	m.topic = topic
	m.keyPoints = keyPointsText
	m.force = force
	return m.result, m.err
}

// mockKnowledgeService is a mock implementation of driving.KnowledgeService.
type mockKnowledgeService struct {
	available bool
	answer    string
	hits      []domain.KnowledgeHit
	loadErr   error
	searchErr error

	loads    int
	query    string
	question string
	topicCtx string
}

func (m *mockKnowledgeService) LoadDocuments(_ context.Context) error {
	m.loads++
	return m.loadErr
}

func (m *mockKnowledgeService) Search(_ context.Context, query, topicContext string, _ int) ([]domain.KnowledgeHit, error) {
	m.query = query
	m.topicCtx = topicContext
	return m.hits, m.searchErr
}

func (m *mockKnowledgeService) ContextForLLM(_ context.Context, _, _ string, _ int) (string, error) {
	return "", nil
}

func (m *mockKnowledgeService) QuickAnswer(_ context.Context, question, topicContext string, _ int) (string, error) {
	m.question = question
	m.topicCtx = topicContext
	return m.answer, nil
}

func (m *mockKnowledgeService) Available() bool {
	return m.available
}

// mockChatService is a mock implementation of driving.ChatService.
type mockChatService struct {
	response string
	err      error

	message string
	history []domain.ChatExchange
}

func (m *mockChatService) Prompt(
	_ context.Context,
	message string,
	history []domain.ChatExchange,
) (string, error) {
	m.message = message
	m.history = history
	return m.response, m.err
}

// mockScriptService is a mock implementation of driving.ScriptService.
type mockScriptService struct {
	draft *domain.ScriptDraft
	brief *domain.ResearchBrief
	err   error

	req domain.ScriptRequest
}

func (m *mockScriptService) Generate(
	_ context.Context,
	req domain.ScriptRequest,
) (*domain.ScriptDraft, *domain.ResearchBrief, error) {
	m.req = req
	return m.draft, m.brief, m.err
}

// mockMarketService is a mock implementation of driving.MarketService.
type mockMarketService struct {
	report string

	topic     string
	maxVideos int
}

func (m *mockMarketService) SearchVideos(_ context.Context, _ string, _ int) ([]domain.Video, error) {
	return nil, nil
}

func (m *mockMarketService) AnalyzeContent(_ context.Context, _ []domain.Video) string {
	return ""
}

func (m *mockMarketService) ExtractTitlePatterns(_ context.Context, _ []domain.Video) []string {
	return nil
}

func (m *mockMarketService) AnalyzeTopics(_ context.Context, _ []domain.Video) []string {
	return nil
}

func (m *mockMarketService) TopicReport(_ context.Context, topic string, maxVideos int) string {
	m.topic = topic
	m.maxVideos = maxVideos
	return m.report
}

// mockConfigStore is an in-memory implementation of driven.ConfigStore.
type mockConfigStore struct {
	values  map[string]any
	saveErr error
	saves   int
}

func newMockConfigStore() *mockConfigStore {
	return &mockConfigStore{values: map[string]any{}}
}

func (m *mockConfigStore) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *mockConfigStore) GetString(key string) string {
	if s, ok := m.values[key].(string); ok {
		return s
	}
	return ""
}

func (m *mockConfigStore) GetInt(key string) int {
	if i, ok := m.values[key].(int); ok {
		return i
	}
	return 0
}

func (m *mockConfigStore) GetFloat(key string) float64 {
	if f, ok := m.values[key].(float64); ok {
		return f
	}
	return 0
}

func (m *mockConfigStore) Set(key string, value any) {
	m.values[key] = value
}

func (m *mockConfigStore) Save() error {
	m.saves++
	return m.saveErr
}

func (m *mockConfigStore) Load() error {
	return nil
}

// mockArticleCache is a mock implementation of driven.ArticleCache.
type mockArticleCache struct {
	docs []driven.CachedDocument
	dir  string
}

func (m *mockArticleCache) Has(_ string) bool { return false }

func (m *mockArticleCache) Save(_, _ string, _ bool) error { return nil }

func (m *mockArticleCache) List(_ context.Context) ([]driven.CachedDocument, error) {
	return m.docs, nil
}

func (m *mockArticleCache) Dir() string { return m.dir }
