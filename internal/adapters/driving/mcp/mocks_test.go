package mcp

import (
	"context"

	"github.com/draftlab/scriptforge/internal/core/domain"
	"github.com/draftlab/scriptforge/internal/core/ports/driven"
)

// mockKnowledgeService is a mock implementation of driving.KnowledgeService.
type mockKnowledgeService struct {
	hits      []domain.KnowledgeHit
	answer    string
	err       error
	available bool

	loads       int
	lastQuery   string
	lastContext string
	lastK       int
}

func (m *mockKnowledgeService) LoadDocuments(_ context.Context) error {
	m.loads++
	return m.err
}

func (m *mockKnowledgeService) Search(
	_ context.Context,
	query, topicContext string,
	k int,
) ([]domain.KnowledgeHit, error) {
	m.lastQuery = query
	m.lastContext = topicContext
	m.lastK = k
	return m.hits, m.err
}

func (m *mockKnowledgeService) ContextForLLM(_ context.Context, _, _ string, _ int) (string, error) {
	return "", m.err
}

func (m *mockKnowledgeService) QuickAnswer(
	_ context.Context,
	question, topicContext string,
	maxResults int,
) (string, error) {
	m.lastQuery = question
	m.lastContext = topicContext
	m.lastK = maxResults
	return m.answer, m.err
}

func (m *mockKnowledgeService) Available() bool {
	return m.available
}

// mockArticleCache is a mock implementation of driven.ArticleCache.
type mockArticleCache struct {
	docs []driven.CachedDocument
	dir  string
	err  error
}

func (m *mockArticleCache) Has(_ string) bool {
	return false
}

func (m *mockArticleCache) Save(_, _ string, _ bool) error {
	return m.err
}

func (m *mockArticleCache) List(_ context.Context) ([]driven.CachedDocument, error) {
	return m.docs, m.err
}

func (m *mockArticleCache) Dir() string {
	return m.dir
}
