package services

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/draftlab/scriptforge/internal/core/ports/driven"
	"github.com/draftlab/scriptforge/internal/core/ports/driving"
	"github.com/draftlab/scriptforge/internal/logger"
)

// Ensure PlannerService implements the interface.
var _ driving.TermPlanner = (*PlannerService)(nil)

// Bullet markers stripped from key-point lines, including the unicode
// variants pasted from rich-text editors.
const bulletMarkers = "•-*+→·‣▪▫◦‒–—"

var numberedMarker = regexp.MustCompile(`^\d+\.?\s*`)

// keywordTextLimit caps the free text sent to the keyword extraction
// prompt.
const keywordTextLimit = 1000

// PlannerService expands topics into research search terms using small
// helper-model LLM calls. Every method degrades to a documented
// fallback instead of failing: a nil or unreachable LLM never blocks a
// research run, it just narrows it.
type PlannerService struct {
	llm     driven.LLMService
	prompts driven.PromptStore
}

// NewPlannerService creates a term planner. The llm parameter is
// optional (can be nil); without it every method returns its fallback.
func NewPlannerService(llm driven.LLMService, prompts driven.PromptStore) *PlannerService {
	return &PlannerService{
		llm:     llm,
		prompts: prompts,
	}
}

// GenerateSearchTerms returns an ordered, case-insensitively unique
// term list with the topic forced to index 0. Falls back to [topic]
// when the LLM is unavailable or returns something unparseable.
func (s *PlannerService) GenerateSearchTerms(ctx context.Context, topic string) []string {
	fallback := []string{topic}

	terms, err := s.jsonArrayCall(ctx, driven.PromptSearchTerms,
		[]any{topic}, 200, 0.7, 30*time.Second)
	if err != nil {
		logger.Warn("Search term generation failed, using topic only: %v", err)
		return fallback
	}

	return dedupeTerms(append([]string{topic}, terms...))
}

// ExtractKeywords pulls research-worthy keywords from free text.
// Returns an empty list for empty input or when the LLM is unavailable.
func (s *PlannerService) ExtractKeywords(ctx context.Context, text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	text = clipText(text, keywordTextLimit)

	keywords, err := s.jsonArrayCall(ctx, driven.PromptExtractKeywords,
		[]any{text}, 150, 0.3, 20*time.Second)
	if err != nil {
		logger.Warn("Keyword extraction failed: %v", err)
		return nil
	}

	return dedupeTerms(keywords)
}

// ExtractBroaderTopics names up to max broader subjects likely to have
// encyclopedia articles. Used when the raw topic has no article of its
// own. Returns an empty list on failure.
func (s *PlannerService) ExtractBroaderTopics(ctx context.Context, topic string, max int) []string {
	if max <= 0 {
		max = 3
	}

	topics, err := s.jsonArrayCall(ctx, driven.PromptBroaderTopics,
		[]any{max, topic}, 100, 0.3, 20*time.Second)
	if err != nil {
		logger.Warn("Broader topic extraction failed: %v", err)
		return nil
	}

	var filtered []string
	for _, t := range topics {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		filtered = append(filtered, t)
		if len(filtered) >= max {
			break
		}
	}
	return filtered
}

// ProcessTopicAndKeyPoints combines topic term generation with keyword
// extraction over the key-points text, and parses that text into plain
// statements with bullet and number markers stripped.
func (s *PlannerService) ProcessTopicAndKeyPoints(ctx context.Context, topic, keyPoints string) ([]string, []string) {
	topicTerms := s.GenerateSearchTerms(ctx, topic)
	keywords := s.ExtractKeywords(ctx, keyPoints)

	combined := dedupeTerms(append(topicTerms, keywords...))
	return combined, ParseKeyPoints(keyPoints)
}

// ParseKeyPoints splits bulleted free text into statement lines. Bullet
// markers and numbered-list prefixes are stripped; blank lines are
// dropped.
func ParseKeyPoints(keyPoints string) []string {
	if strings.TrimSpace(keyPoints) == "" {
		return nil
	}

	var points []string
	for _, line := range strings.Split(keyPoints, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, bulletMarkers)
		line = strings.TrimSpace(line)
		line = numberedMarker.ReplaceAllString(line, "")
		line = strings.TrimSpace(line)
		if line != "" {
			points = append(points, line)
		}
	}
	return points
}

// jsonArrayCall runs one helper prompt and parses the response as a
// JSON string array. Models sometimes wrap the array in a markdown
// fence; that wrapper is tolerated.
func (s *PlannerService) jsonArrayCall(
	ctx context.Context, promptName string, args []any,
	maxTokens int, temperature float64, timeout time.Duration,
) ([]string, error) {
	if s.llm == nil {
		return nil, fmt.Errorf("no LLM service configured")
	}

	template, err := s.prompts.Load(promptName)
	if err != nil {
		return nil, fmt.Errorf("load prompt %q: %w", promptName, err)
	}

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	content, err := s.llm.Generate(callCtx, fmt.Sprintf(template, args...), driven.GenerateOptions{
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return nil, err
	}

	var items []string
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &items); err != nil {
		return nil, fmt.Errorf("parse term array: %w", err)
	}
	return items, nil
}

// stripCodeFence removes a ```json ... ``` wrapper if present.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// dedupeTerms removes case-insensitive duplicates while preserving
// first-seen order. Empty entries are dropped.
func dedupeTerms(terms []string) []string {
	seen := make(map[string]bool, len(terms))
	var unique []string
	for _, term := range terms {
		term = strings.TrimSpace(term)
		key := strings.ToLower(term)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, term)
	}
	return unique
}
