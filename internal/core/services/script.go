package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/draftlab/scriptforge/internal/core/domain"
	"github.com/draftlab/scriptforge/internal/core/ports/driven"
	"github.com/draftlab/scriptforge/internal/core/ports/driving"
	"github.com/draftlab/scriptforge/internal/logger"
)

// Ensure ScriptGenerator implements the interface.
var _ driving.ScriptService = (*ScriptGenerator)(nil)

const (
	// summaryTimeout bounds each small brief-summarisation call. These
	// are nice-to-have; a slow one falls back to canned text.
	summaryTimeout = 15 * time.Second

	// summaryContentCap limits the retrieved content fed into a
	// summarisation prompt.
	summaryContentCap = 800

	briefKeyFactsCap = 5
	briefAnglesCap   = 4
	briefRelatedCap  = 6
	briefArticlesCap = 5
	briefContextCap  = 500
)

// ScriptGenerator produces research-backed video script drafts: it runs
// the research pipeline, reloads the knowledge index with the fetched
// articles, prompts the chat service (which can search that index) and
// writes the draft to the scripts directory.
type ScriptGenerator struct {
	research   driving.ResearchOrchestrator
	knowledge  driving.KnowledgeService
	chat       driving.ChatService
	helper     driven.LLMService
	prompts    driven.PromptStore
	scriptsDir string
}

// NewScriptGenerator creates a script generator. The helper parameter
// is the small model used for brief summaries and is optional (can be
// nil); without it every brief field uses its canned fallback. If
// scriptsDir is empty, defaults to ~/.scriptforge/generated_scripts.
func NewScriptGenerator(
	research driving.ResearchOrchestrator,
	knowledge driving.KnowledgeService,
	chat driving.ChatService,
	helper driven.LLMService,
	prompts driven.PromptStore,
	scriptsDir string,
) (*ScriptGenerator, error) {
	if scriptsDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		scriptsDir = filepath.Join(home, ".scriptforge", "generated_scripts")
	}

	return &ScriptGenerator{
		research:   research,
		knowledge:  knowledge,
		chat:       chat,
		helper:     helper,
		prompts:    prompts,
		scriptsDir: scriptsDir,
	}, nil
}

// Generate runs the full drafting pipeline for one request. A failed
// main generation call aborts without writing a partial script file;
// brief summarisation failures never abort, they fall back.
func (s *ScriptGenerator) Generate(ctx context.Context, req domain.ScriptRequest) (*domain.ScriptDraft, *domain.ResearchBrief, error) {
	if strings.TrimSpace(req.Topic) == "" {
		return nil, nil, fmt.Errorf("%w: topic is required", domain.ErrInvalidInput)
	}
	if s.knowledge == nil || !s.knowledge.Available() {
		return nil, nil, domain.ErrVectorIndexUnavailable
	}

	logger.Section("Script Generation")
	logger.Info("Starting script generation for topic: %s", req.Topic)

	var keyPointLines []string
	for _, point := range req.KeyPoints {
		keyPointLines = append(keyPointLines, "- "+point)
	}

	research, err := s.research.Research(ctx, req.Topic, strings.Join(keyPointLines, "\n"), false)
	if err != nil {
		return nil, nil, fmt.Errorf("research topic: %w", err)
	}
	defer logger.Info("Research summary: %d successful searches out of %d terms",
		research.Successful, research.Total)

	if err := s.knowledge.LoadDocuments(ctx); err != nil {
		logger.Warn("Failed to reload knowledge index: %v", err)
	}

	prompt, err := s.buildPrompt(req, research)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("Generating script with LLM...")
	script, err := s.chat.Prompt(ctx, prompt, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("generate script: %w", err)
	}
	if strings.HasPrefix(script, "Error:") {
		return nil, nil, fmt.Errorf("%w: %s", domain.ErrLLMUnavailable, script)
	}

	markdown := renderScriptDocument(req, research, script)
	path := filepath.Join(s.scriptsDir, scriptFilename(req.Topic))
	if err := os.MkdirAll(s.scriptsDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create scripts directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(markdown), 0o644); err != nil {
		return nil, nil, fmt.Errorf("write script: %w", err)
	}
	logger.Info("Script saved to: %s", path)

	draft := &domain.ScriptDraft{
		ID:                 uuid.NewString(),
		Topic:              req.Topic,
		Markdown:           markdown,
		Path:               path,
		ResearchSuccessful: research.Successful,
		ResearchTotal:      research.Total,
	}

	return draft, s.buildBrief(ctx, req.Topic, research), nil
}

// buildPrompt renders the drafting instruction from the prompt template
// and the current research run.
func (s *ScriptGenerator) buildPrompt(req domain.ScriptRequest, research *domain.ResearchResult) (string, error) {
	template, err := s.prompts.Load(driven.PromptScriptDraft)
	if err != nil {
		return "", fmt.Errorf("load script prompt: %w", err)
	}

	var points strings.Builder
	for _, point := range req.KeyPoints {
		points.WriteString(" - " + point + "\n")
	}

	terms := research.SearchTerms
	if len(terms) > termFetchCap {
		terms = terms[:termFetchCap]
	}

	return fmt.Sprintf(template,
		req.Brand, req.Focus, req.Topic,
		strings.TrimRight(points.String(), "\n"),
		req.Tone, req.RuntimeMinutes,
		strings.Join(terms, ", "),
	), nil
}

// renderScriptDocument prepends the metadata header to the generated
// script body.
func renderScriptDocument(req domain.ScriptRequest, research *domain.ResearchResult, script string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Video Script: %s\n\n", req.Topic)
	fmt.Fprintf(&b, "**Brand:** %s\n", req.Brand)
	fmt.Fprintf(&b, "**Focus:** %s\n", req.Focus)
	fmt.Fprintf(&b, "**Tone:** %s\n", req.Tone)
	fmt.Fprintf(&b, "**Target Runtime:** %d minutes\n", req.RuntimeMinutes)
	fmt.Fprintf(&b, "**Generated:** %d/%d research sources\n\n", research.Successful, research.Total)
	b.WriteString("---\n\n")
	b.WriteString(script)
	b.WriteString("\n")
	return b.String()
}

// scriptFilename derives a flat filename from the topic: unsafe
// characters dropped, lowercased, spaces to underscores.
func scriptFilename(topic string) string {
	var safe strings.Builder
	for _, r := range topic {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			safe.WriteRune(r)
		}
	}
	name := strings.TrimRight(safe.String(), " ")
	return "script_" + strings.ReplaceAll(strings.ToLower(name), " ", "_") + ".md"
}

// buildBrief derives the research panel fields shown alongside a
// generated script. Each field is backed by a fresh index query plus
// one small summarisation call, and each has a canned fallback so the
// brief is always fully populated.
func (s *ScriptGenerator) buildBrief(ctx context.Context, topic string, research *domain.ResearchResult) *domain.ResearchBrief {
	brief := &domain.ResearchBrief{
		Articles: research.SourceArticles(briefArticlesCap),
	}

	brief.KeyFacts = s.briefKeyFacts(ctx, topic)
	brief.Context = s.briefContext(ctx, topic)
	brief.Angles = s.briefAngles(ctx, topic)
	brief.RelatedTopics = s.briefRelatedTopics(ctx, topic, research)
	return brief
}

func (s *ScriptGenerator) briefKeyFacts(ctx context.Context, topic string) []string {
	content := s.retrieve(ctx, "key facts about "+topic, topic, 3, 2)
	var facts []string
	if content != "" {
		text := s.summarise(ctx, driven.PromptSummaryKeyFacts, topic, content)
		for _, line := range parseBulletLines(text) {
			if len(line) > 10 {
				facts = append(facts, line)
				if len(facts) >= briefKeyFactsCap {
					break
				}
			}
		}
	}
	if len(facts) == 0 {
		facts = []string{fmt.Sprintf("Research data about %s from knowledge base", topic)}
	}
	return facts
}

func (s *ScriptGenerator) briefContext(ctx context.Context, topic string) string {
	content := s.retrieve(ctx, "background context history of "+topic, topic, 2, 2)
	if content == "" {
		return fmt.Sprintf("Background information about %s from research database.", topic)
	}
	context := s.summarise(ctx, driven.PromptSummaryContext, topic, content)
	if len(context) > briefContextCap {
		context = clipText(context, briefContextCap) + "..."
	}
	return context
}

func (s *ScriptGenerator) briefAngles(ctx context.Context, topic string) []string {
	var angles []string
	if content := s.retrieve(ctx, "different perspectives approaches to "+topic, topic, 3, 3); content != "" {
		text := s.summarise(ctx, driven.PromptSummaryAngles, topic, content)
		for _, line := range parseBulletLines(text) {
			if len(line) > 15 {
				angles = append(angles, line)
				if len(angles) >= briefAnglesCap {
					break
				}
			}
		}
	}
	if len(angles) == 0 {
		angles = []string{
			fmt.Sprintf("Multiple approaches to understanding %s", topic),
			fmt.Sprintf("Various applications of %s", topic),
			fmt.Sprintf("Different aspects of %s", topic),
		}
	}
	return angles
}

func (s *ScriptGenerator) briefRelatedTopics(ctx context.Context, topic string, research *domain.ResearchResult) []string {
	var related []string

	if s.helper != nil {
		if template, err := s.prompts.Load(driven.PromptRelatedTopics); err == nil {
			callCtx, cancel := context.WithTimeout(ctx, summaryTimeout)
			text, err := s.helper.Generate(callCtx, fmt.Sprintf(template, topic, topic), driven.GenerateOptions{
				MaxTokens:   150,
				Temperature: 0.3,
			})
			cancel()
			if err != nil {
				logger.Warn("Related topic generation failed: %v", err)
			} else {
				for _, line := range parseBulletLines(text) {
					line = strings.Trim(line, ".,;:")
					if len(line) > 3 && len(line) < 60 && !strings.EqualFold(line, topic) {
						related = append(related, line)
						if len(related) >= briefRelatedCap {
							break
						}
					}
				}
			}
		}
	}

	// Planner search terms make a serviceable substitute when the
	// helper produced too few topics.
	if len(related) < 3 {
		title := cases.Title(language.English)
		for _, term := range research.SearchTerms {
			if strings.EqualFold(term, topic) || containsFold(related, term) {
				continue
			}
			related = append(related, title.String(term))
			if len(related) >= briefRelatedCap {
				break
			}
		}
	}

	if len(related) == 0 {
		related = []string{fmt.Sprintf("Topics related to %s", topic)}
	}
	return related
}

// retrieve searches the index and joins the first keep results.
func (s *ScriptGenerator) retrieve(ctx context.Context, query, topic string, k, keep int) string {
	hits, err := s.knowledge.Search(ctx, query, topic, k)
	if err != nil {
		logger.Warn("Brief retrieval failed for %q: %v", query, err)
		return ""
	}
	var parts []string
	for i, hit := range hits {
		if i >= keep {
			break
		}
		parts = append(parts, hit.Content)
	}
	return strings.Join(parts, "\n\n")
}

// summarise runs one small helper-model call over retrieved content.
// Returns canned fallback text when the helper is missing or fails.
func (s *ScriptGenerator) summarise(ctx context.Context, promptName, topic, content string) string {
	fallback := fmt.Sprintf("Research information about %s from knowledge database.", topic)
	if s.helper == nil || strings.TrimSpace(content) == "" {
		return fallback
	}

	template, err := s.prompts.Load(promptName)
	if err != nil {
		logger.Warn("Load prompt %q failed: %v", promptName, err)
		return fallback
	}
	content = clipText(content, summaryContentCap)

	callCtx, cancel := context.WithTimeout(ctx, summaryTimeout)
	defer cancel()

	text, err := s.helper.Generate(callCtx, fmt.Sprintf(template, topic, content), driven.GenerateOptions{
		MaxTokens:   150,
		Temperature: 0.3,
	})
	if err != nil {
		logger.Warn("Summary call %q failed: %v", promptName, err)
		return fallback
	}
	return strings.TrimSpace(text)
}

// parseBulletLines strips bullet markers from each non-empty line.
func parseBulletLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.Trim(strings.TrimSpace(line), "•-* ")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}
