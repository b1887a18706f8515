package services

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/draftlab/scriptforge/internal/core/domain"
	"github.com/draftlab/scriptforge/internal/core/ports/driven"
	"github.com/draftlab/scriptforge/internal/core/ports/driving"
	"github.com/draftlab/scriptforge/internal/logger"
)

// Ensure ChatAssistant implements the interface.
var _ driving.ChatService = (*ChatAssistant)(nil)

// searchToolName is the one local function offered to the model.
const searchToolName = "search_knowledge"

const (
	chatMaxTokens   = 2000
	chatTemperature = 0.7

	// toolResultCap truncates individual search results fed back to
	// the model, keeping the tool message inside the context window.
	toolResultCap = 500
)

// ChatAssistant is the tool-calling conversation loop over the LLM
// gateway. When a knowledge service is available, the model is offered
// a search_knowledge function; requested calls are executed locally and
// fed back in a single follow-up round.
type ChatAssistant struct {
	llm       driven.LLMService
	knowledge driving.KnowledgeService
	prompts   driven.PromptStore
}

// NewChatAssistant creates a chat service. The knowledge parameter is
// optional (can be nil); without it the model gets no tools.
func NewChatAssistant(
	llm driven.LLMService,
	knowledge driving.KnowledgeService,
	prompts driven.PromptStore,
) *ChatAssistant {
	return &ChatAssistant{
		llm:       llm,
		knowledge: knowledge,
		prompts:   prompts,
	}
}

// Prompt sends a message with optional history and returns the final
// assistant text. Gateway failures come back as user-visible error
// strings in the returned text rather than errors, so an interactive
// session never aborts on a flaky request; only context cancellation is
// returned as an error.
func (s *ChatAssistant) Prompt(ctx context.Context, message string, history []domain.ChatExchange) (string, error) {
	if s.llm == nil {
		return "", fmt.Errorf("chat assistant: %w", domain.ErrAPIKeyMissing)
	}

	systemPrompt, err := s.prompts.Load(driven.PromptChatSystem)
	if err != nil {
		return "", fmt.Errorf("load system prompt: %w", err)
	}

	messages := []driven.ChatMessage{{Role: "system", Content: systemPrompt}}
	for _, turn := range history {
		messages = append(messages, driven.ChatMessage{Role: turn.Role, Content: turn.Content})
	}
	messages = append(messages, driven.ChatMessage{Role: "user", Content: message})

	opts := driven.ChatOptions{
		MaxTokens:   chatMaxTokens,
		Temperature: chatTemperature,
		Tools:       s.toolSchemas(),
	}

	turn, err := s.llm.Chat(ctx, messages, opts)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		logger.Error("Chat request failed: %v", err)
		return fmt.Sprintf("Error: Failed to communicate with AI service - %v", err), nil
	}

	if len(turn.ToolCalls) == 0 {
		if turn.Content == "" {
			return "Error: No content in response", nil
		}
		return turn.Content, nil
	}

	// Tool round: run every requested call locally, then send one
	// combined tool message back with tools disabled so the model
	// answers instead of requesting again.
	var toolResults []string
	for _, call := range turn.ToolCalls {
		logger.Debug("Executing tool call: %s(%s)", call.Name, call.Arguments)
		toolResults = append(toolResults,
			fmt.Sprintf("Tool %s result:\n%s", call.Name, s.executeToolCall(ctx, call)))
	}

	messages = append(messages, driven.ChatMessage{
		Role:      "assistant",
		Content:   turn.Content,
		ToolCalls: turn.ToolCalls,
	})
	messages = append(messages, driven.ChatMessage{
		Role:    "tool",
		Content: strings.Join(toolResults, "\n\n"),
	})

	final, err := s.llm.Chat(ctx, messages, driven.ChatOptions{
		MaxTokens:   chatMaxTokens,
		Temperature: chatTemperature,
	})
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		logger.Error("Chat follow-up failed: %v", err)
		return fmt.Sprintf("Error: Failed to communicate with AI service - %v", err), nil
	}
	if final.Content == "" {
		return "Error: No content in response", nil
	}
	return final.Content, nil
}

// toolSchemas returns the function set offered to the model. Empty when
// the knowledge backend is not usable, which disables tool calling for
// the request entirely.
func (s *ChatAssistant) toolSchemas() []driven.ToolSchema {
	if s.knowledge == nil || !s.knowledge.Available() {
		return nil
	}
	return []driven.ToolSchema{
		{
			Name:        searchToolName,
			Description: "Search through local knowledge database for relevant information. Use this tool frequently to find context and information.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"query": map[string]any{
						"type":        "string",
						"description": "The search query to find relevant information",
					},
					"topic_context": map[string]any{
						"type":        "string",
						"description": "Additional context to improve search results",
					},
					"max_results": map[string]any{
						"type":        "integer",
						"description": "Maximum number of results to return (default: 5)",
						"default":     5,
					},
				},
				"required": []string{"query"},
			},
		},
	}
}

// executeToolCall runs one requested function and returns its result as
// text for the model. Failures are reported in the text; the model can
// work with "no results" but not with an aborted round.
func (s *ChatAssistant) executeToolCall(ctx context.Context, call driven.ToolCall) string {
	if call.Name != searchToolName || s.knowledge == nil {
		return fmt.Sprintf("Unknown tool: %s", call.Name)
	}

	var args struct {
		Query        string `json:"query"`
		TopicContext string `json:"topic_context"`
		MaxResults   int    `json:"max_results"`
	}
	if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
		return fmt.Sprintf("Invalid tool arguments: %v", err)
	}
	if args.MaxResults <= 0 {
		args.MaxResults = 5
	}

	hits, err := s.knowledge.Search(ctx, args.Query, args.TopicContext, args.MaxResults)
	if err != nil {
		logger.Warn("Knowledge search failed during tool call: %v", err)
		return fmt.Sprintf("Search failed: %v", err)
	}
	if len(hits) == 0 {
		return fmt.Sprintf("No results found for query: %s", args.Query)
	}

	var formatted []string
	for i, hit := range hits {
		content := hit.Content
		if len(content) > toolResultCap {
			content = clipText(content, toolResultCap) + "..."
		}
		formatted = append(formatted,
			fmt.Sprintf("Result %d (from %s):\n%s\n", i+1, filepath.Base(hit.Source), content))
	}
	return strings.Join(formatted, "\n")
}
