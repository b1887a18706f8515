package driving

import (
	"context"

	"github.com/draftlab/scriptforge/internal/core/domain"
)

// ChatService is the tool-calling conversation loop over the LLM
// gateway. At most one tool round-trip is performed per prompt.
type ChatService interface {
	// Prompt sends a message (with optional history) and returns the
	// final assistant text. Transport and parse failures come back as
	// user-visible error strings in the returned text, not as errors;
	// only context cancellation is returned as an error.
	Prompt(ctx context.Context, message string, history []domain.ChatExchange) (string, error)
}

// ScriptService generates research-backed video script drafts.
type ScriptService interface {
	// Generate runs research, reloads the knowledge index, prompts the
	// LLM and persists the draft. The returned brief carries the
	// derived UI summary fields.
	Generate(ctx context.Context, req domain.ScriptRequest) (*domain.ScriptDraft, *domain.ResearchBrief, error)
}
