package driven

import "context"

// LLMService wraps a hosted OpenAI-style chat-completion gateway.
// Construction fails when no API key is configured; at runtime,
// transport failures surface as errors that callers degrade from.
type LLMService interface {
	// Generate produces a text completion from a single user prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// Chat sends a full conversation and returns the assistant turn,
	// which may carry tool calls instead of (or alongside) content.
	// Tool execution is the caller's job; the service only transports.
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (*ChatTurn, error)

	// ModelName returns the chat model in use.
	ModelName() string

	// Close releases resources.
	Close() error
}

// GenerateOptions configures single-prompt generation.
type GenerateOptions struct {
	// MaxTokens caps the completion length.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic).
	Temperature float64
}

// ChatOptions configures a chat request.
type ChatOptions struct {
	MaxTokens   int
	Temperature float64

	// Tools is the function schema set offered to the model. Empty
	// means tools are disabled for this request.
	Tools []ToolSchema
}

// ChatMessage is a single message in a conversation.
type ChatMessage struct {
	// Role is one of "system", "user", "assistant" or "tool".
	Role string

	// Content is the message text.
	Content string

	// ToolCalls echoes an assistant's tool requests when the message is
	// appended back into the conversation.
	ToolCalls []ToolCall
}

// ChatTurn is one assistant response.
type ChatTurn struct {
	// Content is the text content; empty when the model only requested
	// tools.
	Content string

	// ToolCalls holds the tool invocations the model asked for.
	ToolCalls []ToolCall
}

// ToolCall is a structured request from the model to invoke a local
// function.
type ToolCall struct {
	// ID is the gateway-assigned call identifier.
	ID string

	// Name is the function name.
	Name string

	// Arguments is the raw JSON argument object.
	Arguments string
}

// ToolSchema describes one callable function in the OpenAI tools
// format. Parameters is a JSON-schema object.
type ToolSchema struct {
	Name        string
	Description string
	Parameters  map[string]any
}
