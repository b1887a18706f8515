package domain

// ChatExchange is one prior turn of a conversation, carried by callers
// that keep history across prompts.
type ChatExchange struct {
	// Role is "user" or "assistant".
	Role string

	// Content is the turn text.
	Content string
}
