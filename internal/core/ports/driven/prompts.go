package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files or embed them in the
// binary.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next
	// access. Useful when prompts have been edited on disk.
	Reload()
}

// Well-known prompt names used throughout the application.
const (
	// PromptChatSystem is the system prompt for the research assistant
	// chat. No format placeholders.
	PromptChatSystem = "chat_system"

	// PromptSearchTerms asks for search terms covering a topic.
	// Expects a %s placeholder for the topic.
	PromptSearchTerms = "search_terms"

	// PromptExtractKeywords asks for research keywords from free text.
	// Expects a %s placeholder for the text.
	PromptExtractKeywords = "extract_keywords"

	// PromptBroaderTopics asks for broader encyclopedia-worthy topics.
	// Expects %[1]d (max topics) and %[2]s (the topic) placeholders.
	PromptBroaderTopics = "broader_topics"

	// PromptSummaryKeyFacts extracts bullet-point facts from research
	// content. Expects %[1]s (topic) and %[2]s (content) placeholders.
	PromptSummaryKeyFacts = "summary_key_facts"

	// PromptSummaryContext writes a short background paragraph.
	// Expects %[1]s (topic) and %[2]s (content) placeholders.
	PromptSummaryContext = "summary_context"

	// PromptSummaryAngles lists perspectives on the topic.
	// Expects %[1]s (topic) and %[2]s (content) placeholders.
	PromptSummaryAngles = "summary_angles"

	// PromptRelatedTopics lists adjacent research topics.
	// Expects a %s placeholder for the topic.
	PromptRelatedTopics = "related_topics"

	// PromptSummaryGeneric condenses research content.
	// Expects %[1]s (topic) and %[2]s (content) placeholders.
	PromptSummaryGeneric = "summary_generic"

	// PromptScriptDraft is the script drafting instruction. Expects
	// %[1]s (brand), %[2]s (focus), %[3]s (topic), %[4]s (key points),
	// %[5]s (tone), %[6]d (runtime minutes) and %[7]s (researched
	// terms) placeholders.
	PromptScriptDraft = "script_draft"
)
