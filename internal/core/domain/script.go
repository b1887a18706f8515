package domain

// ScriptRequest carries everything the script generator needs for one
// generation run. Immutable once handed to the pipeline.
type ScriptRequest struct {
	// Brand is the channel or company name the script is written for.
	Brand string

	// Focus is the one-line statement of what the brand focuses on.
	Focus string

	// Topic is the main topic of the video.
	Topic string

	// KeyPoints are the statements the script must cover, in order.
	KeyPoints []string

	// Tone is the requested voice, e.g. "casual", "authoritative".
	Tone string

	// RuntimeMinutes is the target video length.
	RuntimeMinutes int
}

// ScriptDraft is the result of one generation run: the rendered markdown
// plus provenance counts. Written to a flat file and never mutated.
type ScriptDraft struct {
	// ID identifies the draft.
	ID string

	// Topic echoes the request topic.
	Topic string

	// Markdown is the full script document including the metadata
	// header.
	Markdown string

	// Path is where the draft was written.
	Path string

	// ResearchSuccessful and ResearchTotal are the provenance counts
	// from the research run backing this draft.
	ResearchSuccessful int
	ResearchTotal      int
}

// ResearchBrief holds the derived summary fields shown alongside a
// generated script. Every field has a canned fallback, so a brief is
// always fully populated even when the summarisation calls fail.
type ResearchBrief struct {
	KeyFacts      []string
	Context       string
	Angles        []string
	RelatedTopics []string
	Articles      []RelatedArticle
}
