package domain

import (
	"regexp"
	"strings"
)

// ArticleRecord is the extracted representation of one encyclopedia
// article, produced by the research client per search term.
type ArticleRecord struct {
	// Title is the resolved page title.
	Title string

	// URL is the canonical article URL.
	URL string

	// Summary is the plain-text lead extract.
	Summary string

	// BodyHTML is the raw parsed page markup. Kept so heuristics
	// (disambiguation links, sections, related articles) can run over
	// the original structure.
	BodyHTML string

	// KeyFacts holds up to 6 fact-like sentences with numbers, dates or
	// significance keywords.
	KeyFacts []string

	// Sections holds up to 5 second-level heading blocks.
	Sections []ArticleSection

	// Related holds stubs for articles harvested from "See also" or
	// body links.
	Related []RelatedArticle

	// Sources lists the URLs of the main article and its related
	// articles, in that order.
	Sources []string
}

// ArticleSection is one second-level heading block of an article.
type ArticleSection struct {
	// Heading is the stripped heading text.
	Heading string

	// Content is the stripped body text, capped at 500 characters.
	Content string
}

// RelatedArticle is a lightweight stub for an adjacent article.
type RelatedArticle struct {
	Title   string
	URL     string
	Summary string
}

// ArticleImage is an illustration harvested from an article.
type ArticleImage struct {
	URL         string
	Title       string
	Description string
}

// TermStatus describes the outcome of researching one search term.
type TermStatus string

const (
	// TermFound means the article was fetched and cached this run.
	TermFound TermStatus = "found"

	// TermCached means a cache file already existed and no network
	// fetch happened.
	TermCached TermStatus = "found_cached"

	// TermFailed means the fetch errored; Err carries the reason.
	TermFailed TermStatus = "failed"
)

// TermResult records the per-term outcome of a research run.
type TermResult struct {
	Term    string
	Status  TermStatus
	Article *ArticleRecord
	Err     string
}

var (
	slugStrip    = regexp.MustCompile(`[^\w\s-]`)
	slugCollapse = regexp.MustCompile(`[-\s]+`)
)

// Slugify converts a title into a filesystem-safe cache key: characters
// outside word/space/hyphen are dropped, then runs of spaces and hyphens
// collapse to a single hyphen. The same title always yields the same
// slug, which is what makes the file cache work.
func Slugify(title string) string {
	s := slugStrip.ReplaceAllString(title, "")
	s = strings.TrimSpace(s)
	return slugCollapse.ReplaceAllString(s, "-")
}

// WikipediaURL builds the canonical page URL for a title, used when the
// API response did not include one.
func WikipediaURL(title string) string {
	return "https://en.wikipedia.org/wiki/" + strings.ReplaceAll(title, " ", "_")
}
