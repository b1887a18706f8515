// Package wikitext cleans scraped encyclopedia text: wiki markup,
// citation artifacts, navigation lines and leftover HTML. All functions
// are pure; the package holds no state.
package wikitext

import (
	"html"
	"regexp"
	"strconv"
	"strings"
)

// Pre-compiled regular expressions for markup stripping.
var (
	wikiLinkDisplay = regexp.MustCompile(`\[\[([^\]|]+)\|([^\]]+)\]\]`)
	wikiLink        = regexp.MustCompile(`\[\[([^\]]+)\]\]`)
	mdLink          = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	template        = regexp.MustCompile(`\{\{[^}]+\}\}`)
	refBlock        = regexp.MustCompile(`(?s)<ref[^>]*>.*?</ref>`)
	refSelfClose    = regexp.MustCompile(`<ref[^>]*\s*/>`)
	anyTag          = regexp.MustCompile(`<[^>]+>`)
	citationNum     = regexp.MustCompile(`\[\d+\]`)
	citationNeeded  = regexp.MustCompile(`(?i)\([^)]*\bcitation needed\b[^)]*\)`)
	whenNeeded      = regexp.MustCompile(`(?i)\([^)]*\bwhen\?[^)]*\)`)
	accordingToWhom = regexp.MustCompile(`(?i)\([^)]*\baccording to whom\?[^)]*\)`)
	mdHeader        = regexp.MustCompile(`(?m)^#{1,6}\s*`)
	mdBullet        = regexp.MustCompile(`(?m)^\*+\s*`)
	mdDash          = regexp.MustCompile(`(?m)^-+\s*`)
	mdTableRow      = regexp.MustCompile(`(?m)^\|.*\|$`)
	mdBold          = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	mdItalic        = regexp.MustCompile(`\*([^*]+)\*`)
	mdCode          = regexp.MustCompile("`([^`]+)`")
	multiBlank      = regexp.MustCompile(`\n\s*\n\s*\n+`)
	multiSpace      = regexp.MustCompile(`[ \t]+`)
	disambigParen   = regexp.MustCompile(`(?i)\s*\([^)]*disambiguation[^)]*\)`)
	seeParen        = regexp.MustCompile(`(?i)\s*\(see [^)]*\)`)
	nonWord         = regexp.MustCompile(`[^\w\s]`)

	scriptStyle = regexp.MustCompile(`(?s)<(script|style)[^>]*>.*?</(script|style)>`)
	supTag      = regexp.MustCompile(`(?s)<sup[^>]*>.*?</sup>`)
	brTag       = regexp.MustCompile(`<br[^>]*>`)
	wsRun       = regexp.MustCompile(`\s+`)
	heading     = regexp.MustCompile(`(?s)<h([1-6])[^>]*>(.*?)</h[1-6]>`)
	paragraph   = regexp.MustCompile(`(?s)<p[^>]*>(.*?)</p>`)
)

// Lines containing these phrases are navigation or metadata, not
// article prose, and are dropped wholesale.
var skipPhrases = []string{
	"see also", "external links", "references", "further reading", "categories",
	"bibliography", "notes", "sources", "portal:", "category:", "file:",
	"thumb|", "left|", "right|", "center|", "px|", "disambiguation",
	"coordinates:", "wikidata", "commons category", "wikimedia",
	"this article", "main article", "for other uses", "redirect",
	"may refer to", "infobox", "navbox",
}

// CleanText removes wiki and markdown artifacts from scraped text,
// leaving readable prose. Lines that are navigation, captions, mostly
// punctuation, or too short to be sentences are dropped.
func CleanText(content string) string {
	content = wikiLinkDisplay.ReplaceAllString(content, "$2")
	content = wikiLink.ReplaceAllString(content, "$1")
	content = mdLink.ReplaceAllString(content, "$1")
	content = template.ReplaceAllString(content, "")
	content = refBlock.ReplaceAllString(content, "")
	content = refSelfClose.ReplaceAllString(content, "")
	content = anyTag.ReplaceAllString(content, "")

	content = citationNum.ReplaceAllString(content, "")
	content = citationNeeded.ReplaceAllString(content, "")
	content = whenNeeded.ReplaceAllString(content, "")
	content = accordingToWhom.ReplaceAllString(content, "")

	content = mdHeader.ReplaceAllString(content, "")
	content = mdBullet.ReplaceAllString(content, "")
	content = mdDash.ReplaceAllString(content, "")
	content = mdTableRow.ReplaceAllString(content, "")
	content = mdBold.ReplaceAllString(content, "$1")
	content = mdItalic.ReplaceAllString(content, "$1")
	content = mdCode.ReplaceAllString(content, "$1")

	content = multiBlank.ReplaceAllString(content, "\n\n")
	content = multiSpace.ReplaceAllString(content, " ")

	var kept []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			kept = append(kept, "")
			continue
		}
		if !keepLine(line) {
			continue
		}
		kept = append(kept, line)
	}

	result := strings.TrimSpace(strings.Join(kept, "\n"))
	result = disambigParen.ReplaceAllString(result, "")
	result = seeParen.ReplaceAllString(result, "")
	return result
}

// keepLine decides whether a cleaned line is article prose.
func keepLine(line string) bool {
	lower := strings.ToLower(line)
	for _, phrase := range skipPhrases {
		if strings.Contains(lower, phrase) {
			return false
		}
	}
	// Image caption fragments.
	if strings.HasPrefix(lower, "thumb|") || strings.HasPrefix(lower, "image:") {
		return false
	}
	// Short non-sentence artifacts.
	if len(line) < 10 && !strings.HasSuffix(line, ".") {
		return false
	}
	// Lines that are mostly punctuation.
	if len(nonWord.ReplaceAllString(line, "")) < len(line)/2 {
		return false
	}
	return true
}

/// StripHTML converts raw page HTML to plain text: script, style and
// superscript citation blocks are removed entirely, line breaks become
// spaces, remaining tags are stripped and entities decoded.
func StripHTML(content string) string {
	if content == "" {
		return ""
	}
	content = scriptStyle.ReplaceAllString(content, "")
	content = supTag.ReplaceAllString(content, "")
	content = brTag.ReplaceAllString(content, " ")
	content = anyTag.ReplaceAllString(content, "")
	content = html.UnescapeString(content)
	content = wsRun.ReplaceAllString(content, " ")
	return strings.TrimSpace(content)
}

// HTMLToMarkdown converts page HTML to simplified markdown for cache
/// files: h1-h6 become # headings, paragraphs become blank-line
// separated blocks, everything else is stripped.
func HTMLToMarkdown(content string) string {
	content = scriptStyle.ReplaceAllString(content, "")

	content = heading.ReplaceAllStringFunc(content, func(m string) string {
		parts := heading.FindStringSubmatch(m)
		level, err := strconv.Atoi(parts[1])
		if err != nil || level < 1 || level > 6 {
			level = 2
		}
		text := strings.TrimSpace(anyTag.ReplaceAllString(parts[2], ""))
		return strings.Repeat("#", level) + " " + text + "\n\n"
	})

	content = paragraph.ReplaceAllString(content, "$1\n\n")
	content = anyTag.ReplaceAllString(content, "")
	content = html.UnescapeString(content)
	content = multiBlank.ReplaceAllString(content, "\n\n")
	return strings.TrimSpace(content)
}
