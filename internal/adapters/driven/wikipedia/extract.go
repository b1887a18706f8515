package wikipedia

import (
	"regexp"
	"strings"

	"github.com/draftlab/scriptforge/internal/core/domain"
	"github.com/draftlab/scriptforge/internal/normalisers/wikitext"
)

const (
	maxKeyFacts     = 6
	maxSummaryFacts = 3
	maxSections     = 5
	sectionCharCap  = 500
)

// Sentence patterns that mark fact-like statements: dates tied to an
// event, and quantities with meaningful units.
var factPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)[^.!?]*(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},?\s+\d{4}[^.!?]*[.!?]`),
	regexp.MustCompile(`(?i)[^.!?]*\b\d{4}\b[^.!?]*(?:launched|founded|established|built|created|invented)[^.!?]*[.!?]`),
	regexp.MustCompile(`(?i)[^.!?]*(?:launched|founded|established|built|created|invented)[^.!?]*\b\d{4}\b[^.!?]*[.!?]`),
	regexp.MustCompile(`(?i)[^.!?]*\d+(?:,\d{3})*(?:\.\d+)?\s*(?:million|billion|thousand|percent|%)[^.!?]*[.!?]`),
	regexp.MustCompile(`(?i)[^.!?]*\$\d+(?:,\d{3})*(?:\.\d+)?(?:\s*(?:million|billion|thousand))?[^.!?]*[.!?]`),
	regexp.MustCompile(`(?i)[^.!?]*\d+(?:,\d{3})*\s*(?:km|miles|feet|meters|years|people|users|countries|planets|galaxies)[^.!?]*[.!?]`),
}

var (
	anyNumber     = regexp.MustCompile(`\d+(?:,\d{3})*(?:\.\d+)?`)
	anyDate       = regexp.MustCompile(`\b\d{4}\b|January|February|March|April|May|June|July|August|September|October|November|December`)
	sentenceSplit = regexp.MustCompile(`[.!?]+`)
	h2Block       = regexp.MustCompile(`(?is)<h2[^>]*>(.*?)</h2>`)
	tagStrip      = regexp.MustCompile(`<[^>]+>`)
	spaceRun      = regexp.MustCompile(`\s+`)
)

var significanceWords = []string{
	"first", "largest", "founded", "established", "launched", "invented",
	"created", "became", "achieved", "million", "billion", "percent",
}

// stopWords are ignored when comparing facts for overlap.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "of": {},
	"with": {}, "by": {},
}

// extractKeyFacts derives up to 6 fact sentences for an article. The
// lead summary is mined first since its sentences are the highest
// quality, then pattern matches over the full text fill the rest.
func extractKeyFacts(bodyHTML, summary string) []string {
	facts := summaryFacts(summary)
	if len(facts) > maxSummaryFacts {
		facts = facts[:maxSummaryFacts]
	}

	content := wikitext.StripHTML(bodyHTML) + " " + summary
	for _, pattern := range factPatterns {
		matches := pattern.FindAllString(content, -1)
		if len(matches) > 2 {
			matches = matches[:2]
		}
		for _, match := range matches {
			match = strings.TrimSpace(match)
			if len(match) <= 30 || containsFact(facts, match) {
				continue
			}
			facts = append(facts, match)
		}
	}

	if len(facts) > maxKeyFacts {
		facts = facts[:maxKeyFacts]
	}
	return facts
}

// summaryFacts picks sentences from the lead that carry a number, a
// date, or a significance keyword.
func summaryFacts(summary string) []string {
	if summary == "" {
		return nil
	}

	var facts []string
	for _, sentence := range sentenceSplit.Split(summary, -1) {
		sentence = strings.TrimSpace(sentence)
		if len(sentence) < 30 {
			continue
		}

		if anyNumber.MatchString(sentence) || anyDate.MatchString(sentence) ||
			hasSignificanceWord(sentence) {
			facts = append(facts, sentence+".")
		}
		if len(facts) == maxSummaryFacts {
			break
		}
	}
	return facts
}

func hasSignificanceWord(sentence string) bool {
	lower := strings.ToLower(sentence)
	for _, word := range significanceWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

func containsFact(facts []string, candidate string) bool {
	for _, fact := range facts {
		if fact == candidate || factsOverlap(fact, candidate) {
			return true
		}
	}
	return false
}

// factsOverlap reports whether two facts share more than 60% of their
// content words, measured against the shorter fact.
func factsOverlap(a, b string) bool {
	wordsA := contentWords(a)
	wordsB := contentWords(b)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return false
	}

	shared := 0
	for word := range wordsA {
		if _, ok := wordsB[word]; ok {
			shared++
		}
	}

	smaller := len(wordsA)
	if len(wordsB) < smaller {
		smaller = len(wordsB)
	}
	return float64(shared)/float64(smaller) > 0.6
}

func contentWords(fact string) map[string]struct{} {
	words := make(map[string]struct{})
	for _, word := range strings.Fields(strings.ToLower(fact)) {
		if _, stop := stopWords[word]; stop {
			continue
		}
		words[word] = struct{}{}
	}
	return words
}

// extractSections pulls the first h2 sections from the page markup,
// capping each body at 500 characters.
func extractSections(bodyHTML string) []domain.ArticleSection {
	headings := h2Block.FindAllStringSubmatchIndex(bodyHTML, -1)

	var sections []domain.ArticleSection
	for i, loc := range headings {
		if len(sections) == maxSections {
			break
		}

		heading := strings.TrimSpace(tagStrip.ReplaceAllString(bodyHTML[loc[2]:loc[3]], ""))

		end := len(bodyHTML)
		if i+1 < len(headings) {
			end = headings[i+1][0]
		}
		content := tagStrip.ReplaceAllString(bodyHTML[loc[1]:end], "")
		content = strings.TrimSpace(spaceRun.ReplaceAllString(content, " "))

		if heading == "" || content == "" {
			continue
		}
		if len(content) > sectionCharCap {
			content = content[:sectionCharCap] + "..."
		}

		sections = append(sections, domain.ArticleSection{
			Heading: heading,
			Content: content,
		})
	}
	return sections
}

// cleanFactForDisplay normalises a fact sentence for dossier output,
// dropping fragments and citation debris. Empty result means the fact
// should be skipped.
func cleanFactForDisplay(fact string) string {
	fact = strings.TrimSpace(fact)
	if len(fact) < 10 {
		return ""
	}

	first := rune(fact[0])
	if first >= 'a' && first <= 'z' {
		return ""
	}
	if strings.HasPrefix(fact, "^") || strings.HasPrefix(fact, "[") ||
		strings.HasPrefix(fact, "]") || strings.HasPrefix(fact, "?") ||
		strings.HasPrefix(fact, "&") {
		return ""
	}
	if strings.Count(fact, "^") > 2 || strings.Count(fact, "[") > 2 || len(fact) < 20 {
		return ""
	}

	fact = citationMarker.ReplaceAllString(fact, "")
	fact = retrievedNote.ReplaceAllString(fact, "")
	fact = archivedNote.ReplaceAllString(fact, "")
	fact = spaceRun.ReplaceAllString(fact, " ")
	fact = strings.TrimSpace(fact)

	if !strings.HasSuffix(fact, ".") && !strings.HasSuffix(fact, "!") &&
		!strings.HasSuffix(fact, "?") && !strings.HasSuffix(fact, "%") {
		parts := sentenceSplit.Split(fact, -1)
		if len(parts) > 1 && len(parts[0]) > 20 {
			fact = strings.TrimSpace(parts[0]) + "."
		}
	}

	if len(fact) < 25 {
		return ""
	}
	first = rune(fact[0])
	if first < 'A' || first > 'Z' {
		return ""
	}
	return fact
}

var (
	citationMarker = regexp.MustCompile(`\[\d+\]`)
	retrievedNote  = regexp.MustCompile(`Retrieved \d+.*?\d+\.`)
	archivedNote   = regexp.MustCompile(`Archived from.*?on.*?\d+\.`)
)
