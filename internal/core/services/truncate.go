package services

import "unicode/utf8"

// clipText truncates text to at most limit bytes without splitting a
// UTF-8 sequence, so prompts built from research text stay valid UTF-8.
func clipText(text string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if len(text) <= limit {
		return text
	}
	for limit > 0 && !utf8.RuneStart(text[limit]) {
		limit--
	}
	return text[:limit]
}
