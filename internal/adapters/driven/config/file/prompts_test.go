package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftlab/scriptforge/internal/core/ports/driven"
)

func TestPromptStore_LoadDefault(t *testing.T) {
	store, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptSearchTerms)
	require.NoError(t, err)
	assert.Contains(t, prompt, "search terms")
	assert.Contains(t, prompt, "%s")
}

func TestPromptStore_CreatesDefaultFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	_, err = store.Load(driven.PromptChatSystem)
	require.NoError(t, err)

	// Lazy init should have created one file per default prompt.
	for name := range defaultPrompts {
		_, err := os.Stat(filepath.Join(dir, name+".txt"))
		assert.NoError(t, err, "missing prompt file for %s", name)
	}
}

func TestPromptStore_UserOverride(t *testing.T) {
	dir := t.TempDir()
	custom := "Custom search prompt for %s"
	require.NoError(t, os.WriteFile(filepath.Join(dir, driven.PromptSearchTerms+".txt"), []byte(custom), 0600))

	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptSearchTerms)
	require.NoError(t, err)
	assert.Equal(t, custom, prompt)
}

func TestPromptStore_ReloadPicksUpEdits(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	_, err = store.Load(driven.PromptSearchTerms)
	require.NoError(t, err)

	edited := "Edited prompt %s"
	path := filepath.Join(dir, driven.PromptSearchTerms+".txt")
	require.NoError(t, os.WriteFile(path, []byte(edited), 0600))

	store.Reload()
	prompt, err := store.Load(driven.PromptSearchTerms)
	require.NoError(t, err)
	assert.Equal(t, edited, prompt)
}

func TestPromptStore_UnknownPrompt(t *testing.T) {
	store, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load("no_such_prompt")
	assert.Error(t, err)
}

func TestPromptStore_TemplatesFormatCleanly(t *testing.T) {
	// Every default template must survive fmt.Sprintf with its
	// documented arguments without leaving verb artifacts behind.
	cases := map[string][]any{
		driven.PromptChatSystem:      nil,
		driven.PromptSearchTerms:     {"quantum computing"},
		driven.PromptExtractKeywords: {"some text"},
		driven.PromptBroaderTopics:   {3, "installing linux mint"},
		driven.PromptSummaryKeyFacts: {"topic", "content"},
		driven.PromptSummaryContext:  {"topic", "content"},
		driven.PromptSummaryAngles:   {"topic", "content"},
		driven.PromptRelatedTopics:   {"topic", "topic"},
		driven.PromptSummaryGeneric:  {"topic", "content"},
		driven.PromptScriptDraft:     {"Brand", "tech", "topic", "- point", "casual", 5, "a, b"},
	}

	for name, args := range cases {
		tmpl := defaultPrompts[name]
		require.NotEmpty(t, tmpl, "no default for %s", name)

		rendered := tmpl
		if args != nil {
			rendered = fmt.Sprintf(tmpl, args...)
		}
		assert.NotContains(t, rendered, "%!", "bad placeholders in %s", name)
		assert.False(t, strings.Contains(rendered, "(MISSING)"), "missing args in %s", name)
	}
}
