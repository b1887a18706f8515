package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftlab/scriptforge/internal/core/ports/driven"
)

func newTestCommand() (*cobra.Command, *bytes.Buffer) {
	buf := new(bytes.Buffer)
	cmd := &cobra.Command{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetContext(context.Background())
	return cmd, buf
}

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Short key",
			input:    "abc123",
			expected: "****",
		},
		{
			name:     "Exactly 8 chars",
			input:    "12345678",
			expected: "****",
		},
		{
			name:     "Long key",
			input:    "sk-1234567890abcdef",
			expected: "sk-1...cdef",
		},
		{
			name:     "Empty key",
			input:    "",
			expected: "****",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := maskAPIKey(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestRunSettingsShow(t *testing.T) {
	originalStore := configStore
	defer func() { configStore = originalStore }()

	store := newMockConfigStore()
	store.Set(driven.ConfigKeyAPIKey, "sk-1234567890abcdef")
	store.Set(driven.ConfigKeyChatModel, "anthropic/claude-sonnet-4")
	store.Set(driven.ConfigKeyRequestDelay, 1.5)
	store.Set(driven.ConfigKeySourcesDir, "/data/research_sources")
	store.Set(driven.ConfigKeyEmbeddingBaseURL, "https://api.openai.com/v1")
	configStore = store

	cmd, buf := newTestCommand()
	err := runSettingsShow(cmd, nil)

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "sk-1...cdef")
	assert.NotContains(t, out, "sk-1234567890abcdef")
	assert.Contains(t, out, "Embedding base URL: https://api.openai.com/v1")
	assert.Contains(t, out, "anthropic/claude-sonnet-4")
	assert.Contains(t, out, "Request delay: 1.5s")
	assert.Contains(t, out, "Configuration is valid.")
}

func TestRunSettingsShow_WarnsWithoutKey(t *testing.T) {
	originalStore := configStore
	defer func() { configStore = originalStore }()
	configStore = newMockConfigStore()

	cmd, buf := newTestCommand()
	err := runSettingsShow(cmd, nil)

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "no API key configured")
}

func TestRunSettingsSet(t *testing.T) {
	originalStore := configStore
	defer func() { configStore = originalStore }()

	t.Run("string key", func(t *testing.T) {
		store := newMockConfigStore()
		configStore = store

		cmd, buf := newTestCommand()
		err := runSettingsSet(cmd, []string{driven.ConfigKeyChatModel, "openai/gpt-4o"})

		require.NoError(t, err)
		assert.Equal(t, "openai/gpt-4o", store.GetString(driven.ConfigKeyChatModel))
		assert.Equal(t, 1, store.saves)
		assert.Contains(t, buf.String(), "Set chat_model = openai/gpt-4o")
	})

	t.Run("embedding gateway keys", func(t *testing.T) {
		store := newMockConfigStore()
		configStore = store

		cmd, _ := newTestCommand()
		err := runSettingsSet(cmd, []string{driven.ConfigKeyEmbeddingBaseURL, "https://api.openai.com/v1"})
		require.NoError(t, err)

		err = runSettingsSet(cmd, []string{driven.ConfigKeyEmbeddingAPIKey, "sk-embed-1234567890"})
		require.NoError(t, err)

		assert.Equal(t, "https://api.openai.com/v1", store.GetString(driven.ConfigKeyEmbeddingBaseURL))
		assert.Equal(t, "sk-embed-1234567890", store.GetString(driven.ConfigKeyEmbeddingAPIKey))
	})

	t.Run("delay is parsed as float", func(t *testing.T) {
		store := newMockConfigStore()
		configStore = store

		cmd, _ := newTestCommand()
		err := runSettingsSet(cmd, []string{driven.ConfigKeyRequestDelay, "2.5"})

		require.NoError(t, err)
		assert.Equal(t, 2.5, store.GetFloat(driven.ConfigKeyRequestDelay))
	})

	t.Run("invalid delay is rejected", func(t *testing.T) {
		store := newMockConfigStore()
		configStore = store

		cmd, _ := newTestCommand()
		err := runSettingsSet(cmd, []string{driven.ConfigKeyRequestDelay, "fast"})

		require.Error(t, err)
		assert.Equal(t, 0, store.saves)
	})

	t.Run("unknown key is rejected", func(t *testing.T) {
		configStore = newMockConfigStore()

		cmd, _ := newTestCommand()
		err := runSettingsSet(cmd, []string{"api_secret", "x"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown setting")
	})

	t.Run("api key is not settable in plain text", func(t *testing.T) {
		configStore = newMockConfigStore()

		cmd, _ := newTestCommand()
		err := runSettingsSet(cmd, []string{driven.ConfigKeyAPIKey, "sk-plain"})

		require.Error(t, err)
	})
}

func TestRunSettings_RequireStore(t *testing.T) {
	originalStore := configStore
	defer func() { configStore = originalStore }()
	configStore = nil

	cmd, _ := newTestCommand()
	assert.Error(t, runSettingsShow(cmd, nil))
	assert.Error(t, runSettingsSet(cmd, []string{"chat_model", "x"}))
	assert.Error(t, runSettingsKey(cmd, nil))
}
