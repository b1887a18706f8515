package ytdlp

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftlab/scriptforge/internal/core/domain"
)

func TestSearch_ParsesJSONLines(t *testing.T) {
	e := NewExtractor("")
	var gotArgs []string
	e.runner = func(_ context.Context, _ string, args ...string) ([]byte, error) {
		gotArgs = args
		return []byte(`{"title":"How Mercury Formed","description":"A deep dive","view_count":125000,"duration":754}
{"title":"Mercury in 60 seconds","view_count":98}
not json at all
`), nil
	}

	videos, err := e.Search(context.Background(), "mercury planet", 5)
	require.NoError(t, err)

	assert.Contains(t, gotArgs, "--dump-json")
	assert.Contains(t, gotArgs, "--flat-playlist")
	assert.Contains(t, gotArgs, "ytsearch5:mercury planet")

	require.Len(t, videos, 2)
	assert.Equal(t, "How Mercury Formed", videos[0].Title)
	assert.Equal(t, "A deep dive", videos[0].Description)
	assert.Equal(t, "125000", videos[0].ViewCount)
	assert.Equal(t, "754", videos[0].Duration)

	// Missing description falls back to the title, absent fields to Unknown.
	assert.Equal(t, "Mercury in 60 seconds", videos[1].Description)
	assert.Equal(t, "98", videos[1].ViewCount)
	assert.Equal(t, "Unknown", videos[1].Duration)
}

func TestSearch_TruncatesLongDescriptions(t *testing.T) {
	long := strings.Repeat("d", 300)
	e := NewExtractor("")
	e.runner = func(_ context.Context, _ string, _ ...string) ([]byte, error) {
		return []byte(`{"title":"T","description":"` + long + `"}`), nil
	}

	videos, err := e.Search(context.Background(), "term", 1)
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Len(t, videos[0].Description, 203)
	assert.True(t, strings.HasSuffix(videos[0].Description, "..."))
}

func TestSearch_BinaryMissing(t *testing.T) {
	e := NewExtractor("")
	e.runner = func(_ context.Context, _ string, _ ...string) ([]byte, error) {
		return nil, &exec.Error{Name: "yt-dlp", Err: exec.ErrNotFound}
	}

	_, err := e.Search(context.Background(), "term", 3)
	assert.ErrorIs(t, err, domain.ErrExtractorUnavailable)
	assert.Contains(t, err.Error(), "install")
}

func TestSearch_CommandFailure(t *testing.T) {
	e := NewExtractor("")
	e.runner = func(_ context.Context, _ string, _ ...string) ([]byte, error) {
		return nil, errors.New("exit status 1")
	}

	_, err := e.Search(context.Background(), "term", 3)
	assert.ErrorIs(t, err, domain.ErrExtractorUnavailable)
}

func TestSearch_DefaultsMaxResults(t *testing.T) {
	e := NewExtractor("")
	e.runner = func(_ context.Context, _ string, args ...string) ([]byte, error) {
		assert.Contains(t, args, "ytsearch10:term")
		return nil, nil
	}

	videos, err := e.Search(context.Background(), "term", 0)
	require.NoError(t, err)
	assert.Empty(t, videos)
}

func TestNewExtractor_DefaultBinary(t *testing.T) {
	e := NewExtractor("")
	assert.Equal(t, DefaultBinary, e.binary)

	e = NewExtractor("/usr/local/bin/yt-dlp")
	assert.Equal(t, "/usr/local/bin/yt-dlp", e.binary)
}
