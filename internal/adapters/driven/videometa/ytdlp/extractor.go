// Package ytdlp extracts video metadata by shelling out to the yt-dlp
// binary in flat-playlist mode. Each search hit comes back as one JSON
// object per stdout line.
package ytdlp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/draftlab/scriptforge/internal/core/domain"
	"github.com/draftlab/scriptforge/internal/core/ports/driven"
	"github.com/draftlab/scriptforge/internal/logger"
)

// DefaultBinary is the yt-dlp executable name resolved via PATH.
const DefaultBinary = "yt-dlp"

const descriptionCap = 200

// Browser-like user agent; some endpoints reject the yt-dlp default.
const searchUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Ensure Extractor implements the interface.
var _ driven.VideoMetadataExtractor = (*Extractor)(nil)

// Extractor runs yt-dlp searches.
type Extractor struct {
	binary string
	// runner is swapped in tests to avoid invoking the real binary.
	runner func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewExtractor creates an extractor using the given binary name, or
// yt-dlp from PATH when empty.
func NewExtractor(binary string) *Extractor {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Extractor{
		binary: binary,
		runner: runCommand,
	}
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	err := cmd.Run()
	return stdout.Bytes(), err
}

// Search returns up to maxResults videos for the query. A missing
// binary surfaces as domain.ErrExtractorUnavailable so callers can
// explain the remedy; malformed JSON lines are skipped.
func (e *Extractor) Search(ctx context.Context, query string, maxResults int) ([]domain.Video, error) {
	if maxResults <= 0 {
		maxResults = 10
	}

	args := []string{
		"--dump-json",
		"--no-download",
		"--flat-playlist",
		"--ignore-errors",
		"--no-warnings",
		"--user-agent", searchUserAgent,
		fmt.Sprintf("ytsearch%d:%s", maxResults, query),
	}

	out, err := e.runner(ctx, e.binary, args...)
	if err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return nil, fmt.Errorf("yt-dlp not found, install it and retry: %w", domain.ErrExtractorUnavailable)
		}
		return nil, fmt.Errorf("running yt-dlp: %v: %w", err, domain.ErrExtractorUnavailable)
	}

	return parseVideoLines(out), nil
}

// searchEntry is the subset of yt-dlp's per-video JSON we consume.
type searchEntry struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ViewCount   *int64 `json:"view_count"`
	Duration    *float64
}

// UnmarshalJSON tolerates duration being a number or absent.
func (s *searchEntry) UnmarshalJSON(data []byte) error {
	type alias struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		ViewCount   *int64   `json:"view_count"`
		Duration    *float64 `json:"duration"`
	}
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	s.Title = a.Title
	s.Description = a.Description
	s.ViewCount = a.ViewCount
	s.Duration = a.Duration
	return nil
}

// parseVideoLines decodes one JSON object per line into videos.
func parseVideoLines(out []byte) []domain.Video {
	var videos []domain.Video

	scanner := bufio.NewScanner(bytes.NewReader(out))
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var entry searchEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			logger.Debug("skipping malformed yt-dlp line: %v", err)
			continue
		}

		videos = append(videos, entryToVideo(entry))
	}
	return videos
}

func entryToVideo(entry searchEntry) domain.Video {
	title := entry.Title
	if title == "" {
		title = "No title"
	}

	// Flat playlists often omit descriptions; fall back to the title.
	description := entry.Description
	if description == "" {
		description = title
	}
	if len(description) > descriptionCap {
		description = description[:descriptionCap] + "..."
	}

	viewCount := "Unknown"
	if entry.ViewCount != nil {
		viewCount = strconv.FormatInt(*entry.ViewCount, 10)
	}

	duration := "Unknown"
	if entry.Duration != nil {
		duration = strconv.FormatFloat(*entry.Duration, 'f', -1, 64)
	}

	return domain.Video{
		Title:       title,
		Description: description,
		ViewCount:   viewCount,
		Duration:    duration,
	}
}
