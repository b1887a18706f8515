// Package file implements the article cache as a flat directory of
// markdown files keyed by slug. File existence is the cache policy:
// when a slug's file is present the network fetch is skipped.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/draftlab/scriptforge/internal/core/ports/driven"
)

// DefaultDirName is the cache directory created under the working
// directory when none is configured.
const DefaultDirName = "research_sources"

// Ensure ArticleCache implements the interface.
var _ driven.ArticleCache = (*ArticleCache)(nil)

// ArticleCache stores researched articles and dossiers as .md files.
type ArticleCache struct {
	dir string
}

// NewArticleCache creates a cache rooted at dir, creating it if needed.
// An empty dir defaults to ./research_sources.
func NewArticleCache(dir string) (*ArticleCache, error) {
	if dir == "" {
		dir = DefaultDirName
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	return &ArticleCache{dir: dir}, nil
}

// Has reports whether a cache file exists for the slug.
func (c *ArticleCache) Has(slug string) bool {
	_, err := os.Stat(c.path(slug))
	return err == nil
}

// Save writes the markdown for a slug. Existing files are kept unless
// force is set.
func (c *ArticleCache) Save(slug, markdown string, force bool) error {
	path := c.path(slug)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return nil
		}
	}
	if err := os.WriteFile(path, []byte(markdown), 0644); err != nil {
		return fmt.Errorf("writing cache file %s: %w", path, err)
	}
	return nil
}

// List returns every cached markdown document, sorted by path so loads
// are deterministic.
func (c *ArticleCache) List(ctx context.Context) ([]driven.CachedDocument, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return nil, fmt.Errorf("reading cache directory: %w", err)
	}

	var docs []driven.CachedDocument
	for _, entry := range entries {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		content, err := os.ReadFile(filepath.Join(c.dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading cache file %s: %w", entry.Name(), err)
		}
		docs = append(docs, driven.CachedDocument{
			Path:    entry.Name(),
			Content: string(content),
		})
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })
	return docs, nil
}

// Dir returns the cache root directory.
func (c *ArticleCache) Dir() string {
	return c.dir
}

func (c *ArticleCache) path(slug string) string {
	return filepath.Join(c.dir, slug+".md")
}
