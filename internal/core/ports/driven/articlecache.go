package driven

import "context"

// CachedDocument is one markdown file from the research cache.
type CachedDocument struct {
	// Path is the file path relative to the cache root.
	Path string

	// Content is the full markdown text.
	Content string
}

// ArticleCache is the flat-file cache of researched articles and
// dossiers, keyed by slugified title. Existence of a file is the cache
// policy: a present slug means the network fetch is skipped entirely.
type ArticleCache interface {
	// Has reports whether a cache file exists for the slug.
	Has(slug string) bool

	// Save writes the markdown for a slug. When the file already exists
	// the write is skipped unless force is set.
	Save(slug, markdown string, force bool) error

	// List returns every cached markdown document.
	List(ctx context.Context) ([]CachedDocument, error)

	// Dir returns the cache root directory.
	Dir() string
}
