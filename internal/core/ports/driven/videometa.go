package driven

import (
	"context"

	"github.com/draftlab/scriptforge/internal/core/domain"
)

// VideoMetadataExtractor searches the video platform and returns basic
// metadata per hit. Backed by an external subprocess; an empty result
// list signals "nothing found" while domain.ErrExtractorUnavailable
// signals the tool itself is missing.
type VideoMetadataExtractor interface {
	// Search returns up to maxResults videos for the query.
	Search(ctx context.Context, query string, maxResults int) ([]domain.Video, error)
}
