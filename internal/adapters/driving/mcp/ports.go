package mcp

import (
	"github.com/draftlab/scriptforge/internal/core/ports/driven"
	"github.com/draftlab/scriptforge/internal/core/ports/driving"
)

// Ports aggregates all port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Knowledge answers retrieval queries against the vector index.
	Knowledge driving.KnowledgeService

	// Cache is the research article cache, backing the resource
	// handlers.
	Cache driven.ArticleCache
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Knowledge == nil {
		return ErrMissingKnowledgeService
	}
	// Cache is optional; resource handlers degrade without it.
	return nil
}
