package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for ScriptForge resources.
	uriScheme = "research://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource listing every cached research document.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "sources",
		Name:        "sources",
		Description: "List of all cached research documents",
		MIMEType:    "application/json",
	}, s.handleSourcesResource)

	// Template for individual dossiers and cached articles.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "dossier/{slug}",
		Name:        "dossier",
		Description: "Markdown content of a cached research document",
		MIMEType:    "text/markdown",
	}, s.handleDossierResource)
}

// handleSourcesResource returns a list of all cached research documents.
func (s *Server) handleSourcesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Cache == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	docs, err := s.ports.Cache.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing cached documents: %w", err)
	}

	// Build simplified document list.
	type docInfo struct {
		Slug  string `json:"slug"`
		URI   string `json:"uri"`
		Bytes int    `json:"bytes"`
	}

	infos := make([]docInfo, len(docs))
	for i := range docs {
		slug := documentSlug(docs[i].Path)
		infos[i] = docInfo{
			Slug:  slug,
			URI:   uriScheme + "dossier/" + slug,
			Bytes: len(docs[i].Content),
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling documents: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleDossierResource returns the markdown of one cached document.
func (s *Server) handleDossierResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Cache == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract slug from URI: research://dossier/{slug}
	slug := extractDossierSlug(req.Params.URI)
	if slug == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	docs, err := s.ports.Cache.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading cached documents: %w", err)
	}

	for i := range docs {
		if documentSlug(docs[i].Path) == slug {
			return &mcp.ReadResourceResult{
				Contents: []*mcp.ResourceContents{{
					URI:      req.Params.URI,
					MIMEType: "text/markdown",
					Text:     docs[i].Content,
				}},
			}, nil
		}
	}

	return nil, mcp.ResourceNotFoundError(req.Params.URI)
}

// documentSlug derives the resource slug from a cache file path.
func documentSlug(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".md")
}

// extractDossierSlug extracts the slug from a URI like research://dossier/{slug}.
func extractDossierSlug(uri string) string {
	const prefix = uriScheme + "dossier/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
