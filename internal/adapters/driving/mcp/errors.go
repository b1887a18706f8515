// Package mcp provides an MCP (Model Context Protocol) server adapter
// for ScriptForge. It exposes the local research knowledge base to AI
// assistants as tools and resources.
package mcp

import "errors"

// ErrMissingKnowledgeService is returned when the knowledge service is
// not provided.
var ErrMissingKnowledgeService = errors.New("mcp: knowledge service is required")
