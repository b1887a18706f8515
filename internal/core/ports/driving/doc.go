// Package driving provides interfaces for the application's entry
// points (primary/inbound ports), consumed by the CLI, the progress
// runner and the MCP server.
package driving
