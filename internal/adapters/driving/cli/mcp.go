package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/draftlab/scriptforge/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default, the server communicates over stdio using JSON-RPC and can be
used with Claude Desktop and other MCP-compatible AI assistants.

Use --port to start an HTTP server instead, which enables:
  - Testing with MCP Inspector web UI
  - Remote access via HTTP

While the server runs, the research cache directory is watched and the
knowledge index is rebuilt whenever cached documents change.

Examples:
  # Stdio mode (default, for Claude Desktop)
  scriptforge mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  scriptforge mcp serve --port 8080

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "scriptforge": {
        "command": "/path/to/scriptforge",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpServeCmd.Flags().Bool("watch", true, "rebuild the index when the research cache changes")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	watch, err := cmd.Flags().GetBool("watch")
	if err != nil {
		return fmt.Errorf("getting watch flag: %w", err)
	}

	if knowledgeService == nil {
		return errors.New("knowledge service not configured")
	}

	ports := &mcp.Ports{
		Knowledge: knowledgeService,
		Cache:     articleCache,
	}

	server, err := mcp.NewServer(ports, version)
	if err != nil {
		return err
	}

	if watch {
		go func() {
			if err := server.WatchSources(cmd.Context()); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "source watcher stopped: %v\n", err)
			}
		}()
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
