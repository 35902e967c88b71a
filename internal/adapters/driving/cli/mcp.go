package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ganzhi/internal/adapters/driving/mcp"
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

Use --watch to rebuild the knowledge index whenever the corpus file changes.

Examples:
  # Stdio mode (default, for Claude Desktop)
  ganzhi mcp serve

  # HTTP mode with corpus hot reload
  ganzhi mcp serve --port 8080 --watch

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "ganzhi": {
        "command": "/path/to/ganzhi",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio, default from settings)")
	mcpServeCmd.Flags().Bool("watch", false, "reload the corpus file when it changes")
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

	settings := currentSettings()
	if !cmd.Flags().Changed("port") {
		port = settings.MCP.Port
	}
	watch = watch || settings.Corpus.Watch

	ports := &mcp.Ports{
		Pillars:   pillarService,
		Knowledge: knowledgeService,
		Reading:   readingService,
		Location:  settings.Location,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if watch {
		if corpusWatcher == nil {
			return errors.New("--watch needs a corpus file; run 'ganzhi settings set corpus.path <file>'")
		}
		if err := corpusWatcher.Start(cmd.Context()); err != nil {
			return fmt.Errorf("watching corpus: %w", err)
		}
		defer corpusWatcher.Stop()
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
