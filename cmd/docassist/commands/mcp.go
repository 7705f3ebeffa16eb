// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Lets LLM agents process, load, and query documents via stdio
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/harper/document-assistant/internal/core"
	"github.com/harper/document-assistant/internal/mcp"
	"github.com/harper/document-assistant/internal/storage"
)

var (
	mcpDir string
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs Document Assistant as an MCP (Model Context Protocol) server,
enabling LLM agents like Claude to process PDFs and ask questions
about them via stdio. Logs go to stderr; stdout carries the protocol.

If the vector store directory exists it is loaded at startup.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by Claude Desktop)
  docassist mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "docassist": {
  #       "command": "docassist",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	cmd.Flags().StringVar(&mcpDir, "dir", "", "Vector store directory (default from config: document_vectors)")

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := newLogger(os.Stderr, cfg)
	assistant, err := newAssistant(cfg, logger)
	if err != nil {
		return err
	}
	defer assistant.Discard()

	dir := dirOrDefault(mcpDir, cfg)
	if storage.Exists(dir) {
		if err := assistant.Load(cmd.Context(), dir); err != nil {
			logger.Warn("failed to load vector store", "dir", dir, "err", err)
		}
	}

	server := mcp.NewServer(versionInfo.Version, core.NewSession(assistant), dir, logger)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("MCP server starting on stdio", "dir", dir)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
