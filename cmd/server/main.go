// ABOUTME: Main entry point for the document assistant MCP server with stdio transport
// ABOUTME: Loads config, builds the assistant, and serves all tools
package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/harper/document-assistant/internal/config"
	"github.com/harper/document-assistant/internal/core"
	"github.com/harper/document-assistant/internal/llm"
	"github.com/harper/document-assistant/internal/logging"
	"github.com/harper/document-assistant/internal/mcp"
	"github.com/harper/document-assistant/internal/storage"
)

var version = "dev"

func main() {
	// Load .env file if it exists (for API keys)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.New(os.Stderr, "info").Fatal("failed to load config", "err", err)
	}

	// stdout carries the protocol; logs go to stderr
	logger := logging.New(os.Stderr, cfg.LogLevel)

	embedder, err := llm.NewEmbedder(cfg)
	if err != nil {
		logger.Fatal("failed to initialize embedder", "err", err)
	}
	generator, err := llm.NewGenerator(cfg)
	if err != nil {
		logger.Fatal("failed to initialize generator", "err", err)
	}
	chunker, err := core.NewChunker(cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		logger.Fatal("invalid chunking config", "err", err)
	}

	assistant, err := core.NewAssistant(core.Options{
		Embedder:  embedder,
		Generator: generator,
		Chunker:   chunker,
		TopK:      cfg.TopK,
		Logger:    logger,
	})
	if err != nil {
		logger.Fatal("failed to create assistant", "err", err)
	}
	defer assistant.Discard()

	if storage.Exists(cfg.VectorStoreDir) {
		if err := assistant.Load(context.Background(), cfg.VectorStoreDir); err != nil {
			logger.Warn("failed to load vector store", "dir", cfg.VectorStoreDir, "err", err)
		}
	}

	server := mcp.NewServer(version, core.NewSession(assistant), cfg.VectorStoreDir, logger)

	logger.Info("MCP server starting on stdio", "dir", cfg.VectorStoreDir)
	if err := mcpserver.ServeStdio(server); err != nil {
		logger.Fatal("server error", "err", err)
	}
}
