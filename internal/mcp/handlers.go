// ABOUTME: MCP tool handler implementations for the document assistant server
// ABOUTME: Serialises access to the session and reports recoverable conditions as tool errors
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harper/document-assistant/internal/core"
	"github.com/harper/document-assistant/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	session    *core.Session
	defaultDir string
	logger     *log.Logger

	// One operation at a time against the session
	mu sync.Mutex
}

// ProcessDocuments handles the process_documents tool
func (h *Handlers) ProcessDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	paths := stringArrayArg(request, "paths")
	if len(paths) == 0 {
		return mcp.NewToolResultError("paths argument is required and must be a non-empty array of strings"), nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	report, err := h.session.Assistant().Process(ctx, paths)
	if err != nil {
		h.logger.Error("process failed", "err", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(report)
}

// SaveVectorStore handles the save_vector_store tool
func (h *Handlers) SaveVectorStore(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dir := request.GetString("directory", h.defaultDir)

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.session.Assistant().Save(ctx, dir); err != nil {
		if errors.Is(err, core.ErrNoVectorStore) {
			return mcp.NewToolResultError("No Vector Store to save."), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("failed to save vector store: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"success":   true,
		"directory": dir,
		"message":   fmt.Sprintf("Vector Store saved to %s", dir),
	})
}

// LoadVectorStore handles the load_vector_store tool
func (h *Handlers) LoadVectorStore(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dir := request.GetString("directory", h.defaultDir)

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.session.Assistant().Load(ctx, dir); err != nil {
		if errors.Is(err, storage.ErrVectorStoreNotFound) {
			return mcp.NewToolResultError("No Vector Store found at the specified directory."), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("failed to load vector store: %v", err)), nil
	}

	response := map[string]interface{}{
		"success":   true,
		"directory": dir,
		"message":   fmt.Sprintf("Vector Store loaded from %s", dir),
	}
	if m, ok := h.session.Assistant().Manifest(); ok {
		response["chunk_count"] = m.ChunkCount
		response["documents"] = m.Documents
	}
	return jsonResult(response)
}

// AskQuestion handles the ask_question tool
func (h *Handlers) AskQuestion(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("question argument is required and must be a string"), nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	answer, err := h.session.Ask(ctx, question)
	if err != nil {
		h.logger.Error("question failed", "err", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(answer)
}

// VectorStoreStatus handles the vector_store_status tool
func (h *Handlers) VectorStoreStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	a := h.session.Assistant()
	response := map[string]interface{}{
		"state":            a.State().String(),
		"loaded":           a.Loaded(),
		"embedding_model":  a.EmbeddingModel(),
		"generation_model": a.GenerationModel(),
		"default_dir":      h.defaultDir,
		"saved_store":      storage.Exists(h.defaultDir),
	}
	if m, ok := a.Manifest(); ok {
		response["manifest"] = m
	}

	return jsonResult(response)
}

// GetChatHistory handles the get_chat_history tool
func (h *Handlers) GetChatHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	history := h.session.History()
	messages := make([]map[string]interface{}, 0, len(history))
	for _, m := range history {
		messages = append(messages, map[string]interface{}{
			"role":      string(m.Role),
			"content":   m.Content,
			"sources":   m.Sources,
			"timestamp": m.Timestamp.Format(time.RFC3339),
		})
	}

	return jsonResult(map[string]interface{}{
		"count":    len(messages),
		"messages": messages,
	})
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	responseJSON, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// stringArrayArg extracts a string array argument, ignoring non-string items
func stringArrayArg(request mcp.CallToolRequest, key string) []string {
	args, ok := request.Params.Arguments.(map[string]any)
	if !ok {
		return nil
	}

	var out []string
	switch raw := args[key].(type) {
	case []interface{}:
		for _, item := range raw {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
	case []string:
		for _, s := range raw {
			if s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
