// ABOUTME: MCP tool definitions and registration for the document assistant server
// ABOUTME: Defines JSON schemas for processing, persistence, questions, and status tools
package mcp

import (
	"github.com/charmbracelet/log"
	"github.com/harper/document-assistant/internal/core"
	"github.com/harper/document-assistant/internal/logging"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// ServerName is the name the server reports to MCP clients
const ServerName = "Document Assistant"

// NewServer creates an MCP server with every document assistant tool registered
func NewServer(version string, session *core.Session, defaultDir string, logger *log.Logger) *mcpserver.MCPServer {
	server := mcpserver.NewMCPServer(
		ServerName,
		version,
		mcpserver.WithToolCapabilities(false),
	)
	RegisterTools(server, session, defaultDir, logger)
	return server
}

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, session *core.Session, defaultDir string, logger *log.Logger) *Handlers {
	if logger == nil {
		logger = logging.Discard()
	}

	handlers := &Handlers{
		session:    session,
		defaultDir: defaultDir,
		logger:     logger,
	}

	// 1. process_documents - Build a vector store from PDF files
	server.AddTool(mcp.Tool{
		Name:        "process_documents",
		Description: "Process PDF documents into a new vector store, replacing any loaded store. Unsupported or unreadable files are skipped and reported.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"paths": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Paths of PDF files to process",
				},
			},
			Required: []string{"paths"},
		},
	}, handlers.ProcessDocuments)

	// 2. save_vector_store - Persist the loaded vector store
	server.AddTool(mcp.Tool{
		Name:        "save_vector_store",
		Description: "Save the loaded vector store to a directory.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"directory": map[string]interface{}{
					"type":        "string",
					"description": "Target directory (default: " + defaultDir + ")",
				},
			},
		},
	}, handlers.SaveVectorStore)

	// 3. load_vector_store - Load a saved vector store
	server.AddTool(mcp.Tool{
		Name:        "load_vector_store",
		Description: "Load a previously saved vector store, replacing the loaded one. The current store is kept if loading fails.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"directory": map[string]interface{}{
					"type":        "string",
					"description": "Directory containing the saved store (default: " + defaultDir + ")",
				},
			},
		},
	}, handlers.LoadVectorStore)

	// 4. ask_question - Answer a question from the loaded documents
	server.AddTool(mcp.Tool{
		Name:        "ask_question",
		Description: "Answer a question using the loaded documents. Returns the answer and the distinct source documents used.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"question": map[string]interface{}{
					"type":        "string",
					"description": "The question to answer",
				},
			},
			Required: []string{"question"},
		},
	}, handlers.AskQuestion)

	// 5. vector_store_status - Report what is loaded
	server.AddTool(mcp.Tool{
		Name:        "vector_store_status",
		Description: "Report whether a vector store is loaded, with its manifest and the configured models.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.VectorStoreStatus)

	// 6. get_chat_history - Questions and answers so far
	server.AddTool(mcp.Tool{
		Name:        "get_chat_history",
		Description: "Get the questions asked in this session and the answers given.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.GetChatHistory)

	return handlers
}
