// ABOUTME: MCP tool definitions and registration for the RAG server
// ABOUTME: Exposes the chat and ingestion pipelines as agent-callable tools
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/minwoo/ragserve/internal/log"
)

// Engine is the pipeline surface exposed over MCP.
type Engine interface {
	Chat(ctx context.Context, key, prompt string) (string, error)
	ChatRAG(ctx context.Context, prompt string) (string, error)
	IngestDirectory(ctx context.Context, dir string) (int, error)
	Reset(ctx context.Context) error
}

// RegisterTools registers all MCP tools with the server.
func RegisterTools(server *mcpserver.MCPServer, engine Engine, logger log.Logger) *Handlers {
	handlers := &Handlers{engine: engine, logger: logger}

	// 1. chat - conversational turn with persisted history
	server.AddTool(mcp.Tool{
		Name:        "chat",
		Description: "Send a chat message. Conversation history is kept per conversation key and included in every turn.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"prompt": map[string]interface{}{
					"type":        "string",
					"description": "User message",
				},
				"conversation_key": map[string]interface{}{
					"type":        "string",
					"description": "Opaque key scoping the conversation history",
				},
			},
			Required: []string{"prompt", "conversation_key"},
		},
	}, handlers.Chat)

	// 2. chat_rag - stateless retrieval-augmented answer
	server.AddTool(mcp.Tool{
		Name:        "chat_rag",
		Description: "Answer a question using retrieved document context. Stateless: no conversation history is read or stored.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"prompt": map[string]interface{}{
					"type":        "string",
					"description": "Question to answer from the indexed documents",
				},
			},
			Required: []string{"prompt"},
		},
	}, handlers.ChatRAG)

	// 3. ingest_documents - index a directory of plain-text files
	server.AddTool(mcp.Tool{
		Name:        "ingest_documents",
		Description: "Chunk, embed, and index every .txt document in a directory.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"directory": map[string]interface{}{
					"type":        "string",
					"description": "Directory containing plain-text documents",
				},
			},
			Required: []string{"directory"},
		},
	}, handlers.Ingest)

	// 4. reset_index - drop and recreate the vector index
	server.AddTool(mcp.Tool{
		Name:        "reset_index",
		Description: "Delete the vector index and all indexed entries, then recreate it empty.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.Reset)

	return handlers
}
