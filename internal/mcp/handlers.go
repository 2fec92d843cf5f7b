// ABOUTME: MCP tool handler implementations for the RAG server
// ABOUTME: Thin argument extraction around the engine pipelines
package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/minwoo/ragserve/internal/log"
)

// Handlers contains the handler functions for all MCP tools.
type Handlers struct {
	engine Engine
	logger log.Logger
}

// Chat handles the chat tool.
func (h *Handlers) Chat(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prompt, err := request.RequireString("prompt")
	if err != nil {
		return mcp.NewToolResultError("prompt argument is required and must be a string"), nil
	}
	key, err := request.RequireString("conversation_key")
	if err != nil {
		return mcp.NewToolResultError("conversation_key argument is required and must be a string"), nil
	}

	reply, err := h.engine.Chat(ctx, key, prompt)
	if err != nil {
		h.logger.Error("chat tool failed", "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("chat failed: %v", err)), nil
	}
	return mcp.NewToolResultText(reply), nil
}

// ChatRAG handles the chat_rag tool.
func (h *Handlers) ChatRAG(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prompt, err := request.RequireString("prompt")
	if err != nil {
		return mcp.NewToolResultError("prompt argument is required and must be a string"), nil
	}

	reply, err := h.engine.ChatRAG(ctx, prompt)
	if err != nil {
		h.logger.Error("chat_rag tool failed", "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("RAG query failed: %v", err)), nil
	}
	return mcp.NewToolResultText(reply), nil
}

// Ingest handles the ingest_documents tool.
func (h *Handlers) Ingest(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dir, err := request.RequireString("directory")
	if err != nil {
		return mcp.NewToolResultError("directory argument is required and must be a string"), nil
	}

	entries, err := h.engine.IngestDirectory(ctx, dir)
	if err != nil {
		h.logger.Error("ingest tool failed", "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("ingestion failed: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("indexed %d entries", entries)), nil
}

// Reset handles the reset_index tool.
func (h *Handlers) Reset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.engine.Reset(ctx); err != nil {
		h.logger.Error("reset tool failed", "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("reset failed: %v", err)), nil
	}
	return mcp.NewToolResultText("index reset"), nil
}
