// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents to use the RAG pipelines via stdio
package commands

import (
	"fmt"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	ragmcp "github.com/minwoo/ragserve/internal/mcp"
)

// NewMCPCmd creates the MCP command.
func NewMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs ragserve as an MCP (Model Context Protocol) server over stdio,
exposing chat, chat_rag, ingest_documents, and reset_index tools.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by an agent host)
  ragserve mcp`,
	}
}

func runMCP(cmd *cobra.Command, args []string) error {
	engine, cleanup, logger, err := buildEngine()
	if err != nil {
		return err
	}
	defer func() { _ = cleanup() }()

	server := mcpserver.NewMCPServer("RAG Service", versionInfo.Version)
	ragmcp.RegisterTools(server, engine, logger.With("component", "mcp"))

	logger.Info("MCP server starting on stdio")
	if err := mcpserver.ServeStdio(server); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}
