// ABOUTME: Root CLI command with global flags shared by all subcommands
// ABOUTME: Wires serve, mcp, ingest, reset, chat, and version under one root
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool
)

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ragserve",
		Short: "Retrieval-augmented chat service",
		Long: `ragserve - retrieval-augmented chat over your documents

Ingests plain-text documents into a vector index, retrieves the
passages most relevant to a question, and grounds the language
model's answer in them. Plain chat keeps per-conversation history;
RAG-mode queries are stateless.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewIngestCmd())
	cmd.AddCommand(NewResetCmd())
	cmd.AddCommand(NewChatCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
