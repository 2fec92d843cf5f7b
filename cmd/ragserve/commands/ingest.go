// ABOUTME: CLI command to ingest a directory of plain-text documents
// ABOUTME: Chunks, embeds, and indexes every .txt file under the given path
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewIngestCmd creates the ingest command.
func NewIngestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest <directory>",
		Short: "Index a directory of documents",
		Long: `Index a directory of documents.

Every .txt file in the directory is split into sentence-respecting
chunks, embedded, and inserted into the vector index under keys
derived from the filename and chunk position.

Examples:
  ragserve ingest ./docs
  ragserve --verbose ingest /var/corpus`,
		Args: cobra.ExactArgs(1),
		RunE: runIngest,
	}
}

func runIngest(cmd *cobra.Command, args []string) error {
	engine, cleanup, _, err := buildEngine()
	if err != nil {
		return err
	}
	defer func() { _ = cleanup() }()

	entries, err := engine.IngestDirectory(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("ingesting %s: %w", args[0], err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d entries from %s\n", entries, args[0])
	}
	return nil
}
