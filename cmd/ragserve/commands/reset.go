// ABOUTME: CLI command to reset the vector index
// ABOUTME: Drops the index and every entry, then recreates it empty
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetForce bool

// NewResetCmd creates the reset command.
func NewResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset the vector index",
		Long: `Reset the vector index.

Deletes the index definition and all indexed entries, then recreates
an empty index with the same schema. Indexed documents must be
re-ingested afterwards.`,
		RunE: runReset,
	}

	cmd.Flags().BoolVarP(&resetForce, "force", "f", false, "Skip confirmation prompt")

	return cmd
}

func runReset(cmd *cobra.Command, args []string) error {
	if !resetForce {
		fmt.Fprint(cmd.OutOrStdout(), "This deletes every indexed entry. Continue? [y/N]: ")
		var answer string
		_, _ = fmt.Fscanln(cmd.InOrStdin(), &answer)
		if answer != "y" && answer != "Y" {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
	}

	engine, cleanup, _, err := buildEngine()
	if err != nil {
		return err
	}
	defer func() { _ = cleanup() }()

	if err := engine.Reset(cmd.Context()); err != nil {
		return fmt.Errorf("resetting index: %w", err)
	}

	if !quiet {
		fmt.Fprintln(cmd.OutOrStdout(), "Index reset.")
	}
	return nil
}
