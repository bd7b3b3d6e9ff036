// Package cli implements the taskdb command-line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newCompleteCmd creates the complete command
func newCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "complete <task-id>",
		Aliases: []string{"done"},
		Short:   "Mark a task as completed",
		Long: `Clear the task's active flag. Completing an unknown id, or a task
that is already completed, does nothing - the task ends up in the
desired state either way.

Example:
  taskdb complete TASK-a1b2c3d4`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tdb, _, err := openStore()
			if err != nil {
				return err
			}
			defer func() { _ = tdb.Close() }()

			if err := tdb.CompleteTask(args[0]); err != nil {
				return err
			}

			if !quiet {
				fmt.Printf("Completed %s\n", args[0])
			}
			return nil
		},
	}
}
