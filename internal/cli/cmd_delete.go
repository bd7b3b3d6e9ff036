// Package cli implements the taskdb command-line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newDeleteCmd creates the delete command
func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <task-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Long: `Remove a task from the store. Deleting an unknown id does nothing.
A deleted id can be reused by 'taskdb new --id', which creates a fresh
task under the same handle.

Example:
  taskdb delete TASK-a1b2c3d4`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tdb, _, err := openStore()
			if err != nil {
				return err
			}
			defer func() { _ = tdb.Close() }()

			if err := tdb.DeleteTask(args[0]); err != nil {
				return err
			}

			if !quiet {
				fmt.Printf("Deleted %s\n", args[0])
			}
			return nil
		},
	}
}
