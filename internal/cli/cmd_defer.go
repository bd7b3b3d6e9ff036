// Package cli implements the taskdb command-line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newDeferCmd creates the defer command
func newDeferCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "defer <task-id>",
		Short: "Mark a task as waiting",
		Long: `Set the task's waiting flag: the task is deferred and currently not
actionable. Waiting is independent of completion - deferring does not
reactivate or deactivate a task.

Example:
  taskdb defer TASK-a1b2c3d4`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tdb, _, err := openStore()
			if err != nil {
				return err
			}
			defer func() { _ = tdb.Close() }()

			if err := tdb.DeferTask(args[0]); err != nil {
				return err
			}

			if !quiet {
				fmt.Printf("Deferred %s\n", args[0])
			}
			return nil
		},
	}
}
