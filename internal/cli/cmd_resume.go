// Package cli implements the taskdb command-line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newResumeCmd creates the resume command
func newResumeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resume <task-id>",
		Short: "Clear a task's waiting flag",
		Long: `Clear the task's waiting flag, making a deferred task actionable
again. Resuming a task that is not waiting does nothing.

Example:
  taskdb resume TASK-a1b2c3d4`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tdb, _, err := openStore()
			if err != nil {
				return err
			}
			defer func() { _ = tdb.Close() }()

			if err := tdb.ResumeTask(args[0]); err != nil {
				return err
			}

			if !quiet {
				fmt.Printf("Resumed %s\n", args[0])
			}
			return nil
		},
	}
}
