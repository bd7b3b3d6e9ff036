// Package cli implements the taskdb command-line interface.
package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// newStepCmd creates the step command
func newStepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "step <task-id> <n>",
		Short: "Move a task's current-step cursor",
		Long: `Set the zero-based current-step cursor of a task. No other operation
moves the cursor.

Example:
  taskdb step TASK-a1b2c3d4 1`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("step number %q is not an integer", args[1])
			}

			tdb, _, err := openStore()
			if err != nil {
				return err
			}
			defer func() { _ = tdb.Close() }()

			if err := tdb.SetCurrentStep(args[0], n); err != nil {
				return err
			}

			if !quiet {
				fmt.Printf("Set %s to step %d\n", args[0], n)
			}
			return nil
		},
	}
}
