// Package cli implements the taskdb command-line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/taskdb/internal/db"
)

// newEditCmd creates the edit command
func newEditCmd() *cobra.Command {
	var summary string
	var details string
	var steps []string
	var strict bool

	cmd := &cobra.Command{
		Use:   "edit <task-id>",
		Short: "Update fields of a task",
		Long: `Update a task in place. Only the flags you pass overwrite the stored
values; omitted fields are kept as-is. Passing --step replaces the whole
step list.

Editing an unknown id does nothing by default; --strict (or the
storage.strict_updates config key) makes it an error instead.

Example:
  taskdb edit TASK-a1b2c3d4 --summary "Buy oat milk"
  taskdb edit TASK-a1b2c3d4 --step go --step pay --step "drink coffee"
  taskdb edit TASK-a1b2c3d4 --details "" --strict`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tdb, cfg, err := openStore()
			if err != nil {
				return err
			}
			defer func() { _ = tdb.Close() }()

			// Only flags the user actually set participate in the merge;
			// an empty value is an overwrite, not an omission.
			var upd db.TaskUpdate
			if cmd.Flags().Changed("summary") {
				upd.Summary = &summary
			}
			if cmd.Flags().Changed("details") {
				upd.Details = &details
			}
			if cmd.Flags().Changed("step") {
				upd.Steps = &steps
			}

			id := args[0]
			if strict || cfg.Storage.StrictUpdates {
				err = tdb.UpdateTaskStrict(id, upd)
			} else {
				err = tdb.UpdateTask(id, upd)
			}
			if err != nil {
				return err
			}

			if !quiet {
				fmt.Printf("Updated %s\n", id)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&summary, "summary", "", "replace the summary")
	cmd.Flags().StringVar(&details, "details", "", "replace the details text")
	cmd.Flags().StringArrayVar(&steps, "step", nil, "replace the step list (repeatable)")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when the task id does not exist")

	return cmd
}
