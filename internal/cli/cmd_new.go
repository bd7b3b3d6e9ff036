// Package cli implements the taskdb command-line interface.
package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/taskdb/internal/db"
)

// newNewCmd creates the new command
func newNewCmd() *cobra.Command {
	var taskID string
	var details string
	var steps []string

	cmd := &cobra.Command{
		Use:   "new <summary>",
		Short: "Create a new task",
		Long: `Create a new task with the given summary.

The task id is generated unless --id supplies one. Ids are stable and
unique; reusing an existing id fails.

Example:
  taskdb new "Buy milk"
  taskdb new "Buy milk" --step go --step pay
  taskdb new "Deploy v2" --id REL-42 --details "staging first"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tdb, _, err := openStore()
			if err != nil {
				return err
			}
			defer func() { _ = tdb.Close() }()

			id := taskID
			if id == "" {
				id = newTaskID()
			}

			internalID, err := tdb.CreateTask(db.NewTask{
				TaskID:  id,
				Summary: strings.Join(args, " "),
				Details: details,
				Steps:   steps,
			})
			if err != nil {
				return err
			}

			if jsonOut {
				data, _ := json.MarshalIndent(map[string]any{
					"task_id":     id,
					"internal_id": internalID,
				}, "", "  ")
				fmt.Println(string(data))
				return nil
			}

			if !quiet {
				fmt.Printf("Created %s\n", id)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&taskID, "id", "", "stable task id (generated when omitted)")
	cmd.Flags().StringVar(&details, "details", "", "free-form details text")
	cmd.Flags().StringArrayVar(&steps, "step", nil, "ordered step (repeatable)")

	return cmd
}
