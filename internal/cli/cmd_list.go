// Package cli implements the taskdb command-line interface.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/taskdb/internal/db"
)

// newListCmd creates the list command
func newListCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Long: `List active tasks in the store.

Example:
  taskdb list
  taskdb list --all`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tdb, _, err := openStore()
			if err != nil {
				return err
			}
			defer func() { _ = tdb.Close() }()

			var tasks []db.Task
			if all {
				tasks, err = tdb.ListTasks()
			} else {
				tasks, err = tdb.ListActiveTasks()
			}
			if err != nil {
				return err
			}

			if jsonOut {
				data, _ := json.MarshalIndent(tasks, "", "  ")
				fmt.Println(string(data))
				return nil
			}

			if len(tasks) == 0 {
				fmt.Println("No tasks found. Create one with: taskdb new \"Your task\"")
				return nil
			}

			// Print tasks in table format
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tACTIVE\tWAITING\tSTEP\tSUMMARY")
			fmt.Fprintln(w, "──\t──────\t───────\t────\t───────")

			for _, t := range tasks {
				step := "-"
				if len(t.Steps) > 0 {
					step = fmt.Sprintf("%d/%d", t.CurrentStepNum, len(t.Steps))
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					t.TaskID, flagCell(t.IsActive), flagCell(t.IsWaiting), step, truncate(t.Summary, 40))
			}

			w.Flush()
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "include completed tasks")

	return cmd
}
