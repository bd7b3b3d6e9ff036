// Package cli implements the taskdb command-line interface.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/taskdb/internal/db"
	storeerr "github.com/randalmurphal/taskdb/internal/errors"
)

// newSayCmd creates the say command
func newSayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "say <task-id> <role> <content...>",
		Short: "Append an entry to a task's conversation",
		Long: `Append one conversation entry to a task. The role is free-form
("user", "assistant", "note", ...) and the rest of the arguments form
the content.

Example:
  taskdb say TASK-a1b2c3d4 user "actually make it oat milk"
  taskdb say TASK-a1b2c3d4 note blocked on the shop being closed`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			tdb, _, err := openStore()
			if err != nil {
				return err
			}
			defer func() { _ = tdb.Close() }()

			id := args[0]
			t, err := tdb.GetTask(id)
			if err != nil {
				return err
			}
			if t == nil {
				return storeerr.ErrTaskNotFound(id)
			}

			conv := append(t.Conversation, db.Message{
				Role:    args[1],
				Content: strings.Join(args[2:], " "),
			})
			if err := tdb.UpdateTask(id, db.TaskUpdate{Conversation: &conv}); err != nil {
				return err
			}

			if !quiet {
				fmt.Printf("Appended to %s (%d entries)\n", id, len(conv))
			}
			return nil
		},
	}
}
