// Package cli implements the taskdb command-line interface.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/randalmurphal/taskdb/internal/db"
)

// newShowCmd creates the show command
func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show task details",
		Long: `Show a task: summary, details, steps with the current cursor, status
flags and the conversation history.

Example:
  taskdb show TASK-a1b2c3d4
  taskdb show TASK-a1b2c3d4 --json`,
		Args: cobra.ExactArgs(1),
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
				// Absence is an outcome, not a failure.
				fmt.Printf("No task with id %s.\n", id)
				return nil
			}

			if jsonOut {
				data, _ := json.MarshalIndent(t, "", "  ")
				fmt.Println(string(data))
				return nil
			}

			printTask(t)
			return nil
		},
	}
}

// printTask renders a task for terminal output.
func printTask(t *db.Task) {
	fmt.Printf("\n%s - %s\n", t.TaskID, t.Summary)
	fmt.Printf("────────────────────────────────────────────\n")
	fmt.Printf("Active:    %s\n", flagCell(t.IsActive))
	fmt.Printf("Waiting:   %s\n", flagCell(t.IsWaiting))
	fmt.Printf("Internal:  #%d\n", t.InternalID)

	if t.Details != "" {
		fmt.Printf("\nDetails:\n%s\n", t.Details)
	}

	if len(t.Steps) > 0 {
		fmt.Printf("\nSteps:\n")
		for i, step := range t.Steps {
			marker := " "
			if i == t.CurrentStepNum {
				marker = ">"
			}
			fmt.Printf("  %s %d. %s\n", marker, i+1, step)
		}
	}

	if len(t.Conversation) > 0 {
		printConversation(t.Conversation)
	}
}

// printConversation displays the conversation history, through a pager
// when it is long and stdout is a terminal.
func printConversation(msgs []db.Message) {
	var b strings.Builder
	for _, m := range msgs {
		fmt.Fprintf(&b, "[%s] %s\n", m.Role, m.Content)
	}
	content := b.String()

	fmt.Printf("\nConversation (%d entries):\n", len(msgs))

	const pagerThreshold = 50
	if strings.Count(content, "\n") > pagerThreshold && isatty.IsTerminal(os.Stdout.Fd()) {
		if showWithPager(content) {
			return
		}
	}

	fmt.Print(content)
}

// showWithPager attempts to display content using the system pager (less).
// Returns true if successful, false if pager is not available.
func showWithPager(content string) bool {
	// Look for less first, then more
	pagerPath, err := exec.LookPath("less")
	if err != nil {
		pagerPath, err = exec.LookPath("more")
		if err != nil {
			return false
		}
	}

	cmd := exec.Command(pagerPath)
	cmd.Stdin = strings.NewReader(content)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return false
	}
	return true
}
