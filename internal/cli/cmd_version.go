// Package cli implements the taskdb command-line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the taskdb version, overridable at build time with
// -ldflags "-X github.com/randalmurphal/taskdb/internal/cli.Version=...".
var Version = "0.1.0-dev"

// newVersionCmd creates the version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the taskdb version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("taskdb %s\n", Version)
			return nil
		},
	}
}
