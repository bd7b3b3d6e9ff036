// Package cli implements the taskdb command-line interface.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// newExportCmd creates the export command
func newExportCmd() *cobra.Command {
	var format string
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all tasks",
		Long: `Export every task - including completed ones - as YAML or JSON.

Example:
  taskdb export
  taskdb export --format json
  taskdb export -o tasks.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tdb, _, err := openStore()
			if err != nil {
				return err
			}
			defer func() { _ = tdb.Close() }()

			tasks, err := tdb.ListTasks()
			if err != nil {
				return err
			}

			var data []byte
			switch format {
			case "yaml", "yml":
				data, err = yaml.Marshal(tasks)
			case "json":
				data, err = json.MarshalIndent(tasks, "", "  ")
				data = append(data, '\n')
			default:
				return fmt.Errorf("unknown format %q (want yaml or json)", format)
			}
			if err != nil {
				return fmt.Errorf("encode tasks: %w", err)
			}

			if output == "" {
				_, err = os.Stdout.Write(data)
				return err
			}

			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			if !quiet {
				fmt.Printf("Exported %d tasks to %s\n", len(tasks), output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format (yaml or json)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")

	return cmd
}
