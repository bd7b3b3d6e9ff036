// Package cli implements the taskdb command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
	quiet   bool
	jsonOut bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "taskdb",
	Short: "Durable task store with lifecycle tracking",
	Long: `taskdb persists tasks - a summary, conversation history, details and
ordered steps - in an embedded database and tracks their lifecycle.

Tasks are addressed by a stable, caller-chosen id. Completing and
deferring are independent flags: a task can be done and still parked.

Quick start:
  taskdb new "Buy milk" --step go --step pay
  taskdb list                  Show active tasks
  taskdb show TASK-a1b2c3d4    Show one task
  taskdb complete TASK-a1b2c3d4`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .taskdb/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output as JSON")

	// Add subcommands
	rootCmd.AddCommand(newNewCmd())
	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newEditCmd())
	rootCmd.AddCommand(newSayCmd())
	rootCmd.AddCommand(newStepCmd())
	rootCmd.AddCommand(newCompleteCmd())
	rootCmd.AddCommand(newDeferCmd())
	rootCmd.AddCommand(newResumeCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newVersionCmd())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Search for config in .taskdb directory
		viper.AddConfigPath(".taskdb")
		viper.AddConfigPath("$HOME/.taskdb")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("TASKDB")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if verbose {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}
