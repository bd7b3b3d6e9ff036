// Package main provides the entry point for the taskdb CLI.
package main

import (
	"os"

	"github.com/randalmurphal/taskdb/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
