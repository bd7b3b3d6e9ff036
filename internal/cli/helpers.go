// Package cli implements the taskdb command-line interface.
// This file contains shared helper functions used across multiple commands.
package cli

import (
	"github.com/google/uuid"

	"github.com/randalmurphal/taskdb/internal/config"
	"github.com/randalmurphal/taskdb/internal/db"
)

// openStore opens the task store described by the resolved configuration.
// The caller owns the handle and must Close it.
func openStore() (*db.TaskDB, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	tdb, err := db.OpenTaskDBWithDialect(cfg.StorageDSN(), cfg.Dialect())
	if err != nil {
		return nil, nil, err
	}
	return tdb, cfg, nil
}

// newTaskID generates a short stable id for tasks created without --id.
func newTaskID() string {
	return "TASK-" + uuid.New().String()[:8]
}

// truncate shortens s to max runes, appending an ellipsis when cut.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

// flagCell renders a boolean flag for table output.
func flagCell(b bool) string {
	if b {
		return "yes"
	}
	return "-"
}
