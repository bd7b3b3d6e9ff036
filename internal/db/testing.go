// Package db provides test utilities for database operations.
//
// Tests that need a store should use these helpers: in-memory databases
// are much faster than file-based ones and are cleaned up via t.Cleanup.
package db

import (
	"testing"
)

// NewTestTaskDB creates an in-memory task store for testing.
// The store is automatically closed when the test completes and the
// schema is applied.
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    t.Parallel()
//	    tdb := db.NewTestTaskDB(t)
//	    // use tdb...
//	}
func NewTestTaskDB(t testing.TB) *TaskDB {
	t.Helper()

	tdb, err := OpenTaskDBInMemory()
	if err != nil {
		t.Fatalf("create test task db: %v", err)
	}

	t.Cleanup(func() {
		_ = tdb.Close()
	})

	return tdb
}
