package cli

import (
	"strings"
	"testing"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 40, "short"},
		{"exactly-ten", 11, "exactly-ten"},
		{"this summary is far too long for a table", 20, "this summary is f..."},
		{"abc", 2, "ab"},
		{"", 10, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestNewTaskID(t *testing.T) {
	id := newTaskID()
	if !strings.HasPrefix(id, "TASK-") {
		t.Errorf("newTaskID() = %q, want TASK- prefix", id)
	}
	if len(id) != len("TASK-")+8 {
		t.Errorf("newTaskID() = %q, want 8-char suffix", id)
	}

	// Ids must not collide in practice
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := newTaskID()
		if seen[id] {
			t.Fatalf("duplicate id generated: %s", id)
		}
		seen[id] = true
	}
}

func TestFlagCell(t *testing.T) {
	if got := flagCell(true); got != "yes" {
		t.Errorf("flagCell(true) = %q", got)
	}
	if got := flagCell(false); got != "-" {
		t.Errorf("flagCell(false) = %q", got)
	}
}
