package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestStoreError_Error(t *testing.T) {
	err := &StoreError{
		What: "task t1 not found",
		Why:  "no such row",
	}
	if got := err.Error(); got != "task t1 not found: no such row" {
		t.Errorf("Error() = %q", got)
	}

	cause := errors.New("boom")
	err = err.WithCause(cause)
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("Error() should include cause: %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("Unwrap should reach the cause")
	}
}

func TestStoreError_IsByCode(t *testing.T) {
	a := ErrDuplicateTask("t1")
	b := ErrDuplicateTask("t2")
	if !errors.Is(a, b) {
		t.Error("errors with the same code should match")
	}
	if errors.Is(a, ErrTaskNotFound("t1")) {
		t.Error("errors with different codes should not match")
	}
}

func TestStoreError_WrappedIsStillFound(t *testing.T) {
	inner := ErrTaskNotFound("t1")
	wrapped := fmt.Errorf("strict update: %w", inner)

	got := AsStoreError(wrapped)
	if got == nil {
		t.Fatal("AsStoreError should unwrap")
	}
	if got.Code != CodeTaskNotFound {
		t.Errorf("Code = %q, want %q", got.Code, CodeTaskNotFound)
	}
}

func TestStoreError_UserMessage(t *testing.T) {
	msg := ErrSummaryRequired().UserMessage()
	for _, want := range []string{"Error:", "Why:", "Fix:"} {
		if !strings.Contains(msg, want) {
			t.Errorf("UserMessage() missing %q:\n%s", want, msg)
		}
	}
}

func TestStoreError_MarshalJSON(t *testing.T) {
	err := ErrStorageUnavailable("/tmp/tasks.db", errors.New("disk full"))
	data, merr := json.Marshal(err)
	if merr != nil {
		t.Fatalf("marshal: %v", merr)
	}

	var decoded map[string]any
	if uerr := json.Unmarshal(data, &decoded); uerr != nil {
		t.Fatalf("unmarshal: %v", uerr)
	}
	if decoded["code"] != string(CodeStorageUnavailable) {
		t.Errorf("code = %v", decoded["code"])
	}
	if decoded["cause"] != "disk full" {
		t.Errorf("cause = %v", decoded["cause"])
	}
}

func TestAsStoreError_NotAStoreError(t *testing.T) {
	if got := AsStoreError(errors.New("plain")); got != nil {
		t.Errorf("AsStoreError(plain) = %v, want nil", got)
	}
	if got := AsStoreError(nil); got != nil {
		t.Errorf("AsStoreError(nil) = %v, want nil", got)
	}
}
