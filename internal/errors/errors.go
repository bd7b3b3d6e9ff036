// Package errors provides structured error types for taskdb.
package errors

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Code represents a unique error code.
type Code string

// Error codes for taskdb.
const (
	// Storage errors
	CodeStorageUnavailable Code = "STORAGE_UNAVAILABLE"

	// Task errors
	CodeValidation    Code = "VALIDATION_FAILED"
	CodeDuplicateTask Code = "DUPLICATE_TASK_ID"
	CodeTaskNotFound  Code = "TASK_NOT_FOUND"

	// Config errors
	CodeConfigInvalid Code = "CONFIG_INVALID"
)

// StoreError is the structured error type for taskdb.
type StoreError struct {
	Code  Code   `json:"code"`
	What  string `json:"what"`
	Why   string `json:"why,omitempty"`
	Fix   string `json:"fix,omitempty"`
	Cause error  `json:"-"`
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	var b strings.Builder
	b.WriteString(e.What)
	if e.Why != "" {
		b.WriteString(": ")
		b.WriteString(e.Why)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *StoreError) Unwrap() error {
	return e.Cause
}

// UserMessage returns a user-friendly message for CLI output.
func (e *StoreError) UserMessage() string {
	var b strings.Builder
	b.WriteString("Error: ")
	b.WriteString(e.What)
	if e.Why != "" {
		b.WriteString("\n\nWhy: ")
		b.WriteString(e.Why)
	}
	if e.Fix != "" {
		b.WriteString("\n\nFix: ")
		b.WriteString(e.Fix)
	}
	return b.String()
}

// MarshalJSON implements json.Marshaler.
func (e *StoreError) MarshalJSON() ([]byte, error) {
	type alias StoreError
	aux := struct {
		*alias
		CauseMsg string `json:"cause,omitempty"`
	}{
		alias: (*alias)(e),
	}
	if e.Cause != nil {
		aux.CauseMsg = e.Cause.Error()
	}
	return json.Marshal(aux)
}

// Is reports whether target is a StoreError with the same code.
func (e *StoreError) Is(target error) bool {
	t, ok := target.(*StoreError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithCause returns a copy of the error with the given cause.
func (e *StoreError) WithCause(err error) *StoreError {
	return &StoreError{
		Code:  e.Code,
		What:  e.What,
		Why:   e.Why,
		Fix:   e.Fix,
		Cause: err,
	}
}

// --- Error constructors ---

// ErrStorageUnavailable returns an error when the store cannot be opened
// or is used after being closed.
func ErrStorageUnavailable(dsn string, cause error) *StoreError {
	return &StoreError{
		Code:  CodeStorageUnavailable,
		What:  fmt.Sprintf("storage at %s is unavailable", dsn),
		Why:   "The database could not be opened for read/write, or the connection was already closed",
		Fix:   "Check that the path is writable and the store has not been closed",
		Cause: cause,
	}
}

// ErrTaskIDRequired returns an error when a task is created without an id.
func ErrTaskIDRequired() *StoreError {
	return &StoreError{
		Code: CodeValidation,
		What: "task_id is required",
		Why:  "Every task is addressed by a caller-supplied stable identifier",
		Fix:  "Pass a non-empty task_id when creating the task",
	}
}

// ErrSummaryRequired returns an error when a task is created without a summary.
func ErrSummaryRequired() *StoreError {
	return &StoreError{
		Code: CodeValidation,
		What: "summary is required",
		Why:  "A task must have a non-empty summary at creation",
		Fix:  "Pass a non-empty summary when creating the task",
	}
}

// ErrDuplicateTask returns an error when a task_id already exists.
func ErrDuplicateTask(id string) *StoreError {
	return &StoreError{
		Code: CodeDuplicateTask,
		What: fmt.Sprintf("task %s already exists", id),
		Why:  "task_id is unique for the lifetime of the store",
		Fix:  "Pick a different task_id, or delete the existing task first",
	}
}

// ErrTaskNotFound returns an error when a task doesn't exist.
// Only strict-mode updates raise this; lookups report absence as a
// found/not-found outcome and control operations are silent no-ops.
func ErrTaskNotFound(id string) *StoreError {
	return &StoreError{
		Code: CodeTaskNotFound,
		What: fmt.Sprintf("task %s not found", id),
		Why:  "No task with this id exists in the store",
		Fix:  "Run 'taskdb list' to see available tasks, or create one with 'taskdb new'",
	}
}

// ErrConfigInvalid returns an error for invalid configuration.
func ErrConfigInvalid(field, reason string) *StoreError {
	return &StoreError{
		Code: CodeConfigInvalid,
		What: fmt.Sprintf("invalid configuration: %s", field),
		Why:  reason,
		Fix:  "Check .taskdb/config.yaml and fix the invalid field",
	}
}

// AsStoreError attempts to convert an error to a StoreError.
// Returns nil if the error is not a StoreError.
func AsStoreError(err error) *StoreError {
	var storeErr *StoreError
	if As(err, &storeErr) {
		return storeErr
	}
	return nil
}

// As is a convenience wrapper for errors.As.
func As(err error, target any) bool {
	return asError(err, target)
}

// asError implements errors.As behavior.
func asError(err error, target any) bool {
	if err == nil {
		return false
	}
	if storeErr, ok := err.(*StoreError); ok {
		if t, ok := target.(**StoreError); ok {
			*t = storeErr
			return true
		}
	}
	// Check unwrapped error
	if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
		return asError(unwrapper.Unwrap(), target)
	}
	return false
}

// Wrap wraps a generic error into a StoreError with unknown code.
func Wrap(err error, what string) *StoreError {
	return &StoreError{
		Code:  Code("UNKNOWN"),
		What:  what,
		Cause: err,
	}
}
