package model

import (
	"errors"
	"fmt"
)

// MergeErrorKind classifies why a merge or import attempt was rejected.
type MergeErrorKind string

const (
	// KindInvalidMergeRequest marks a violated structural precondition:
	// an empty source list, a sprite not owned by the stated source project,
	// or a nested transaction attempt.
	KindInvalidMergeRequest MergeErrorKind = "invalid-merge-request"

	// KindInconsistentState marks a failed post-condition check, such as a
	// duplicate found in a collection that must be duplicate-free. It points
	// at a defect in the merge logic and always rolls the attempt back.
	KindInconsistentState MergeErrorKind = "inconsistent-state-detected"
)

// String returns the string representation of MergeErrorKind.
func (k MergeErrorKind) String() string {
	return string(k)
}

// MergeError is the error type returned by every merge, import, and
// transaction operation.
type MergeError struct {
	// Kind classifies the failure.
	Kind MergeErrorKind

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface.
func (e *MergeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *MergeError) Unwrap() error {
	return e.Err
}

// InvalidMergeRequest creates a MergeError of kind KindInvalidMergeRequest.
func InvalidMergeRequest(format string, args ...any) *MergeError {
	return &MergeError{Kind: KindInvalidMergeRequest, Message: fmt.Sprintf(format, args...)}
}

// InconsistentState creates a MergeError of kind KindInconsistentState.
func InconsistentState(format string, args ...any) *MergeError {
	return &MergeError{Kind: KindInconsistentState, Message: fmt.Sprintf(format, args...)}
}

// IsInvalidMergeRequest reports whether err (or anything it wraps) is a
// MergeError of kind KindInvalidMergeRequest.
func IsInvalidMergeRequest(err error) bool {
	return mergeErrorKind(err) == KindInvalidMergeRequest
}

// IsInconsistentState reports whether err (or anything it wraps) is a
// MergeError of kind KindInconsistentState.
func IsInconsistentState(err error) bool {
	return mergeErrorKind(err) == KindInconsistentState
}

func mergeErrorKind(err error) MergeErrorKind {
	var mergeErr *MergeError
	if errors.As(err, &mergeErr) {
		return mergeErr.Kind
	}
	return ""
}

// ExitCode defines the CLI exit codes. These codes allow scripts to
// programmatically determine the outcome of a command.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitProjectNotFound indicates a project document could not be found.
	ExitProjectNotFound ExitCode = 2

	// ExitInvalidMergeRequest indicates the merge or import request was
	// rejected by validation. The target project is unchanged.
	ExitInvalidMergeRequest ExitCode = 3

	// ExitInconsistentState indicates a post-condition check failed and the
	// attempt was rolled back.
	ExitInconsistentState ExitCode = 4

	// ExitSaveFailed indicates the merged project could not be written.
	ExitSaveFailed ExitCode = 5
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}

// WrapMergeError wraps a merge/import failure into a CLIError whose exit
// code reflects the merge error kind.
func WrapMergeError(message string, err error) *CLIError {
	switch {
	case IsInvalidMergeRequest(err):
		return WrapCLIError(ExitInvalidMergeRequest, message, err)
	case IsInconsistentState(err):
		return WrapCLIError(ExitInconsistentState, message, err)
	default:
		return WrapCLIError(ExitGeneralError, message, err)
	}
}
