package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/asg017/sqlite-path/internal/db"
)

// CLIError represents a user-friendly error with context and suggestions.
type CLIError struct {
	Message    string
	Suggestion string
	Cause      error
}

// Error implements the error interface.
func (e *CLIError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)
	if e.Cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Cause.Error())
	}
	if e.Suggestion != "" {
		sb.WriteString("\n\nSuggestion: ")
		sb.WriteString(e.Suggestion)
	}
	return sb.String()
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *CLIError) Unwrap() error {
	return e.Cause
}

// NewCLIError creates a new CLIError with a message and suggestion.
func NewCLIError(message, suggestion string) *CLIError {
	return &CLIError{
		Message:    message,
		Suggestion: suggestion,
	}
}

// WrapError wraps an existing error with additional context.
func WrapError(cause error, message, suggestion string) *CLIError {
	return &CLIError{
		Message:    message,
		Suggestion: suggestion,
		Cause:      cause,
	}
}

// =============================================================================
// Common CLI Errors
// =============================================================================

// ErrConfigInvalid returns an error for invalid configuration.
func ErrConfigInvalid(cause error) *CLIError {
	return &CLIError{
		Message:    "Configuration is invalid",
		Suggestion: "Check .pathq/config.yaml for syntax errors, or delete it and run 'pathq init' to recreate",
		Cause:      cause,
	}
}

// ErrDatabaseOpen returns an error when the SQLite host cannot be opened.
func ErrDatabaseOpen(cause error) *CLIError {
	suggestion := "Check database.path and database.extensions in .pathq/config.yaml"
	var platErr *db.PlatformError
	if errors.As(cause, &platErr) {
		suggestion = "pathq is built for linux and darwin (amd64, arm64) and windows/amd64"
	}
	return &CLIError{
		Message:    "Failed to open database",
		Suggestion: suggestion,
		Cause:      cause,
	}
}

// ErrUnknownFunction returns an error for names that are not registered.
func ErrUnknownFunction(name string) *CLIError {
	return &CLIError{
		Message:    fmt.Sprintf("Unknown function: %s", name),
		Suggestion: "Run 'pathq functions' to list the available functions",
	}
}

// ErrInvalidArgument returns an error for arguments a function rejects.
func ErrInvalidArgument(cause error) *CLIError {
	return &CLIError{
		Message:    "Invalid argument",
		Suggestion: "Use NULL for a null argument; path_segment_at takes an integer index",
		Cause:      cause,
	}
}

// ErrSegmentsUnavailable returns an error when the binary lacks virtual table support.
func ErrSegmentsUnavailable() *CLIError {
	return &CLIError{
		Message:    "path_segments is not available in this build",
		Suggestion: "Rebuild with 'make build', which sets the sqlite_vtable tag",
	}
}

// ErrQueryFailed returns an error when SQLite rejects a statement.
func ErrQueryFailed(cause error) *CLIError {
	return &CLIError{
		Message:    "Query failed",
		Suggestion: "Run 'pathq functions' to check function names and arity",
		Cause:      cause,
	}
}
