package api

import (
	"fmt"
	"net/http"
)

// APIError represents a structured error response from the pathq API.
// It says what went wrong and, where it helps, how to fix the request.
type APIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
	Details    string `json:"details,omitempty"`
}

// Error implements the error interface for APIError.
func (e APIError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s: %s. %s", e.Code, e.Message, e.Suggestion)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// WithDetails returns a copy of the error with additional details.
func (e APIError) WithDetails(details string) APIError {
	e.Details = details
	return e
}

// =============================================================================
// Request Errors
// =============================================================================

var (
	// ErrInvalidJSON is returned when the request body contains invalid JSON.
	ErrInvalidJSON = APIError{
		Code:       "INVALID_JSON",
		Message:    "Request body contains invalid JSON",
		Suggestion: `Send a body like {"function":"path_basename","args":["a/b.txt"]}`,
	}

	// ErrUnknownFunction is returned when /call names a function that is not registered.
	ErrUnknownFunction = APIError{
		Code:       "UNKNOWN_FUNCTION",
		Message:    "Function is not registered",
		Suggestion: "List the available functions with GET /version or 'pathq functions'",
	}

	// ErrInvalidArgument is returned for wrongly typed or missing function arguments.
	ErrInvalidArgument = APIError{
		Code:       "INVALID_ARGUMENT",
		Message:    "Function arguments do not match its signature",
		Suggestion: "Paths are strings or null; path_segment_at takes an integer index; path_join takes at least 2 paths",
	}

	// ErrPathRequired is returned by /segments without a path query parameter.
	ErrPathRequired = APIError{
		Code:       "PATH_REQUIRED",
		Message:    "path argument is required",
		Suggestion: "Pass the path to list, e.g. /segments?path=/home/root/.ssh",
	}
)

// =============================================================================
// Engine Errors
// =============================================================================

var (
	// ErrQueryFailed is returned when SQLite rejects or fails an evaluation.
	ErrQueryFailed = APIError{
		Code:       "QUERY_FAILED",
		Message:    "Evaluation failed",
		Suggestion: "Check the server log for the underlying SQLite error",
	}

	// ErrSegmentsUnavailable is returned when the server was built without virtual table support.
	ErrSegmentsUnavailable = APIError{
		Code:       "SEGMENTS_UNAVAILABLE",
		Message:    "path_segments is not available in this build",
		Suggestion: "Rebuild with 'make build', which sets the sqlite_vtable tag",
	}
)

// =============================================================================
// HTTP Response Helpers
// =============================================================================

// WriteError writes an APIError as a JSON response with the appropriate status code.
func WriteError(w http.ResponseWriter, statusCode int, err APIError) {
	writeJSON(w, statusCode, err)
}

// WriteBadRequest writes a 400 Bad Request response with the given error.
func WriteBadRequest(w http.ResponseWriter, err APIError) {
	WriteError(w, http.StatusBadRequest, err)
}

// WriteNotFound writes a 404 Not Found response with the given error.
func WriteNotFound(w http.ResponseWriter, err APIError) {
	WriteError(w, http.StatusNotFound, err)
}

// WriteInternalError writes a 500 Internal Server Error response with the given error.
func WriteInternalError(w http.ResponseWriter, err APIError) {
	WriteError(w, http.StatusInternalServerError, err)
}

// NewError creates a custom APIError with the given code, message, and suggestion.
func NewError(code, message, suggestion string) APIError {
	return APIError{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}
