package db

import (
	"errors"
	"fmt"
)

var (
	// ErrArgumentType is wrapped by every ArgumentError.
	ErrArgumentType = errors.New("argument type mismatch")
	// ErrArity is returned when a function receives the wrong number of arguments.
	ErrArity = errors.New("wrong number of arguments")
	// ErrUnknownFunction is returned by Call for names that are not registered.
	ErrUnknownFunction = errors.New("unknown function")
	// ErrUnsupportedPlatform is wrapped by PlatformError.
	ErrUnsupportedPlatform = errors.New("unsupported platform")
	// ErrSegmentsUnavailable is returned when the binary was built without
	// virtual table support.
	ErrSegmentsUnavailable = errors.New("path_segments is not available in this build")

	// ErrJoinArity is returned by path_join with fewer than two arguments.
	ErrJoinArity = errors.New("at least 2 paths are required for path_join")

	errPathRequired = errors.New("path argument is required")
)

// ArgumentError reports an argument whose SQLite type does not match what
// the function expects.
type ArgumentError struct {
	Function string
	Position int // 1-based
	Want     string
	Got      string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: argument %d must be %s, got %s", e.Function, e.Position, e.Want, e.Got)
}

// Unwrap returns ErrArgumentType for errors.Is compatibility.
func (e *ArgumentError) Unwrap() error {
	return ErrArgumentType
}

// PlatformError reports that no engine build exists for the running
// OS/architecture pair.
type PlatformError struct {
	OS   string
	Arch string
}

func (e *PlatformError) Error() string {
	return fmt.Sprintf("sqlite-path: unsupported platform %s/%s", e.OS, e.Arch)
}

// Unwrap returns ErrUnsupportedPlatform for errors.Is compatibility.
func (e *PlatformError) Unwrap() error {
	return ErrUnsupportedPlatform
}
