package config

import (
	"fmt"
	"log/slog"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("configuration validation failed:\n")
	for _, err := range e {
		sb.WriteString("  - ")
		sb.WriteString(err.Error())
		sb.WriteString("\n")
	}
	return sb.String()
}

// HasErrors returns true if there are any validation errors
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// validLogLevels maps the allowed log level values to slog levels
var validLogLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// validFormats defines the allowed output formats
var validFormats = map[string]bool{
	"table": true,
	"json":  true,
	"yaml":  true,
}

// LogLevel converts a configured level name to a slog.Level.
// Unknown names fall back to info.
func LogLevel(name string) slog.Level {
	if level, ok := validLogLevels[strings.ToLower(name)]; ok {
		return level
	}
	return slog.LevelInfo
}

// Validate checks the configuration for errors and returns all validation errors found
func Validate(cfg *Config) ValidationErrors {
	var errors ValidationErrors

	if cfg.Version < 1 {
		errors = append(errors, ValidationError{
			Field:   "version",
			Message: "must be at least 1",
		})
	}

	// Database validation
	if cfg.Database.Path == "" {
		errors = append(errors, ValidationError{
			Field:   "database.path",
			Message: "must not be empty; use \":memory:\" for an in-memory database",
		})
	}
	if cfg.Database.MaxOpenConns < 0 {
		errors = append(errors, ValidationError{
			Field:   "database.max_open_conns",
			Message: "must be non-negative",
		})
	}
	for i, ext := range cfg.Database.Extensions {
		if strings.TrimSpace(ext) == "" {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("database.extensions[%d]", i),
				Message: "must not be empty",
			})
		}
	}

	// Server validation
	if cfg.Server.Host == "" {
		errors = append(errors, ValidationError{
			Field:   "server.host",
			Message: "must not be empty",
		})
	}
	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		errors = append(errors, ValidationError{
			Field:   "server.port",
			Message: "must be between 0 and 65535",
		})
	}
	if _, ok := validLogLevels[cfg.Server.LogLevel]; !ok {
		errors = append(errors, ValidationError{
			Field:   "server.log_level",
			Message: fmt.Sprintf("invalid log level '%s'; valid values are: debug, info, warn, error", cfg.Server.LogLevel),
		})
	}
	if cfg.Server.RequestTimeoutMs < 0 {
		errors = append(errors, ValidationError{
			Field:   "server.request_timeout_ms",
			Message: "must be non-negative",
		})
	}

	// Output validation
	if !validFormats[cfg.Output.Format] {
		errors = append(errors, ValidationError{
			Field:   "output.format",
			Message: fmt.Sprintf("invalid format '%s'; valid values are: table, json, yaml", cfg.Output.Format),
		})
	}

	return errors
}

// ValidateOrError is a convenience function that returns an error if validation fails
func ValidateOrError(cfg *Config) error {
	errors := Validate(cfg)
	if errors.HasErrors() {
		return errors
	}
	return nil
}
