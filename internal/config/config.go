// Package config provides configuration loading and validation for pathq.
package config

import (
	"fmt"
	"time"
)

// Config represents the complete pathq configuration
type Config struct {
	Version  int            `yaml:"version" json:"version" mapstructure:"version"`
	Database DatabaseConfig `yaml:"database" json:"database" mapstructure:"database"`
	Server   ServerConfig   `yaml:"server" json:"server" mapstructure:"server"`
	Output   OutputConfig   `yaml:"output" json:"output" mapstructure:"output"`
}

// DatabaseConfig contains settings for the SQLite host connection
type DatabaseConfig struct {
	// Path is a database file, or ":memory:"
	Path string `yaml:"path" json:"path" mapstructure:"path"`
	// Extensions are additional loadable SQLite extensions activated on every connection
	Extensions   []string `yaml:"extensions" json:"extensions,omitempty" mapstructure:"extensions"`
	MaxOpenConns int      `yaml:"max_open_conns" json:"max_open_conns" mapstructure:"max_open_conns"`
}

// ServerConfig contains HTTP server settings for `pathq serve`
type ServerConfig struct {
	Host             string `yaml:"host" json:"host" mapstructure:"host"`
	Port             int    `yaml:"port" json:"port" mapstructure:"port"`
	LogLevel         string `yaml:"log_level" json:"log_level" mapstructure:"log_level"`
	RequestTimeoutMs int    `yaml:"request_timeout_ms" json:"request_timeout_ms" mapstructure:"request_timeout_ms"`
}

// OutputConfig contains CLI rendering settings
type OutputConfig struct {
	Format string `yaml:"format" json:"format" mapstructure:"format"`
}

// InMemory reports whether the database lives only for the process
func (d DatabaseConfig) InMemory() bool {
	return d.Path == "" || d.Path == MemoryPath
}

// Address returns the host:port the server listens on
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// RequestTimeout returns the per-request timeout as time.Duration
func (s ServerConfig) RequestTimeout() time.Duration {
	return time.Duration(s.RequestTimeoutMs) * time.Millisecond
}
