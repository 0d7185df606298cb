package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"

	"gopkg.in/yaml.v3"
)

// GlobalConfigDir returns the global pathq configuration directory.
// On Unix: ~/.config/pathq (or XDG_CONFIG_HOME/pathq)
// On Windows: %APPDATA%\pathq
func GlobalConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "pathq")
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "pathq")
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil || homeDir == "" {
		return ""
	}
	return filepath.Join(homeDir, ".config", "pathq")
}

// GlobalConfigPath returns the full path to the global config file.
func GlobalConfigPath() string {
	dir := GlobalConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
}

// LoadGlobalConfig loads the global configuration from disk.
// Returns nil, nil if no global config exists (not an error).
func LoadGlobalConfig() (*Config, error) {
	path := GlobalConfigPath()
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read global config: %w", err)
	}

	// Empty file is treated as no config
	if len(data) == 0 {
		return nil, nil
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse global config: %w", err)
	}

	return &cfg, nil
}

// SaveGlobalConfig saves the configuration to the global config file.
func SaveGlobalConfig(cfg *Config) error {
	dir := GlobalConfigDir()
	if dir == "" {
		return fmt.Errorf("cannot determine global config directory")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create global config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(GlobalConfigPath(), data, 0644); err != nil {
		return fmt.Errorf("failed to write global config: %w", err)
	}

	return nil
}

// MergeConfigs layers override on top of base. Zero values in override
// leave the base value in place. Neither argument is modified.
func MergeConfigs(base, override *Config) *Config {
	result := &Config{}
	if base != nil {
		*result = *base
		result.Database.Extensions = slices.Clone(base.Database.Extensions)
	}
	if override == nil {
		return result
	}

	if override.Version != 0 {
		result.Version = override.Version
	}

	if override.Database.Path != "" {
		result.Database.Path = override.Database.Path
	}
	if len(override.Database.Extensions) > 0 {
		result.Database.Extensions = slices.Clone(override.Database.Extensions)
	}
	if override.Database.MaxOpenConns != 0 {
		result.Database.MaxOpenConns = override.Database.MaxOpenConns
	}

	if override.Server.Host != "" {
		result.Server.Host = override.Server.Host
	}
	if override.Server.Port != 0 {
		result.Server.Port = override.Server.Port
	}
	if override.Server.LogLevel != "" {
		result.Server.LogLevel = override.Server.LogLevel
	}
	if override.Server.RequestTimeoutMs != 0 {
		result.Server.RequestTimeoutMs = override.Server.RequestTimeoutMs
	}

	if override.Output.Format != "" {
		result.Output.Format = override.Output.Format
	}

	return result
}

// Resolve builds the effective configuration for projectRoot: defaults,
// then the global file, then the project file, then PATHQ_* variables.
func Resolve(projectRoot string) (*Config, error) {
	global, err := LoadGlobalConfig()
	if err != nil {
		return nil, err
	}

	cfg := MergeConfigs(Default(), global)

	loader := NewLoader(projectRoot)
	if loader.Exists() {
		project, err := loader.Load()
		if err != nil {
			return nil, err
		}
		cfg = MergeConfigs(cfg, project)
	}
	return ApplyEnv(cfg)
}
