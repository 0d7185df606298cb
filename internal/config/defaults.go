package config

// MemoryPath is the SQLite path for a private in-memory database
const MemoryPath = ":memory:"

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Version: 1,
		Database: DatabaseConfig{
			Path:         MemoryPath,
			Extensions:   []string{},
			MaxOpenConns: 4,
		},
		Server: ServerConfig{
			Host:             "127.0.0.1",
			Port:             7474,
			LogLevel:         "info",
			RequestTimeoutMs: 30000,
		},
		Output: OutputConfig{
			Format: "table",
		},
	}
}
