package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asg017/sqlite-path/internal/config"
)

// newTestProject creates a temporary project with a default config
func newTestProject(t *testing.T) (string, *config.Loader) {
	t.Helper()

	dir := t.TempDir()
	loader := config.NewLoader(dir)
	_, err := loader.Init()
	require.NoError(t, err)
	return dir, loader
}

func TestConfigCmd_ShowAll(t *testing.T) {
	dir, _ := newTestProject(t)

	stdout, _, err := executeCommand(t, dir, "config")
	require.NoError(t, err)
	assert.Contains(t, stdout, "database:")
	assert.Contains(t, stdout, "server:")
	assert.Contains(t, stdout, "7474")
}

func TestConfigCmd_ShowAllJSON(t *testing.T) {
	dir, _ := newTestProject(t)

	stdout, _, err := executeCommand(t, dir, "config", "--json")
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Contains(t, result, "database")
	assert.Contains(t, result, "output")
}

func TestConfigCmd_Get(t *testing.T) {
	dir, _ := newTestProject(t)

	tests := []struct {
		key      string
		expected string
	}{
		{"server.port", "7474\n"},
		{"server.log_level", "info\n"},
		{"database.path", ":memory:\n"},
		{"output.format", "table\n"},
		{"version", "1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			stdout, _, err := executeCommand(t, dir, "config", "get", tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, stdout)
		})
	}
}

func TestConfigCmd_GetSection(t *testing.T) {
	dir, _ := newTestProject(t)

	stdout, _, err := executeCommand(t, dir, "config", "get", "server")
	require.NoError(t, err)
	assert.Contains(t, stdout, "host: 127.0.0.1")
}

func TestConfigCmd_GetUnknown(t *testing.T) {
	dir, _ := newTestProject(t)

	_, _, err := executeCommand(t, dir, "config", "get", "daemon.port")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown key: daemon.port")
}

func TestConfigCmd_Set(t *testing.T) {
	dir, loader := newTestProject(t)

	stdout, _, err := executeCommand(t, dir, "config", "set", "server.port", "9000")
	require.NoError(t, err)
	assert.Equal(t, "Set server.port = 9000\n", stdout)

	_, _, err = executeCommand(t, dir, "config", "set", "database.extensions", "a.so, b.so")
	require.NoError(t, err)

	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, []string{"a.so", "b.so"}, cfg.Database.Extensions)
}

func TestConfigCmd_SetInvalid(t *testing.T) {
	dir, _ := newTestProject(t)

	_, _, err := executeCommand(t, dir, "config", "set", "server.port", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid integer value for server.port")

	_, _, err = executeCommand(t, dir, "config", "set", "output.format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output.format")

	_, _, err = executeCommand(t, dir, "config", "set", "server.port")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "set requires a value argument")
}
