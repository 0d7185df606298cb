package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/asg017/sqlite-path/internal/config"
	"github.com/asg017/sqlite-path/internal/db"
	"github.com/asg017/sqlite-path/internal/version"
)

// executeCommand runs rootCmd with args against projectDir and an isolated
// global config directory.
func executeCommand(t *testing.T, projectDir string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	origProjectRoot := projectRoot
	defer func() {
		projectRoot = origProjectRoot
		jsonOutput = false
		verbose = false
	}()
	jsonOutput = false
	verbose = false
	serveHost = ""
	servePort = -1

	var outBuf, errBuf bytes.Buffer
	rootCmd.SetOut(&outBuf)
	rootCmd.SetErr(&errBuf)
	rootCmd.SetArgs(append([]string{"--project", projectDir}, args...))
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func TestRootCommand(t *testing.T) {
	assert.Equal(t, "pathq", rootCmd.Use)
	assert.Contains(t, rootCmd.Short, "SQLite")
	assert.Equal(t, version.Tag(), rootCmd.Version)
}

func TestRootCommandFlags(t *testing.T) {
	jsonFlag := rootCmd.PersistentFlags().Lookup("json")
	require.NotNil(t, jsonFlag)
	assert.Equal(t, "false", jsonFlag.DefValue)

	verboseFlag := rootCmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)

	projectFlag := rootCmd.PersistentFlags().Lookup("project")
	require.NotNil(t, projectFlag)
	assert.Equal(t, "p", projectFlag.Shorthand)
}

func TestSubcommandsRegistered(t *testing.T) {
	registered := map[string]bool{}
	for _, cmd := range rootCmd.Commands() {
		registered[cmd.Name()] = true
	}
	for _, name := range []string{"call", "segments", "query", "serve", "functions", "version", "config", "init"} {
		assert.True(t, registered[name], "%s should be registered", name)
	}
}

// =============================================================================
// call
// =============================================================================

func TestParseCallArgs(t *testing.T) {
	args, err := parseCallArgs("path_segment_at", []string{"/a/b", "-1"})
	require.NoError(t, err)
	assert.Equal(t, []any{"/a/b", int64(-1)}, args)

	args, err = parseCallArgs("path_join", []string{"a", "NULL", "7"})
	require.NoError(t, err)
	assert.Equal(t, []any{"a", nil, "7"}, args)

	_, err = parseCallArgs("path_segment_at", []string{"/a/b", "last"})
	var cliErr *CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, "Invalid argument", cliErr.Message)

	_, err = parseCallArgs("path_nope", nil)
	require.ErrorAs(t, err, &cliErr)
	assert.Contains(t, cliErr.Message, "Unknown function: path_nope")
}

func TestCallCmd(t *testing.T) {
	tests := []struct {
		args     []string
		expected string
	}{
		{[]string{"path_basename", "a/b.txt"}, "b.txt\n"},
		{[]string{"path_dirname", "a"}, "NULL\n"},
		{[]string{"path_normalize", "~/../a/b/./c/../ayoo"}, "a/b/ayoo\n"},
		{[]string{"path_segment_at", "/home/oppenheimer/projects/manhattan/README.md", "-2"}, "manhattan\n"},
		{[]string{"path_absolute", "/a"}, "1\n"},
		{[]string{"path_join", "aa", "bbb", "cccc"}, "aa/bbb/cccc\n"},
		{[]string{"path_relative", "NULL"}, "NULL\n"},
		{[]string{"path_absolute", "NULL"}, "0\n"},
		{[]string{"path_segment_at", "a/b", "NULL"}, "NULL\n"},
		{[]string{"path_join", "NULL", "b"}, "NULL\n"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			stdout, _, err := executeCommand(t, t.TempDir(), append([]string{"call"}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, stdout)
		})
	}
}

func TestCallCmd_JSON(t *testing.T) {
	stdout, _, err := executeCommand(t, t.TempDir(), "call", "--json", "path_extension", "abc")
	require.NoError(t, err)

	var result CallResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, "path_extension", result.Function)
	assert.Nil(t, result.Result)
}

func TestCallCmd_Errors(t *testing.T) {
	_, _, err := executeCommand(t, t.TempDir(), "call", "path_join", "a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 2 paths are required for path_join")

	_, _, err = executeCommand(t, t.TempDir(), "call", "path_nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pathq functions")
}

// =============================================================================
// segments / query / functions
// =============================================================================

func TestSegmentsCmd(t *testing.T) {
	if len(db.Modules()) == 0 {
		t.Skip("built without sqlite_vtable")
	}

	stdout, _, err := executeCommand(t, t.TempDir(), "segments", "/home/root/.././.ssh/keys")
	require.NoError(t, err)
	assert.Contains(t, stdout, "ROWID")
	assert.Contains(t, stdout, ".ssh")
	assert.Contains(t, stdout, "back")

	stdout, _, err = executeCommand(t, t.TempDir(), "segments", "--json", "a/./b")
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"path": "a/./b",
		"segments": [
			{"rowid": 0, "segment": "a", "type": "normal"},
			{"rowid": 1, "segment": ".", "type": "current"},
			{"rowid": 2, "segment": "b", "type": "normal"}
		]
	}`, stdout)
}

func TestQueryCmd(t *testing.T) {
	stdout, _, err := executeCommand(t, t.TempDir(), "query",
		"SELECT path_extension(?) AS ext, path_root(?) AS root", "report.tar.gz", "NULL")
	require.NoError(t, err)
	assert.Contains(t, stdout, "ext")
	assert.Contains(t, stdout, ".gz")
	assert.Contains(t, stdout, "NULL")
}

func TestQueryCmd_YAMLFromConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Output.Format = FormatYAML
	require.NoError(t, config.NewLoader(dir).Save(cfg))

	stdout, _, err := executeCommand(t, dir, "query", "SELECT path_intersection('/this/is/a/test', '/this/is/a/ayoo/what') AS common")
	require.NoError(t, err)

	var rs db.ResultSet
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &rs))
	assert.Equal(t, []string{"common"}, rs.Columns)
	assert.Equal(t, [][]any{{"/this/is/a"}}, rs.Rows)
}

func TestQueryCmd_Error(t *testing.T) {
	_, _, err := executeCommand(t, t.TempDir(), "query", "SELECT path_nope('a')")
	var cliErr *CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, "Query failed", cliErr.Message)
}

func TestFunctionsCmd(t *testing.T) {
	stdout, _, err := executeCommand(t, t.TempDir(), "functions")
	require.NoError(t, err)
	assert.Contains(t, stdout, "path_join(TEXT, TEXT, ...)")
	assert.Contains(t, stdout, "path_segment_at(TEXT, INTEGER)")
	assert.Contains(t, stdout, "path_version()")

	stdout, _, err = executeCommand(t, t.TempDir(), "functions", "--json")
	require.NoError(t, err)
	var result FunctionsResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Len(t, result.Functions, len(db.Functions()))
}

// =============================================================================
// version / init
// =============================================================================

func TestVersionCmd(t *testing.T) {
	stdout, _, err := executeCommand(t, t.TempDir(), "version", "--json")
	require.NoError(t, err)

	var info VersionInfo
	require.NoError(t, json.Unmarshal([]byte(stdout), &info))
	assert.Equal(t, version.Tag(), info.Version)
	assert.NotEmpty(t, info.SQLiteVersion)
	assert.NotEmpty(t, info.GoVersion)
}

func TestInitCmd(t *testing.T) {
	dir := t.TempDir()

	stdout, _, err := executeCommand(t, dir, "init")
	require.NoError(t, err)
	assert.Contains(t, stdout, "[OK] Initialized pathq")
	assert.True(t, config.NewLoader(dir).Exists())

	_, stderr, err := executeCommand(t, dir, "init")
	require.NoError(t, err)
	assert.Contains(t, stderr, "already initialized")
}

func TestInitCmd_JSON(t *testing.T) {
	var out, errOut bytes.Buffer
	dir := t.TempDir()
	require.NoError(t, runInit(dir, &out, &errOut, true))

	var result InitResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, config.NewLoader(dir).ConfigPath(), result.ConfigPath)
	assert.NotEmpty(t, result.SQLiteVersion)
}

func TestInitCmd_NotADirectory(t *testing.T) {
	err := runInit("/definitely/not/here", &bytes.Buffer{}, &bytes.Buffer{}, false)
	require.Error(t, err)
}

// =============================================================================
// output helpers
// =============================================================================

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "NULL", formatValue(nil))
	assert.Equal(t, "abc", formatValue([]byte("abc")))
	assert.Equal(t, "42", formatValue(int64(42)))
	assert.Equal(t, "a/b", formatValue("a/b"))
}

func TestOutputFormatter_Table(t *testing.T) {
	var buf bytes.Buffer
	out := NewOutputFormatterWithWriters(&buf, &buf)
	out.Table([]string{"ROWID", "SEGMENT"}, [][]string{{"0", "home"}})

	assert.Equal(t, "ROWID  SEGMENT\n-----  -------\n0      home\n", buf.String())
}

func TestCLIError(t *testing.T) {
	err := ErrInvalidArgument(db.ErrJoinArity)
	assert.ErrorIs(t, err, db.ErrJoinArity)
	assert.Contains(t, err.Error(), "Invalid argument: at least 2 paths")
	assert.Contains(t, err.Error(), "\n\nSuggestion: ")

	bare := NewCLIError("boom", "")
	assert.Equal(t, "boom", bare.Error())
}
