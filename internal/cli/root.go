// Package cli implements the pathq command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/asg017/sqlite-path/internal/config"
	"github.com/asg017/sqlite-path/internal/db"
	"github.com/asg017/sqlite-path/internal/version"
)

var (
	jsonOutput  bool
	verbose     bool
	projectRoot string
)

var rootCmd = &cobra.Command{
	Use:   "pathq",
	Short: "pathq - path manipulation functions for SQLite",
	Long: `pathq exposes the sqlite-path engine: segmentation, normalization,
joining, classification, intersection and positional access over
unix-style path strings, registered as SQLite functions.

Use it to evaluate a single function, list the segments of a path,
run SQL against a database with the functions loaded, or serve
them over HTTP.`,
	Version:       version.Tag(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the CLI with ctx available to every command.
func ExecuteContext(ctx context.Context) error {
	rootCmd.Version = version.Tag()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&projectRoot, "project", "p", "", "Project root directory (default: current directory)")
	rootCmd.AddCommand(configCmd)
	cobra.OnInitialize(initProjectRoot)
}

func initProjectRoot() {
	if projectRoot == "" {
		var err error
		projectRoot, err = os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to get current directory: %v\n", err)
			os.Exit(1)
		}
	}
}

func GetProjectRoot() string {
	return projectRoot
}

func IsJSONOutput() bool {
	return jsonOutput
}

// loadConfig resolves defaults, the global config and the project config.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Resolve(GetProjectRoot())
	if err != nil {
		return nil, ErrConfigInvalid(err)
	}
	if err := config.ValidateOrError(cfg); err != nil {
		return nil, ErrConfigInvalid(err)
	}
	return cfg, nil
}

// newLogger writes to w through tint, without colour when w is not a
// terminal. --verbose forces debug level.
func newLogger(w io.Writer, level string) *slog.Logger {
	lvl := config.LogLevel(level)
	if verbose {
		lvl = slog.LevelDebug
	}
	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd())
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      lvl,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
		NoColor:    noColor,
	}))
}

// openDatabase opens the configured database with the path engine loaded.
func openDatabase(cfg *config.Config, logger *slog.Logger) (*db.DB, error) {
	database, err := db.Open(cfg.Database, db.WithLogger(logger))
	if err != nil {
		return nil, ErrDatabaseOpen(err)
	}
	return database, nil
}
