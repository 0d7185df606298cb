package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/asg017/sqlite-path/internal/config"
	"github.com/asg017/sqlite-path/internal/db"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize pathq in the current project",
	Long: `Initialize pathq by creating a .pathq directory with a default
config.yaml, then check that the path engine loads into SQLite.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInit(GetProjectRoot(), cmd.OutOrStdout(), cmd.ErrOrStderr(), IsJSONOutput())
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

// InitResult represents the result of an init operation for JSON output
type InitResult struct {
	Success       bool   `json:"success"`
	ProjectRoot   string `json:"project_root"`
	ConfigPath    string `json:"config_path"`
	SQLiteVersion string `json:"sqlite_version,omitempty"`
	Message       string `json:"message,omitempty"`
}

// runInit performs the initialization logic
// projectRoot is the directory to initialize pathq in
// jsonOutput controls whether output is in JSON format
func runInit(projectRoot string, stdout, stderr io.Writer, jsonOutput bool) error {
	out := NewOutputFormatterWithWriters(stdout, stderr)

	info, err := os.Stat(projectRoot)
	if err != nil {
		return fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", projectRoot)
	}

	loader := config.NewLoader(projectRoot)
	if loader.Exists() {
		msg := fmt.Sprintf("pathq already initialized at %s", loader.ProjectDirPath())
		if jsonOutput {
			return out.JSON(InitResult{
				Success:     false,
				ProjectRoot: projectRoot,
				ConfigPath:  loader.ConfigPath(),
				Message:     msg,
			})
		}
		out.Warn("%s", msg)
		return nil
	}

	cfg, err := loader.Init()
	if err != nil {
		return WrapError(err, "Failed to create config", "Check that the project directory is writable")
	}

	// Check the engine loads with the new config
	database, err := db.Open(cfg.Database)
	if err != nil {
		return ErrDatabaseOpen(err)
	}
	defer database.Close()

	host, err := database.HostInfo(context.Background())
	if err != nil {
		return ErrDatabaseOpen(err)
	}

	if jsonOutput {
		return out.JSON(InitResult{
			Success:       true,
			ProjectRoot:   projectRoot,
			ConfigPath:    loader.ConfigPath(),
			SQLiteVersion: host.SQLiteVersion,
			Message:       "Initialized pathq successfully",
		})
	}

	out.Success("Initialized pathq in %s (SQLite %s)", loader.ProjectDirPath(), host.SQLiteVersion)
	return nil
}
