package cli

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/asg017/sqlite-path/internal/db"
	"github.com/asg017/sqlite-path/internal/version"
)

// VersionInfo contains build information for the version command
type VersionInfo struct {
	Version       string `json:"version" yaml:"version"`
	Revision      string `json:"revision" yaml:"revision"`
	Date          string `json:"date" yaml:"date"`
	SQLiteVersion string `json:"sqlite_version" yaml:"sqlite_version"`
	GoVersion     string `json:"go_version" yaml:"go_version"`
	OS            string `json:"os" yaml:"os"`
	Arch          string `json:"arch" yaml:"arch"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version, source revision, build date, linked SQLite version, Go version, and platform.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := currentVersionInfo()

		out := formatterFor(cmd, nil)
		if ok, err := out.Structured(info); ok {
			return err
		}
		out.Info("pathq %s", info.Version)
		out.Info("  Revision:   %s", info.Revision)
		out.Info("  Built:      %s", info.Date)
		out.Info("  SQLite:     %s", info.SQLiteVersion)
		out.Info("  Go version: %s", info.GoVersion)
		out.Info("  OS/Arch:    %s/%s", info.OS, info.Arch)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func currentVersionInfo() VersionInfo {
	return VersionInfo{
		Version:       version.Tag(),
		Revision:      version.Revision,
		Date:          version.BuildDate,
		SQLiteVersion: db.LibraryVersion(),
		GoVersion:     runtime.Version(),
		OS:            runtime.GOOS,
		Arch:          runtime.GOARCH,
	}
}
