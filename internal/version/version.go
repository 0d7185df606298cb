// Package version holds build metadata reported by path_version() and
// path_debug().
package version

import (
	"fmt"
	"runtime/debug"
	"strings"
)

const devVersion = "0.1.0"

// Set at build time via ldflags.
var (
	Version   = devVersion
	Revision  = "unknown"
	BuildDate = "unknown"
)

// fillFromBuildInfo replaces placeholder values with module and VCS data
// embedded by the Go toolchain.
func fillFromBuildInfo(mainVersion string, settings map[string]string) {
	if Version == devVersion || Version == "" {
		if mainVersion != "" && mainVersion != "(devel)" {
			Version = strings.TrimPrefix(mainVersion, "v")
		}
	}
	if Revision == "unknown" || Revision == "" {
		if rev := settings["vcs.revision"]; rev != "" {
			if settings["vcs.modified"] == "true" {
				rev += "-dirty"
			}
			Revision = rev
		}
	}
	if BuildDate == "unknown" || BuildDate == "" {
		if ts := settings["vcs.time"]; ts != "" {
			BuildDate = ts
		}
	}
}

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return
	}
	settings := make(map[string]string, len(info.Settings))
	for _, s := range info.Settings {
		settings[s.Key] = s.Value
	}
	fillFromBuildInfo(info.Main.Version, settings)
}

// Tag returns the version prefixed with "v", e.g. "v0.1.0".
func Tag() string {
	return "v" + strings.TrimPrefix(Version, "v")
}

// Debug returns the multi-line provenance block:
//
//	Version: v0.1.0
//	Date: 2024-01-01T00:00:00Z
//	Source: 5e23a4
func Debug() string {
	return fmt.Sprintf("Version: %s\nDate: %s\nSource: %s", Tag(), BuildDate, Revision)
}
