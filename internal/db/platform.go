package db

import "slices"

// supportedPlatforms lists the OS/architecture pairs the cgo SQLite
// bindings are built and tested for.
var supportedPlatforms = map[string][]string{
	"linux":   {"amd64", "arm64"},
	"darwin":  {"amd64", "arm64"},
	"windows": {"amd64"},
}

// CheckPlatform returns a *PlatformError when goos/goarch has no supported
// build. It never inspects paths.
func CheckPlatform(goos, goarch string) error {
	if slices.Contains(supportedPlatforms[goos], goarch) {
		return nil
	}
	return &PlatformError{OS: goos, Arch: goarch}
}
