package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTag(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })

	Version = "1.2.3"
	assert.Equal(t, "v1.2.3", Tag())

	Version = "v1.2.3"
	assert.Equal(t, "v1.2.3", Tag())
}

func TestDebug_Layout(t *testing.T) {
	lines := strings.Split(Debug(), "\n")
	assert.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Version: v"))
	assert.True(t, strings.HasPrefix(lines[1], "Date: "))
	assert.True(t, strings.HasPrefix(lines[2], "Source: "))
}

func TestFillFromBuildInfo_UsesVCSData(t *testing.T) {
	origVersion, origRevision, origDate := Version, Revision, BuildDate
	t.Cleanup(func() {
		Version, Revision, BuildDate = origVersion, origRevision, origDate
	})

	Version, Revision, BuildDate = devVersion, "unknown", "unknown"
	fillFromBuildInfo("v0.4.0", map[string]string{
		"vcs.revision": "abc123",
		"vcs.modified": "true",
		"vcs.time":     "2024-05-01T10:00:00Z",
	})

	assert.Equal(t, "0.4.0", Version)
	assert.Equal(t, "abc123-dirty", Revision)
	assert.Equal(t, "2024-05-01T10:00:00Z", BuildDate)
}

func TestFillFromBuildInfo_KeepsLdflags(t *testing.T) {
	origVersion, origRevision, origDate := Version, Revision, BuildDate
	t.Cleanup(func() {
		Version, Revision, BuildDate = origVersion, origRevision, origDate
	})

	Version, Revision, BuildDate = "2.0.0", "deadbeef", "2023-01-01"
	fillFromBuildInfo("(devel)", map[string]string{
		"vcs.revision": "abc123",
		"vcs.time":     "2024-05-01T10:00:00Z",
	})

	assert.Equal(t, "2.0.0", Version)
	assert.Equal(t, "deadbeef", Revision)
	assert.Equal(t, "2023-01-01", BuildDate)
}
