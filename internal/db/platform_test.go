package db

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckPlatform(t *testing.T) {
	tests := []struct {
		goos, goarch string
		supported    bool
	}{
		{"linux", "amd64", true},
		{"linux", "arm64", true},
		{"darwin", "arm64", true},
		{"windows", "amd64", true},
		{"windows", "arm64", false},
		{"linux", "riscv64", false},
		{"plan9", "amd64", false},
	}

	for _, tt := range tests {
		t.Run(tt.goos+"/"+tt.goarch, func(t *testing.T) {
			err := CheckPlatform(tt.goos, tt.goarch)
			if tt.supported {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnsupportedPlatform))

			var platErr *PlatformError
			require.ErrorAs(t, err, &platErr)
			assert.Equal(t, tt.goos, platErr.OS)
			assert.Equal(t, tt.goarch, platErr.Arch)
			assert.Contains(t, err.Error(), tt.goos+"/"+tt.goarch)
		})
	}
}
