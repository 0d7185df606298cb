//go:build !windows

package server

import (
	"os"
	"syscall"
)

// ShutdownSignals returns the signals that stop `pathq serve`.
func ShutdownSignals() []os.Signal {
	return []os.Signal{syscall.SIGINT, syscall.SIGTERM}
}
