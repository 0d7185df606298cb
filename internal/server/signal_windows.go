//go:build windows

package server

import (
	"os"
)

// ShutdownSignals returns the signals that stop `pathq serve`.
// Only os.Interrupt (Ctrl+C) is delivered reliably on Windows.
func ShutdownSignals() []os.Signal {
	return []os.Signal{os.Interrupt}
}
