package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/asg017/sqlite-path/internal/cli"
	"github.com/asg017/sqlite-path/internal/version"
)

// Set at build time via ldflags
var (
	buildVersion = ""
	commit       = ""
	date         = ""
)

func main() {
	if buildVersion != "" {
		version.Version = buildVersion
	}
	if commit != "" {
		version.Revision = commit
	}
	if date != "" {
		version.BuildDate = date
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
