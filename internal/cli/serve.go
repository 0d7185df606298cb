package cli

import (
	"github.com/spf13/cobra"

	"github.com/asg017/sqlite-path/internal/server"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the path functions over HTTP",
	Long: `Start an HTTP server exposing the path functions.

Routes:
  GET  /health             liveness check
  GET  /version            build and SQLite host information
  POST /call               {"function": "path_basename", "args": ["a/b.txt"]}
  GET  /segments?path=...  segments of one path

The server stops on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Listen host (default: server.host from config)")
	serveCmd.Flags().IntVar(&servePort, "port", -1, "Listen port (default: server.port from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveHost != "" {
		cfg.Server.Host = serveHost
	}
	if servePort >= 0 {
		cfg.Server.Port = servePort
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg.Server.LogLevel)
	database, err := openDatabase(cfg, logger)
	if err != nil {
		return err
	}
	defer database.Close()

	srv := server.New(cfg.Server, database, logger)
	return srv.Run(commandContext(cmd))
}
