package cli

import (
	"github.com/spf13/cobra"
)

var queryCmd = &cobra.Command{
	Use:   "query <sql> [args...]",
	Short: "Run SQL with the path functions loaded",
	Long: `Run a SQL statement against the configured database with every path
function registered. Extra arguments bind to ? placeholders as TEXT; the
literal NULL binds SQL NULL.

Examples:
  pathq query "SELECT path_extension(?)" report.tar.gz
  pathq query "SELECT segment FROM path_segments('/a/./b') WHERE type = 'normal'"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().SetInterspersed(false)
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	database, err := openDatabase(cfg, newLogger(cmd.ErrOrStderr(), cfg.Server.LogLevel))
	if err != nil {
		return err
	}
	defer database.Close()

	binds := make([]any, len(args)-1)
	for i, s := range args[1:] {
		if s == nullText {
			binds[i] = nil
		} else {
			binds[i] = s
		}
	}

	rs, err := database.Run(commandContext(cmd), args[0], binds...)
	if err != nil {
		return ErrQueryFailed(err)
	}

	out := formatterFor(cmd, cfg)
	if ok, err := out.Structured(rs); ok {
		return err
	}

	rows := make([][]string, len(rs.Rows))
	for i, row := range rs.Rows {
		rows[i] = make([]string, len(row))
		for j, v := range row {
			rows[i][j] = formatValue(v)
		}
	}
	out.Table(rs.Columns, rows)
	return nil
}
