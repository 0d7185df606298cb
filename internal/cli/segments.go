package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/asg017/sqlite-path/internal/api"
)

var segmentsCmd = &cobra.Command{
	Use:   "segments <path>",
	Short: "List the segments of a path",
	Long: `List every segment of a path with its position and kind, through the
path_segments table-valued function.

Kinds are normal, current (".") and back ("..").`,
	Args: cobra.ExactArgs(1),
	RunE: runSegments,
}

func init() {
	rootCmd.AddCommand(segmentsCmd)
}

func runSegments(cmd *cobra.Command, args []string) error {
	path := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	database, err := openDatabase(cfg, newLogger(cmd.ErrOrStderr(), cfg.Server.LogLevel))
	if err != nil {
		return err
	}
	defer database.Close()

	rows, err := database.Segments(commandContext(cmd), path)
	if err != nil {
		return mapEvalError("path_segments", err)
	}

	out := formatterFor(cmd, cfg)
	if ok, err := out.Structured(api.SegmentsResponse{Path: path, Segments: rows}); ok {
		return err
	}

	table := make([][]string, len(rows))
	for i, row := range rows {
		table[i] = []string{strconv.FormatInt(row.RowID, 10), row.Segment, row.Type}
	}
	out.Table([]string{"ROWID", "SEGMENT", "TYPE"}, table)
	return nil
}
