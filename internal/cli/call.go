package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/asg017/sqlite-path/internal/db"
)

var callCmd = &cobra.Command{
	Use:   "call <function> [args...]",
	Short: "Evaluate one path function",
	Long: `Evaluate a single path function through SQLite and print the result.

Flags go before the function name. Arguments are passed as TEXT, except where the function takes an INTEGER
(path_segment_at's index). The literal NULL passes SQL NULL.

Examples:
  pathq call path_basename a/b.txt
  pathq call path_normalize '~/../a/b/./c/../ayoo'
  pathq call path_segment_at /home/oppenheimer/README.md -1
  pathq call path_join aa bbb cccc`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCall,
}

func init() {
	// Negative indexes such as -1 are arguments, not flags.
	callCmd.Flags().SetInterspersed(false)
	rootCmd.AddCommand(callCmd)
}

// CallResult is the JSON/YAML shape of `pathq call`.
type CallResult struct {
	Function string `json:"function" yaml:"function"`
	Args     []any  `json:"args" yaml:"args"`
	Result   any    `json:"result" yaml:"result"`
}

func runCall(cmd *cobra.Command, args []string) error {
	name := args[0]
	callArgs, err := parseCallArgs(name, args[1:])
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	database, err := openDatabase(cfg, newLogger(cmd.ErrOrStderr(), cfg.Server.LogLevel))
	if err != nil {
		return err
	}
	defer database.Close()

	result, err := database.Call(commandContext(cmd), name, callArgs...)
	if err != nil {
		return mapEvalError(name, err)
	}

	out := formatterFor(cmd, cfg)
	if ok, err := out.Structured(CallResult{Function: name, Args: callArgs, Result: result}); ok {
		return err
	}
	out.Info("%s", formatValue(result))
	return nil
}

// parseCallArgs converts command line strings to the function's parameter
// types.
func parseCallArgs(name string, raw []string) ([]any, error) {
	params, _, ok := db.Signature(name)
	if !ok {
		return nil, ErrUnknownFunction(name)
	}

	out := make([]any, len(raw))
	for i, s := range raw {
		if s == nullText {
			out[i] = nil
			continue
		}
		if len(params) > 0 && params[min(i, len(params)-1)] == "INTEGER" {
			n, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return nil, ErrInvalidArgument(fmt.Errorf("argument %d of %s must be an integer, got %q", i+1, name, s))
			}
			out[i] = n
			continue
		}
		out[i] = s
	}
	return out, nil
}

func mapEvalError(name string, err error) error {
	switch {
	case errors.Is(err, db.ErrUnknownFunction):
		return ErrUnknownFunction(name)
	case errors.Is(err, db.ErrArgumentType),
		errors.Is(err, db.ErrArity),
		errors.Is(err, db.ErrJoinArity):
		return ErrInvalidArgument(err)
	case errors.Is(err, db.ErrSegmentsUnavailable):
		return ErrSegmentsUnavailable()
	default:
		return ErrQueryFailed(err)
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
