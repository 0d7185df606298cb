package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/asg017/sqlite-path/internal/db"
)

var functionsCmd = &cobra.Command{
	Use:   "functions",
	Short: "List the registered SQL functions",
	Long:  `List every scalar function and table-valued module pathq registers on a SQLite connection.`,
	Args:  cobra.NoArgs,
	RunE:  runFunctions,
}

func init() {
	rootCmd.AddCommand(functionsCmd)
}

// FunctionInfo describes one registered scalar function.
type FunctionInfo struct {
	Name     string   `json:"name" yaml:"name"`
	Params   []string `json:"params" yaml:"params"`
	Variadic bool     `json:"variadic" yaml:"variadic"`
}

// FunctionsResult is the JSON/YAML shape of `pathq functions`.
type FunctionsResult struct {
	Functions []FunctionInfo `json:"functions" yaml:"functions"`
	Modules   []string       `json:"modules" yaml:"modules"`
}

func listFunctions() FunctionsResult {
	result := FunctionsResult{Modules: db.Modules()}
	if result.Modules == nil {
		result.Modules = []string{}
	}
	for _, name := range db.Functions() {
		params, variadic, _ := db.Signature(name)
		result.Functions = append(result.Functions, FunctionInfo{Name: name, Params: params, Variadic: variadic})
	}
	return result
}

// signatureText renders e.g. "path_join(TEXT, TEXT, ...)".
func (f FunctionInfo) signatureText() string {
	params := strings.Join(f.Params, ", ")
	if f.Variadic {
		params += ", ..."
	}
	return f.Name + "(" + params + ")"
}

func runFunctions(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	result := listFunctions()

	out := formatterFor(cmd, cfg)
	if ok, err := out.Structured(result); ok {
		return err
	}

	rows := make([][]string, 0, len(result.Functions)+len(result.Modules))
	for _, fn := range result.Functions {
		rows = append(rows, []string{fn.signatureText(), "scalar"})
	}
	for _, m := range result.Modules {
		rows = append(rows, []string{m + "(TEXT)", "table"})
	}
	out.Table([]string{"FUNCTION", "KIND"}, rows)
	return nil
}
