package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/asg017/sqlite-path/internal/config"
)

const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// nullText is how SQL NULL is shown in table output and accepted as an argument.
const nullText = "NULL"

// OutputFormatter handles formatted output to the console
type OutputFormatter struct {
	out    io.Writer
	errOut io.Writer
	format string
}

// NewOutputFormatter creates a new OutputFormatter with default stdout/stderr
func NewOutputFormatter() *OutputFormatter {
	return &OutputFormatter{
		out:    os.Stdout,
		errOut: os.Stderr,
		format: FormatTable,
	}
}

// NewOutputFormatterWithWriters creates an OutputFormatter with custom writers
func NewOutputFormatterWithWriters(out, errOut io.Writer) *OutputFormatter {
	return &OutputFormatter{
		out:    out,
		errOut: errOut,
		format: FormatTable,
	}
}

// formatterFor builds a formatter on the command's writers. --json wins over
// the configured output.format.
func formatterFor(cmd *cobra.Command, cfg *config.Config) *OutputFormatter {
	o := NewOutputFormatterWithWriters(cmd.OutOrStdout(), cmd.ErrOrStderr())
	if cfg != nil && cfg.Output.Format != "" {
		o.format = cfg.Output.Format
	}
	if jsonOutput {
		o.format = FormatJSON
	}
	return o
}

// Format returns the active output format.
func (o *OutputFormatter) Format() string {
	return o.format
}

// Success prints a success message with a checkmark prefix
func (o *OutputFormatter) Success(format string, args ...any) {
	fmt.Fprintf(o.out, "[OK] %s\n", fmt.Sprintf(format, args...))
}

// Info prints an informational message
func (o *OutputFormatter) Info(format string, args ...any) {
	fmt.Fprintf(o.out, "%s\n", fmt.Sprintf(format, args...))
}

// Warn prints a warning message with a warning prefix
func (o *OutputFormatter) Warn(format string, args ...any) {
	fmt.Fprintf(o.errOut, "[WARN] %s\n", fmt.Sprintf(format, args...))
}

// JSON outputs data as formatted JSON
func (o *OutputFormatter) JSON(data any) error {
	encoder := json.NewEncoder(o.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// YAML outputs data as YAML
func (o *OutputFormatter) YAML(data any) error {
	encoder := yaml.NewEncoder(o.out)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return err
	}
	return encoder.Close()
}

// Structured writes data as JSON or YAML and reports whether it did; table
// output is left to the caller.
func (o *OutputFormatter) Structured(data any) (bool, error) {
	switch o.format {
	case FormatJSON:
		return true, o.JSON(data)
	case FormatYAML:
		return true, o.YAML(data)
	default:
		return false, nil
	}
}

// Table prints data in a tabular format
// headers is a slice of column headers
// rows is a slice of row data, where each row is a slice of strings
func (o *OutputFormatter) Table(headers []string, rows [][]string) {
	w := tabwriter.NewWriter(o.out, 0, 0, 2, ' ', 0)

	// Print headers
	if len(headers) > 0 {
		fmt.Fprintln(w, strings.Join(headers, "\t"))
		separators := make([]string, len(headers))
		for i, h := range headers {
			separators[i] = strings.Repeat("-", len(h))
		}
		fmt.Fprintln(w, strings.Join(separators, "\t"))
	}

	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}

	w.Flush()
}

// formatValue renders one SQL value for table output.
func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return nullText
	case []byte:
		return string(x)
	default:
		return fmt.Sprint(x)
	}
}
