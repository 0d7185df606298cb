package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/asg017/sqlite-path/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [get|set] [key] [value]",
	Short: "View or modify configuration",
	Long: `View or modify the project configuration in .pathq/config.yaml.

Without arguments, displays the full configuration.
Use 'get <key>' to view a specific setting.
Use 'set <key> <value>' to modify a setting.

Keys use dot notation (e.g., server.port, database.path).
database.extensions takes a comma-separated list.`,
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	loader := config.NewLoader(projectRoot)

	// No args - show full config
	if len(args) == 0 {
		return showFullConfig(cmd, loader)
	}

	subcommand := args[0]

	switch subcommand {
	case "get":
		if len(args) < 2 {
			return fmt.Errorf("get requires a key argument")
		}
		return getConfigValue(cmd, loader, args[1])
	case "set":
		if len(args) < 2 {
			return fmt.Errorf("set requires a key argument")
		}
		if len(args) < 3 {
			return fmt.Errorf("set requires a value argument")
		}
		return setConfigValue(cmd, loader, args[1], args[2])
	default:
		return fmt.Errorf("unknown subcommand: %s", subcommand)
	}
}

func configFormatter(cmd *cobra.Command) *OutputFormatter {
	out := NewOutputFormatterWithWriters(cmd.OutOrStdout(), cmd.ErrOrStderr())
	out.format = FormatYAML
	if jsonOutput {
		out.format = FormatJSON
	}
	return out
}

func showFullConfig(cmd *cobra.Command, loader *config.Loader) error {
	cfg, err := loader.LoadOrDefault()
	if err != nil {
		return ErrConfigInvalid(err)
	}
	_, err = configFormatter(cmd).Structured(cfg)
	return err
}

func getConfigValue(cmd *cobra.Command, loader *config.Loader, key string) error {
	cfg, err := loader.LoadOrDefault()
	if err != nil {
		return ErrConfigInvalid(err)
	}

	value, err := getValueByKey(cfg, key)
	if err != nil {
		return err
	}

	out := configFormatter(cmd)
	if jsonOutput {
		return out.JSON(map[string]any{
			"key":   key,
			"value": value,
		})
	}

	// For nested structures, output as YAML
	switch v := value.(type) {
	case config.DatabaseConfig, config.ServerConfig, config.OutputConfig, []string:
		return out.YAML(v)
	default:
		out.Info("%v", value)
	}
	return nil
}

func setConfigValue(cmd *cobra.Command, loader *config.Loader, key, value string) error {
	cfg, err := loader.LoadOrDefault()
	if err != nil {
		return ErrConfigInvalid(err)
	}

	if err := setValueByKey(cfg, key, value); err != nil {
		return err
	}

	// Validate the updated config
	if validationErrs := config.Validate(cfg); validationErrs.HasErrors() {
		return validationErrs
	}

	if err := loader.Save(cfg); err != nil {
		return WrapError(err, "Failed to save config", "Check that .pathq/ is writable")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
	return nil
}

func unknownKey(parts []string) error {
	return fmt.Errorf("unknown key: %s", strings.Join(parts, "."))
}

func getValueByKey(cfg *config.Config, key string) (any, error) {
	parts := strings.Split(key, ".")

	switch parts[0] {
	case "version":
		if len(parts) > 1 {
			return nil, unknownKey(parts)
		}
		return cfg.Version, nil
	case "database":
		return getDatabaseValue(cfg, parts)
	case "server":
		return getServerValue(cfg, parts)
	case "output":
		return getOutputValue(cfg, parts)
	default:
		return nil, unknownKey(parts)
	}
}

func getDatabaseValue(cfg *config.Config, parts []string) (any, error) {
	if len(parts) == 1 {
		return cfg.Database, nil
	}
	switch parts[1] {
	case "path":
		return cfg.Database.Path, nil
	case "extensions":
		return cfg.Database.Extensions, nil
	case "max_open_conns":
		return cfg.Database.MaxOpenConns, nil
	default:
		return nil, unknownKey(parts)
	}
}

func getServerValue(cfg *config.Config, parts []string) (any, error) {
	if len(parts) == 1 {
		return cfg.Server, nil
	}
	switch parts[1] {
	case "host":
		return cfg.Server.Host, nil
	case "port":
		return cfg.Server.Port, nil
	case "log_level":
		return cfg.Server.LogLevel, nil
	case "request_timeout_ms":
		return cfg.Server.RequestTimeoutMs, nil
	default:
		return nil, unknownKey(parts)
	}
}

func getOutputValue(cfg *config.Config, parts []string) (any, error) {
	if len(parts) == 1 {
		return cfg.Output, nil
	}
	switch parts[1] {
	case "format":
		return cfg.Output.Format, nil
	default:
		return nil, unknownKey(parts)
	}
}

func setValueByKey(cfg *config.Config, key, value string) error {
	parts := strings.Split(key, ".")
	if len(parts) != 2 {
		return unknownKey(parts)
	}

	switch parts[0] {
	case "database":
		return setDatabaseValue(cfg, parts, value)
	case "server":
		return setServerValue(cfg, parts, value)
	case "output":
		if parts[1] != "format" {
			return unknownKey(parts)
		}
		cfg.Output.Format = value
		return nil
	default:
		return unknownKey(parts)
	}
}

func setDatabaseValue(cfg *config.Config, parts []string, value string) error {
	switch parts[1] {
	case "path":
		cfg.Database.Path = value
	case "extensions":
		cfg.Database.Extensions = []string{}
		for _, ext := range strings.Split(value, ",") {
			if ext = strings.TrimSpace(ext); ext != "" {
				cfg.Database.Extensions = append(cfg.Database.Extensions, ext)
			}
		}
	case "max_open_conns":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for database.max_open_conns: %s", value)
		}
		cfg.Database.MaxOpenConns = n
	default:
		return unknownKey(parts)
	}
	return nil
}

func setServerValue(cfg *config.Config, parts []string, value string) error {
	switch parts[1] {
	case "host":
		cfg.Server.Host = value
	case "port":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for server.port: %s", value)
		}
		cfg.Server.Port = port
	case "log_level":
		cfg.Server.LogLevel = value
	case "request_timeout_ms":
		ms, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for server.request_timeout_ms: %s", value)
		}
		cfg.Server.RequestTimeoutMs = ms
	default:
		return unknownKey(parts)
	}
	return nil
}
