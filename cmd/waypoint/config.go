package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/pelletier/go-toml"
	"github.com/urfave/cli/v2"
)

func configCmd() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Subcommands: []*cli.Command{
			{
				Name:  "validate",
				Usage: "Validate a configuration file",
				Description: `Validates a waypoint configuration file for syntax errors and invalid values.

Examples:
  waypoint config validate                     # Validates default config locations
  waypoint -c waypoint.toml config validate    # Validates specific file`,
				Action: runConfigValidateCmd,
			},
			{
				Name:  "show",
				Usage: "Show the effective configuration",
				Description: `Shows the merged configuration from defaults, config file and
WAYPOINT_* environment variables, as TOML.`,
				Action: runConfigShowCmd,
			},
		},
	}
}

func runConfigValidateCmd(c *cli.Context) error {
	result, err := loadConfig(c.String("config"))
	if err != nil {
		color.New(color.FgRed).Fprintln(c.App.Writer, "Configuration validation failed:")
		fmt.Fprintf(c.App.Writer, "  - %s\n", err)
		return err
	}

	if result.Source != "" {
		color.New(color.FgGreen).Fprintf(c.App.Writer, "Configuration valid: %s\n", result.Source)
	} else {
		color.New(color.FgYellow).Fprintln(c.App.Writer, "No config file found. Default configuration is valid.")
	}
	return nil
}

func runConfigShowCmd(c *cli.Context) error {
	cfg, err := appConfig(c)
	if err != nil {
		return err
	}

	if source, _ := c.App.Metadata[metaSource].(string); source != "" {
		fmt.Fprintf(c.App.Writer, "# Configuration from: %s\n\n", source)
	} else {
		fmt.Fprintln(c.App.Writer, "# Default configuration (no config file found)")
	}

	content, err := toml.Marshal(*cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	_, err = fmt.Fprint(c.App.Writer, string(content))
	return err
}
