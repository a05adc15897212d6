package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/panbanda/waypoint/internal/logging"
	"github.com/panbanda/waypoint/pkg/config"
)

var (
	version = "dev"
	commit  = "none"    //nolint:unused // set via ldflags at build time
	date    = "unknown" //nolint:unused // set via ldflags at build time
)

const (
	metaConfig = "config"
	metaSource = "configSource"
	metaLogger = "logger"
	metaErr    = "configErr"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(os.Stdout, os.Stderr).RunContext(ctx, os.Args); err != nil {
		if errors.Is(err, errReported) {
			os.Exit(1)
		}
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "waypoint",
		Usage:     "Phased onboarding reports for unfamiliar codebases",
		Version:   version,
		Writer:    stdout,
		ErrWriter: stderr,
		Metadata:  make(map[string]interface{}),
		Description: `Waypoint reads a repository the way a new contributor would: key documents
first, then the directory layout, then the source itself, and finally a
synthesis of what it found. Analysis is heuristic and never executes code.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (TOML, YAML, or JSON)",
				EnvVars: []string{"WAYPOINT_CONFIG"},
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Log debug diagnostics to stderr",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Only log warnings and errors",
				EnvVars: []string{logging.QuietEnv},
			},
		},
		Before: func(c *cli.Context) error {
			cfg := config.DefaultConfig()
			result, err := loadConfig(c.String("config"))
			if err != nil {
				// config validate reports this itself; other commands fail in appConfig.
				c.App.Metadata[metaErr] = err
			} else {
				cfg = result.Config
				c.App.Metadata[metaSource] = result.Source
			}
			if c.IsSet("verbose") {
				cfg.Output.Verbose = c.Bool("verbose")
			}
			if c.IsSet("quiet") {
				cfg.Output.Quiet = c.Bool("quiet")
			}
			c.App.Metadata[metaConfig] = cfg
			c.App.Metadata[metaLogger] = logging.FromConfig(c.App.ErrWriter, cfg.Output)
			return nil
		},
		Commands: []*cli.Command{
			analyzeCmd(),
			statsCmd(),
			mcpCmd(),
			configCmd(),
			cacheCmd(),
		},
	}
}

func loadConfig(path string) (*config.LoadResult, error) {
	var opts []config.LoadOption
	if path != "" {
		opts = append(opts, config.WithPath(path))
	}
	result, err := config.LoadConfig(opts...)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return result, nil
}

// appConfig returns the configuration loaded in Before, or the error that
// prevented loading it.
func appConfig(c *cli.Context) (*config.Config, error) {
	if err, ok := c.App.Metadata[metaErr].(error); ok {
		return nil, err
	}
	if cfg, ok := c.App.Metadata[metaConfig].(*config.Config); ok {
		return cfg, nil
	}
	return config.DefaultConfig(), nil
}

// appLogger returns the logger built in Before.
func appLogger(c *cli.Context) *slog.Logger {
	if logger, ok := c.App.Metadata[metaLogger].(*slog.Logger); ok {
		return logger
	}
	return logging.NewDiscard()
}

// getPath returns the first positional argument, defaulting to ".".
func getPath(c *cli.Context) string {
	if c.Args().Len() > 0 {
		return c.Args().First()
	}
	return "."
}
