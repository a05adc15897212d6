package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/panbanda/waypoint/internal/cache"
	"github.com/panbanda/waypoint/internal/output"
	"github.com/panbanda/waypoint/internal/pipeline"
	"github.com/panbanda/waypoint/internal/progress"
	"github.com/panbanda/waypoint/pkg/config"
	"github.com/panbanda/waypoint/pkg/models"
)

// errReported marks a failure already written to the output.
var errReported = errors.New("analysis failed")

func formatFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format: text, json, markdown, toon",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Write output to file",
		},
	}
}

func analyzeCmd() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "Run one analysis phase, or all of them, against a project",
		ArgsUsage: "[path]",
		Description: `Phases run in this order: conceptual, structural, analysis, synthesis.
Without --phase every phase runs and a comprehensive report with an
executive summary and health indicators is produced.

The project root is found by walking up from path to the nearest
directory containing a marker file such as .git, package.json or go.mod.

Examples:
  waypoint analyze
  waypoint analyze ./services/api --phase structural
  waypoint analyze -f json -o report.json`,
		Flags: append(formatFlags(),
			&cli.StringFlag{
				Name:    "phase",
				Aliases: []string{"p"},
				Usage:   "Phase: conceptual, structural, analysis, synthesis, all",
				Value:   string(models.PhaseAll),
			},
			&cli.BoolFlag{
				Name:  "no-cache",
				Usage: "Disable the per-file insight cache",
			},
		),
		Action: runAnalyzeCmd,
	}
}

func runAnalyzeCmd(c *cli.Context) error {
	cfg, err := appConfig(c)
	if err != nil {
		return err
	}
	logger := appLogger(c)

	phase, err := models.ParsePhase(c.String("phase"))
	if err != nil {
		return err
	}

	format := output.ParseFormat(formatValue(c, cfg))
	opts := []pipeline.Option{pipeline.WithLogger(logger)}

	if cfg.Cache.Enabled && !c.Bool("no-cache") {
		ic, err := cache.New(cfg.Cache.Dir, cfg.Cache.TTL, true)
		if err != nil {
			logger.Warn("cache disabled", "dir", cfg.Cache.Dir, "error", err)
		} else {
			opts = append(opts, pipeline.WithCache(ic))
		}
	}

	var tracker *progress.Tracker
	if showProgress(c, cfg, format) {
		tracker = progress.ForPhase(c.App.ErrWriter, phase)
		opts = append(opts, pipeline.WithPhaseHook(tracker.PhaseDone))
	}

	session, err := pipeline.NewSession(cfg, opts...)
	if err != nil {
		return err
	}

	resp := session.Analyze(c.Context, pipeline.Request{
		ProjectPath: getPath(c),
		Phase:       string(phase),
	})
	if tracker != nil {
		if resp.IsError {
			tracker.FinishError(fmt.Errorf("%s", resp.Failure.Error))
		} else {
			tracker.FinishSuccess()
		}
	}

	formatter, err := newFormatter(c, cfg, format)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if resp.IsError {
		if err := formatter.Output(resp.Failure); err != nil {
			return err
		}
		return errReported
	}

	if err := formatter.Output(&output.Document{Body: resp.Envelope.Findings, Data: resp.Envelope}); err != nil {
		return err
	}
	if cfg.Output.Verbose {
		fmt.Fprintf(c.App.ErrWriter, "%s, %d phase(s) in history\n",
			output.Estimate(resp.Envelope.Findings, 0), resp.Envelope.AnalysisHistoryLength)
	}
	return nil
}

// formatValue prefers the command flag over the configured format.
func formatValue(c *cli.Context, cfg *config.Config) string {
	if c.IsSet("format") {
		return c.String("format")
	}
	return cfg.Output.Format
}

func newFormatter(c *cli.Context, cfg *config.Config, format output.Format) (*output.Formatter, error) {
	colored := cfg.Output.Color && !color.NoColor
	if path := c.String("output"); path != "" {
		return output.NewFormatter(format, path, false)
	}
	return output.NewWriterFormatter(format, c.App.Writer, colored), nil
}

// showProgress draws a bar only for interactive text output.
func showProgress(c *cli.Context, cfg *config.Config, format output.Format) bool {
	if cfg.Output.Quiet || cfg.Output.Verbose || color.NoColor {
		return false
	}
	return format == output.FormatText && c.String("output") == ""
}
