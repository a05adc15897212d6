package main

import (
	"fmt"
	"path/filepath"

	"github.com/urfave/cli/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/panbanda/waypoint/internal/output"
	"github.com/panbanda/waypoint/internal/scanner"
	"github.com/panbanda/waypoint/pkg/analyzer/structure"
	"github.com/panbanda/waypoint/pkg/repo"
)

func statsCmd() *cli.Command {
	return &cli.Command{
		Name:      "stats",
		Usage:     "Show file and line statistics by extension",
		ArgsUsage: "[path]",
		Flags:     formatFlags(),
		Action:    runStatsCmd,
	}
}

func runStatsCmd(c *cli.Context) error {
	cfg, err := appConfig(c)
	if err != nil {
		return err
	}
	root, err := filepath.Abs(repo.FindRoot(getPath(c)))
	if err != nil {
		return err
	}

	sc := scanner.NewScanner(cfg, scanner.WithLogger(appLogger(c)))
	records := sc.ReadRecords(root, sc.FindSourceFiles(root))
	summary := structure.Summarize(records)

	p := message.NewPrinter(language.English)
	rows := make([][]string, 0, len(summary.ByExtension))
	for _, ext := range structure.Extensions(summary) {
		st := summary.ByExtension[ext]
		rows = append(rows, []string{ext, p.Sprintf("%d", st.Count), p.Sprintf("%d", st.Lines)})
	}
	footer := []string{
		"Total",
		p.Sprintf("%d", summary.TotalFiles),
		p.Sprintf("%d", summary.TotalLines),
	}

	format := output.ParseFormat(formatValue(c, cfg))
	formatter, err := newFormatter(c, cfg, format)
	if err != nil {
		return err
	}
	defer formatter.Close()

	title := fmt.Sprintf("%s (complexity %s)", filepath.Base(root), summary.Complexity)
	table := output.NewTable(title, []string{"Extension", "Files", "Lines"}, rows, footer, summary)
	return formatter.Output(table)
}
