package main

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/panbanda/waypoint/internal/cache"
)

func cacheCmd() *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect or clear the per-file insight cache",
		Subcommands: []*cli.Command{
			{
				Name:   "stats",
				Usage:  "Show cache entry count and size",
				Action: runCacheStatsCmd,
			},
			{
				Name:   "clear",
				Usage:  "Remove every cached entry",
				Action: runCacheClearCmd,
			},
		},
	}
}

func openCache(c *cli.Context) (*cache.Cache, error) {
	cfg, err := appConfig(c)
	if err != nil {
		return nil, err
	}
	return cache.New(cfg.Cache.Dir, cfg.Cache.TTL, true)
}

func runCacheStatsCmd(c *cli.Context) error {
	ic, err := openCache(c)
	if err != nil {
		return err
	}
	stats, err := ic.GetStats()
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Entries: %d\nSize: %d bytes\n", stats.Entries, stats.TotalSize)
	if stats.Entries > 0 {
		fmt.Fprintf(c.App.Writer, "Oldest: %s\nNewest: %s\n", stats.OldestAge.Round(time.Second), stats.NewestAge.Round(time.Second))
	}
	return nil
}

func runCacheClearCmd(c *cli.Context) error {
	ic, err := openCache(c)
	if err != nil {
		return err
	}
	if err := ic.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, "Cache cleared")
	return nil
}
