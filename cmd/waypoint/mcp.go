package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/panbanda/waypoint/internal/cache"
	"github.com/panbanda/waypoint/internal/mcpserver"
	"github.com/panbanda/waypoint/internal/pipeline"
)

func mcpCmd() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Start MCP (Model Context Protocol) server for LLM tool integration",
		Description: `Starts an MCP server over stdio exposing a single "analyze" tool.
The analysis history is kept for the lifetime of the server, so the
synthesis phase can recap phases run by earlier tool calls.

To use with Claude Desktop, add to your config:
  {
    "mcpServers": {
      "waypoint": {
        "command": "waypoint",
        "args": ["mcp"]
      }
    }
  }`,
		Action: runMCPCmd,
		Subcommands: []*cli.Command{
			{
				Name:   "manifest",
				Usage:  "Print the server.json registry manifest",
				Action: runMCPManifestCmd,
			},
		},
	}
}

func runMCPCmd(c *cli.Context) error {
	cfg, err := appConfig(c)
	if err != nil {
		return err
	}
	logger := appLogger(c)

	opts := []pipeline.Option{pipeline.WithLogger(logger)}
	if cfg.Cache.Enabled {
		ic, err := cache.New(cfg.Cache.Dir, cfg.Cache.TTL, true)
		if err != nil {
			logger.Warn("cache disabled", "dir", cfg.Cache.Dir, "error", err)
		} else {
			opts = append(opts, pipeline.WithCache(ic))
		}
	}

	session, err := pipeline.NewSession(cfg, opts...)
	if err != nil {
		return err
	}
	server, err := mcpserver.NewServer(version, session, mcpserver.WithLogger(logger))
	if err != nil {
		return err
	}
	logger.Info("mcp server starting", "version", version)
	return server.Run(c.Context)
}

func runMCPManifestCmd(c *cli.Context) error {
	data, err := mcpserver.GenerateManifest(version)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, string(data))
	return err
}
