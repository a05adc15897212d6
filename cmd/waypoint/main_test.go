package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/panbanda/waypoint/internal/pipeline"
	"github.com/panbanda/waypoint/pkg/models"
)

func writeProject(t *testing.T) string {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	files := map[string]string{
		"package.json": `{"name": "demo"}`,
		"README.md":    "# Demo\n\nA tiny express demo server app.\n",
		"src/index.js": "const express = require('express');\nconst app = express();\napp.listen(3000);\n",
	}
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func runApp(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("WAYPOINT_CONFIG", "")
	var stdout, stderr bytes.Buffer
	err := newApp(&stdout, &stderr).Run(append([]string{"waypoint"}, args...))
	return stdout.String(), stderr.String(), err
}

func TestGetPath(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no args defaults to current dir", nil, "."},
		{"single path", []string{"/foo/bar"}, "/foo/bar"},
		{"first path wins", []string{"/foo", "/bar"}, "/foo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			app := &cli.App{Action: func(c *cli.Context) error {
				got = getPath(c)
				return nil
			}}
			require.NoError(t, app.Run(append([]string{"test"}, tt.args...)))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAnalyzeJSON(t *testing.T) {
	root := writeProject(t)

	stdout, _, err := runApp(t, "analyze", "-f", "json", root)
	require.NoError(t, err)

	var env pipeline.Envelope
	require.NoError(t, json.Unmarshal([]byte(stdout), &env))
	assert.Equal(t, "all", env.Phase)
	assert.Equal(t, root, env.ProjectPath)
	assert.Equal(t, []string{"conceptual", "structural", "analysis", "synthesis"}, env.CompletedPhases)
	assert.Contains(t, env.Findings, "Executive Summary")
}

func TestAnalyzeSinglePhaseMarkdown(t *testing.T) {
	root := writeProject(t)

	stdout, _, err := runApp(t, "analyze", "--phase", "conceptual", "-f", "markdown", root)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "# Conceptual Analysis"), stdout)
	assert.Contains(t, stdout, "Key Documents Found: 1")
}

func TestAnalyzeToFile(t *testing.T) {
	root := writeProject(t)
	out := filepath.Join(t.TempDir(), "report.md")

	stdout, _, err := runApp(t, "analyze", "-p", "analysis", "-f", "md", "-o", out, root)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Express.js")
}

func TestAnalyzeFailures(t *testing.T) {
	root := writeProject(t)

	_, _, err := runApp(t, "analyze", "--phase", "deploy", root)
	assert.ErrorIs(t, err, models.ErrUnsupportedPhase)

	stdout, _, err := runApp(t, "analyze", "-f", "json", filepath.Join(root, "missing"))
	assert.ErrorIs(t, err, errReported)
	var failure pipeline.Failure
	require.NoError(t, json.Unmarshal([]byte(stdout), &failure))
	assert.Equal(t, "failed", failure.Status)
}

func TestAnalyzeVerboseLogsToStderr(t *testing.T) {
	root := writeProject(t)

	stdout, stderr, err := runApp(t, "--verbose", "analyze", "-p", "conceptual", "-f", "md", root)
	require.NoError(t, err)
	assert.NotContains(t, stdout, "phase complete")
	assert.Contains(t, stderr, "phase complete")
	assert.Contains(t, stderr, "tokens")

	quietOut, quietErr, err := runApp(t, "--quiet", "analyze", "-p", "conceptual", "-f", "md", root)
	require.NoError(t, err)
	assert.Equal(t, stdout, quietOut)
	assert.NotContains(t, quietErr, "phase complete")
}

func TestStatsJSON(t *testing.T) {
	root := writeProject(t)

	stdout, _, err := runApp(t, "stats", "-f", "json", root)
	require.NoError(t, err)

	var summary models.CodeStructureSummary
	require.NoError(t, json.Unmarshal([]byte(stdout), &summary))
	assert.Equal(t, 2, summary.TotalFiles)
	assert.Equal(t, models.ComplexityLow, summary.Complexity)
	assert.Equal(t, 1, summary.ByExtension[".js"].Count)
}

func TestConfigShowAndValidate(t *testing.T) {
	stdout, _, err := runApp(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "[listing]")
	assert.Contains(t, stdout, "tree")

	dir := t.TempDir()
	good := filepath.Join(dir, "waypoint.toml")
	require.NoError(t, os.WriteFile(good, []byte("[listing]\ndepth = 2\n"), 0o644))
	stdout, _, err = runApp(t, "-c", good, "config", "validate")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Configuration valid")

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[listing]\ndepth = 0\n"), 0o644))
	stdout, _, err = runApp(t, "-c", bad, "config", "validate")
	require.Error(t, err)
	assert.Contains(t, stdout, "listing.depth")

	_, _, err = runApp(t, "-c", bad, "stats", ".")
	assert.Error(t, err)
}

func TestMCPManifest(t *testing.T) {
	stdout, _, err := runApp(t, "mcp", "manifest")
	require.NoError(t, err)

	var manifest map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &manifest))
	assert.Equal(t, "io.github.panbanda/waypoint", manifest["name"])
}

func TestCacheCommands(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "waypoint.toml")
	cacheDir := filepath.Join(dir, "cache")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[cache]\nenabled = true\ndir = \""+filepath.ToSlash(cacheDir)+"\"\n"), 0o644))
	root := writeProject(t)

	_, _, err := runApp(t, "-c", cfgPath, "analyze", "-p", "analysis", "-f", "json", root)
	require.NoError(t, err)

	stdout, _, err := runApp(t, "-c", cfgPath, "cache", "stats")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Entries: 2")

	stdout, _, err = runApp(t, "-c", cfgPath, "cache", "clear")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Cache cleared")
	_, err = os.Stat(cacheDir)
	assert.True(t, os.IsNotExist(err))
}
