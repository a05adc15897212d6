package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NotNil(t, cfg)

	assert.Equal(t, 10, cfg.Scan.MaxDocDepth)
	assert.Equal(t, 10, cfg.Scan.MaxSourceDepth)
	assert.False(t, cfg.Exclude.Gitignore, "gitignore rules are opt-in")
	assert.Equal(t, "tree", cfg.Listing.Command)
	assert.Equal(t, 5, cfg.Report.MaxDocSummaries)
	assert.Equal(t, 3, cfg.Report.HistoryWindow)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.False(t, cfg.Output.Quiet)
	assert.NoError(t, cfg.Validate())
}

func TestLoadTOML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "waypoint.toml")

	content := `
[scan]
max_doc_depth = 4
extra_skip_dirs = ["generated"]

[listing]
command = "lsd"
depth = 2

[cache]
enabled = true

[output]
format = "json"
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Scan.MaxDocDepth)
	assert.Equal(t, 10, cfg.Scan.MaxSourceDepth, "unset keys keep defaults")
	assert.Equal(t, []string{"generated"}, cfg.Scan.ExtraSkipDirs)
	assert.Equal(t, "lsd", cfg.Listing.Command)
	assert.Equal(t, 2, cfg.Listing.Depth)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "json", cfg.Output.Format)
}

func TestLoadYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "waypoint.yaml")

	content := `
report:
  preview_min_lines: 10
  max_previews: 1
output:
  format: markdown
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Report.PreviewMinLines)
	assert.Equal(t, 1, cfg.Report.MaxPreviews)
	assert.Equal(t, "markdown", cfg.Output.Format)
}

func TestLoadJSON(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "waypoint.json")

	content := `{"exclude": {"gitignore": true, "patterns": ["*.gen.go"]}}`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.True(t, cfg.Exclude.Gitignore)
	assert.Equal(t, []string{"*.gen.go"}, cfg.Exclude.Patterns)
}

func TestLoadNonExistentFile(t *testing.T) {
	_, err := Load("/nonexistent/path/waypoint.toml")
	assert.Error(t, err)
}

func TestLoadInvalidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "waypoint.toml")
	require.NoError(t, os.WriteFile(configPath, []byte("[scan\ninvalid toml"), 0644))

	_, err := Load(configPath)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("WAYPOINT_QUIET", "true")
	t.Setenv("WAYPOINT_SCAN_MAX_SOURCE_DEPTH", "3")
	t.Setenv("WAYPOINT_CONFIG", "ignored.toml")

	result, err := LoadConfig(WithDir(t.TempDir()))
	require.NoError(t, err)
	assert.Empty(t, result.Source)
	assert.True(t, result.Config.Output.Quiet)
	assert.Equal(t, 3, result.Config.Scan.MaxSourceDepth)
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"WAYPOINT_QUIET":                   "output.quiet",
		"WAYPOINT_VERBOSE":                 "output.verbose",
		"WAYPOINT_LOG_LEVEL":               "output.log_level",
		"WAYPOINT_CONFIG":                  "",
		"WAYPOINT_LISTING_TIMEOUT_SECONDS": "listing.timeout_seconds",
		"WAYPOINT_UNKNOWN":                 "",
	}
	for in, want := range tests {
		assert.Equal(t, want, envKey(in), in)
	}
}

func TestLoadConfig_SearchesDotDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	dotDir := filepath.Join(tmpDir, ".waypoint")
	require.NoError(t, os.MkdirAll(dotDir, 0755))
	path := filepath.Join(dotDir, "waypoint.toml")
	require.NoError(t, os.WriteFile(path, []byte("[report]\nhistory_window = 7\n"), 0644))

	result, err := LoadConfig(WithDir(tmpDir))
	require.NoError(t, err)
	assert.Equal(t, path, result.Source)
	assert.Equal(t, 7, result.Config.Report.HistoryWindow)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "waypoint.toml")
	require.NoError(t, os.WriteFile(path, []byte("[listing]\ndepth = 0\n[output]\nformat = \"xml\"\n"), 0644))

	_, err := LoadConfig(WithPath(path))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listing.depth")
	assert.Contains(t, err.Error(), "output.format")
}

func TestValidate_LogLevel(t *testing.T) {
	for _, level := range []string{"", "debug", "INFO", "warn", "error"} {
		cfg := DefaultConfig()
		cfg.Output.LogLevel = level
		assert.NoError(t, cfg.Validate(), level)
	}
	cfg := DefaultConfig()
	cfg.Output.LogLevel = "loud"
	assert.ErrorContains(t, cfg.Validate(), "output.log_level")
}

func TestEnvLogLevel(t *testing.T) {
	t.Setenv("WAYPOINT_LOG_LEVEL", "debug")

	result, err := LoadConfig(WithDir(t.TempDir()))
	require.NoError(t, err)
	assert.Equal(t, "debug", result.Config.Output.LogLevel)
}

func TestValidate_CacheDirRequired(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cache.Enabled = true
	cfg.Cache.Dir = ""
	assert.Error(t, cfg.Validate())
}
