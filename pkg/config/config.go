package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables that override config keys.
// WAYPOINT_SCAN_MAX_DOC_DEPTH maps to scan.max_doc_depth; WAYPOINT_QUIET and
// WAYPOINT_LOG_LEVEL map into the output section.
const EnvPrefix = "WAYPOINT_"

// Config holds all configuration options for waypoint.
type Config struct {
	// Directory traversal limits
	Scan ScanConfig `koanf:"scan" toml:"scan"`

	// File exclusion rules on top of the built-in skip lists
	Exclude ExcludeConfig `koanf:"exclude" toml:"exclude"`

	// Directory listing used by the structural phase
	Listing ListingConfig `koanf:"listing" toml:"listing"`

	// Report rendering limits
	Report ReportConfig `koanf:"report" toml:"report"`

	// Cache settings
	Cache CacheConfig `koanf:"cache" toml:"cache"`

	// Output settings
	Output OutputConfig `koanf:"output" toml:"output"`
}

// ScanConfig bounds the document and source walks.
type ScanConfig struct {
	MaxDocDepth    int      `koanf:"max_doc_depth" toml:"max_doc_depth"`
	MaxSourceDepth int      `koanf:"max_source_depth" toml:"max_source_depth"`
	ExtraSkipDirs  []string `koanf:"extra_skip_dirs" toml:"extra_skip_dirs"`
	MaxFileSize    int64    `koanf:"max_file_size" toml:"max_file_size"` // bytes, 0 = no limit
}

// ExcludeConfig defines optional gitignore-style exclusions.
type ExcludeConfig struct {
	Patterns  []string `koanf:"patterns" toml:"patterns"`
	Gitignore bool     `koanf:"gitignore" toml:"gitignore"`
}

// ListingConfig controls the external directory listing utility.
type ListingConfig struct {
	Command        string `koanf:"command" toml:"command"`
	Depth          int    `koanf:"depth" toml:"depth"`
	TimeoutSeconds int    `koanf:"timeout_seconds" toml:"timeout_seconds"`
	MaxLines       int    `koanf:"max_lines" toml:"max_lines"`
}

// ReportConfig limits how much of each section is rendered.
type ReportConfig struct {
	MaxDocSummaries  int `koanf:"max_doc_summaries" toml:"max_doc_summaries"`
	SummaryWidth     int `koanf:"summary_width" toml:"summary_width"`
	PreviewMinLines  int `koanf:"preview_min_lines" toml:"preview_min_lines"`
	MaxPreviews      int `koanf:"max_previews" toml:"max_previews"`
	PreviewLines     int `koanf:"preview_lines" toml:"preview_lines"`
	MaxListedItems   int `koanf:"max_listed_items" toml:"max_listed_items"`
	HistoryWindow    int `koanf:"history_window" toml:"history_window"`
	HistoryExcerpt   int `koanf:"history_excerpt" toml:"history_excerpt"`
	MaxMethodPreview int `koanf:"max_method_preview" toml:"max_method_preview"`
}

// CacheConfig controls caching of per-file insights.
type CacheConfig struct {
	Enabled bool   `koanf:"enabled" toml:"enabled"`
	Dir     string `koanf:"dir" toml:"dir"`
	TTL     int    `koanf:"ttl" toml:"ttl"` // TTL in hours
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format  string `koanf:"format" toml:"format"` // text, json, markdown, toon
	Color   bool   `koanf:"color" toml:"color"`
	Verbose bool   `koanf:"verbose" toml:"verbose"`
	Quiet   bool   `koanf:"quiet" toml:"quiet"` // suppress per-phase diagnostics, never findings

	// LogLevel applies when neither verbose nor quiet is set: debug, info, warn or error.
	LogLevel string `koanf:"log_level" toml:"log_level"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Scan: ScanConfig{
			MaxDocDepth:    10,
			MaxSourceDepth: 10,
		},
		Exclude: ExcludeConfig{
			Gitignore: false,
		},
		Listing: ListingConfig{
			Command:        "tree",
			Depth:          3,
			TimeoutSeconds: 10,
			MaxLines:       200,
		},
		Report: ReportConfig{
			MaxDocSummaries:  5,
			SummaryWidth:     150,
			PreviewMinLines:  50,
			MaxPreviews:      3,
			PreviewLines:     5,
			MaxListedItems:   20,
			HistoryWindow:    3,
			HistoryExcerpt:   200,
			MaxMethodPreview: 5,
		},
		Cache: CacheConfig{
			Enabled: false,
			Dir:     ".waypoint/cache",
			TTL:     24,
		},
		Output: OutputConfig{
			Format:  "text",
			Color:   true,
			Verbose: false,
			Quiet:   false,
		},
	}
}

// Validate reports configuration values that cannot work.
func (c *Config) Validate() error {
	var errs []error
	if c.Scan.MaxDocDepth < 0 {
		errs = append(errs, fmt.Errorf("scan.max_doc_depth must be >= 0 (got %d)", c.Scan.MaxDocDepth))
	}
	if c.Scan.MaxSourceDepth < 0 {
		errs = append(errs, fmt.Errorf("scan.max_source_depth must be >= 0 (got %d)", c.Scan.MaxSourceDepth))
	}
	if c.Listing.Depth < 1 {
		errs = append(errs, fmt.Errorf("listing.depth must be >= 1 (got %d)", c.Listing.Depth))
	}
	if c.Listing.TimeoutSeconds < 1 {
		errs = append(errs, fmt.Errorf("listing.timeout_seconds must be >= 1 (got %d)", c.Listing.TimeoutSeconds))
	}
	if c.Report.HistoryWindow < 0 {
		errs = append(errs, fmt.Errorf("report.history_window must be >= 0 (got %d)", c.Report.HistoryWindow))
	}
	switch strings.ToLower(c.Output.Format) {
	case "", "text", "json", "markdown", "md", "toon":
	default:
		errs = append(errs, fmt.Errorf("output.format %q is not one of text, json, markdown, toon", c.Output.Format))
	}
	switch strings.ToLower(strings.TrimSpace(c.Output.LogLevel)) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("output.log_level %q is not one of debug, info, warn, error", c.Output.LogLevel))
	}
	if c.Cache.Enabled && c.Cache.Dir == "" {
		errs = append(errs, errors.New("cache.dir is required when cache.enabled is true"))
	}
	return errors.Join(errs...)
}

// Load loads configuration from a file, then applies environment overrides.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
		return nil, err
	}
	if err := loadEnv(k); err != nil {
		return nil, err
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// parserFor picks a koanf parser from the file extension.
func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	case ".json":
		return json.Parser()
	default:
		return toml.Parser()
	}
}

func loadEnv(k *koanf.Koanf) error {
	return k.Load(env.Provider(EnvPrefix, ".", envKey), nil)
}

// envKey maps WAYPOINT_SECTION_SOME_KEY to section.some_key.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	switch key {
	case "config":
		return ""
	case "quiet", "verbose", "log_level":
		return "output." + key
	}
	section, rest, ok := strings.Cut(key, "_")
	if !ok {
		return ""
	}
	return section + "." + rest
}

// LoadResult contains the loaded configuration and its source.
type LoadResult struct {
	Config *Config
	Source string // empty when only defaults and environment were used
}

// LoadOption configures LoadConfig.
type LoadOption func(*loadOptions)

type loadOptions struct {
	path string
	dir  string
}

// WithPath loads an explicit config file instead of searching.
func WithPath(path string) LoadOption {
	return func(o *loadOptions) {
		o.path = path
	}
}

// WithDir searches for config files in dir instead of the working directory.
func WithDir(dir string) LoadOption {
	return func(o *loadOptions) {
		o.dir = dir
	}
}

// configNames are searched in order in the base directory and its .waypoint directory.
var configNames = []string{
	"waypoint.toml",
	"waypoint.yaml",
	"waypoint.yml",
	"waypoint.json",
	".waypoint.toml",
	".waypoint.yaml",
	".waypoint.yml",
	".waypoint.json",
}

// LoadConfig resolves, loads and validates configuration.
func LoadConfig(opts ...LoadOption) (*LoadResult, error) {
	o := &loadOptions{dir: "."}
	for _, opt := range opts {
		opt(o)
	}

	path := o.path
	if path == "" {
		path = findConfigFile(o.dir)
	}

	var cfg *Config
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		cfg = loaded
	} else {
		k := koanf.New(".")
		if err := loadEnv(k); err != nil {
			return nil, err
		}
		cfg = DefaultConfig()
		if err := k.Unmarshal("", cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &LoadResult{Config: cfg, Source: path}, nil
}

func findConfigFile(dir string) string {
	for _, d := range []string{dir, filepath.Join(dir, ".waypoint")} {
		for _, name := range configNames {
			path := filepath.Join(d, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}
	return ""
}
