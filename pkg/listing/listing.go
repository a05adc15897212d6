// Package listing renders a depth-bounded, human-readable view of a
// directory. It delegates to the external tree utility and falls back to
// a built-in walker when the utility is unavailable or fails.
package listing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/panbanda/waypoint/pkg/config"
)

// ignoredDirs are hidden from both the tree invocation and the fallback walker.
var ignoredDirs = []string{
	"node_modules", ".git", "dist", "build", "target", "vendor",
	"__pycache__", ".next", ".nuxt", "coverage", ".cache",
}

// ErrEmptyOutput is returned by the external runner when it produced nothing.
var ErrEmptyOutput = errors.New("listing command produced no output")

// Runner executes an external command and returns its standard output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs the command with os/exec.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Lister renders directory listings.
type Lister struct {
	command  string
	depth    int
	timeout  time.Duration
	maxLines int
	runner   Runner
	logger   *slog.Logger
}

// Option configures a Lister.
type Option func(*Lister)

// WithRunner replaces the external command runner.
func WithRunner(r Runner) Option {
	return func(l *Lister) {
		l.runner = r
	}
}

// WithLogger sets the logger used when the external utility fails.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Lister) {
		l.logger = logger
	}
}

// New creates a Lister from the listing section of cfg.
func New(cfg config.ListingConfig, opts ...Option) *Lister {
	l := &Lister{
		command:  cfg.Command,
		depth:    cfg.Depth,
		timeout:  time.Duration(cfg.TimeoutSeconds) * time.Second,
		maxLines: cfg.MaxLines,
		runner:   ExecRunner,
	}
	if l.depth < 1 {
		l.depth = 3
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = slog.New(slog.DiscardHandler)
	}
	return l
}

// Render returns the listing of path. It never fails: when the external
// utility cannot produce output the built-in walker is used instead.
func (l *Lister) Render(ctx context.Context, path string) string {
	out, err := l.external(ctx, path)
	if err != nil {
		l.logger.Debug("listing command failed, using fallback", "command", l.command, "path", path, "error", err)
		out = Walk(path, l.depth)
	}
	return truncateLines(out, l.maxLines)
}

func (l *Lister) external(ctx context.Context, path string) (string, error) {
	if l.command == "" {
		return "", fmt.Errorf("no listing command configured")
	}
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	args := []string{"-F", "-L", fmt.Sprint(l.depth), "-I", strings.Join(ignoredDirs, "|"), path}
	out, err := l.runner(ctx, l.command, args...)
	if err != nil {
		return "", fmt.Errorf("run %s: %w", l.command, err)
	}
	text := strings.TrimRight(string(out), "\n")
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyOutput
	}
	return text, nil
}

// Walk renders path in tree style without external tools. Directories
// are listed before files at each level, both in lexical order, and
// carry a trailing slash like tree -F.
func Walk(path string, depth int) string {
	var b strings.Builder
	b.WriteString(path)
	b.WriteByte('\n')

	skip := make(map[string]bool, len(ignoredDirs))
	for _, d := range ignoredDirs {
		skip[d] = true
	}

	var dirs, files int
	walkLevel(&b, path, "", 1, depth, skip, &dirs, &files)
	fmt.Fprintf(&b, "\n%d directories, %d files", dirs, files)
	return b.String()
}

func walkLevel(b *strings.Builder, dir, prefix string, level, depth int, skip map[string]bool, dirs, files *int) {
	if level > depth {
		return
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	var subdirs, regular []os.DirEntry
	for _, e := range entries {
		if e.IsDir() {
			if skip[e.Name()] {
				continue
			}
			subdirs = append(subdirs, e)
		} else {
			regular = append(regular, e)
		}
	}
	ordered := append(subdirs, regular...)

	for i, e := range ordered {
		last := i == len(ordered)-1
		branch, next := "├── ", "│   "
		if last {
			branch, next = "└── ", "    "
		}
		b.WriteString(prefix)
		b.WriteString(branch)
		b.WriteString(e.Name())
		if e.IsDir() {
			*dirs++
			b.WriteString("/\n")
			walkLevel(b, filepath.Join(dir, e.Name()), prefix+next, level+1, depth, skip, dirs, files)
			continue
		}
		*files++
		b.WriteByte('\n')
	}
}

func truncateLines(s string, max int) string {
	if max <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) <= max {
		return s
	}
	return strings.Join(lines[:max], "\n") + fmt.Sprintf("\n... (%d more lines)", len(lines)-max)
}
