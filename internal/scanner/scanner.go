package scanner

import (
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/panbanda/waypoint/pkg/config"
)

// docSkipDirs are never entered while looking for key documents.
var docSkipDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	"dist":         true,
	"build":        true,
}

// sourceSkipDirs are never entered while looking for source files.
var sourceSkipDirs = map[string]bool{
	"node_modules":  true,
	".git":          true,
	"dist":          true,
	"build":         true,
	"target":        true,
	"bin":           true,
	"obj":           true,
	"vendor":        true,
	".idea":         true,
	".vscode":       true,
	"__pycache__":   true,
	".pytest_cache": true,
	".next":         true,
	".nuxt":         true,
	"coverage":      true,
	".gradle":       true,
	".cache":        true,
}

// keyDocPatterns match the bare file name of onboarding documents.
var keyDocPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^readme`),
	regexp.MustCompile(`(?i)^architecture`),
	regexp.MustCompile(`(?i)^planning`),
	regexp.MustCompile(`(?i)^design`),
	regexp.MustCompile(`(?i)^prd`),
	regexp.MustCompile(`(?i)^contributing`),
	regexp.MustCompile(`(?i)^agents`),
	regexp.MustCompile(`(?i)^tasks`),
	regexp.MustCompile(`(?i)copilot-instructions`),
	regexp.MustCompile(`(?i)claude`),
}

// sourceExtensions is the allow-list of analyzed file extensions.
var sourceExtensions = map[string]bool{
	// web
	".js": true, ".jsx": true, ".ts": true, ".tsx": true, ".mjs": true, ".cjs": true,
	".vue": true, ".svelte": true,
	// backend
	".py": true, ".go": true, ".rs": true, ".java": true, ".kt": true, ".kts": true,
	".scala": true, ".cs": true, ".php": true, ".rb": true,
	// mobile
	".swift": true, ".dart": true,
	// native
	".c": true, ".cc": true, ".cpp": true, ".cxx": true, ".h": true, ".hpp": true,
	// functional
	".ex": true, ".exs": true, ".hs": true, ".clj": true,
	// scripting
	".lua": true, ".r": true, ".sh": true, ".bash": true,
	// data and config
	".sql": true, ".yaml": true, ".yml": true, ".toml": true, ".json": true,
}

// IsSourceFile reports whether the extension of path is on the allow-list.
func IsSourceFile(path string) bool {
	return sourceExtensions[strings.ToLower(filepath.Ext(path))]
}

// IsKeyDocument reports whether name is a markdown file matching a key document pattern.
func IsKeyDocument(name string) bool {
	if !strings.EqualFold(filepath.Ext(name), ".md") {
		return false
	}
	for _, re := range keyDocPatterns {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

// Scanner finds key documents and source files below a repository root.
// A Scanner is not modified after NewScanner and may be shared across goroutines.
type Scanner struct {
	config *config.Config
	logger *slog.Logger
}

// exclusion holds the exclude matchers of a single walk.
type exclusion []gitignore.Matcher

// Option configures a Scanner.
type Option func(*Scanner)

// WithLogger sets the logger used for swallowed filesystem errors.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) {
		s.logger = logger
	}
}

// NewScanner creates a new file scanner.
func NewScanner(cfg *config.Config, opts ...Option) *Scanner {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	s := &Scanner{config: cfg}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	return s
}

// FindKeyDocuments returns the key documents below root, in traversal order.
// Filesystem errors end the walk of the affected directory and are otherwise ignored.
func (s *Scanner) FindKeyDocuments(root string) []string {
	var docs []string
	s.walk(root, s.config.Scan.MaxDocDepth, docSkipDirs, nil, func(path string, entry os.DirEntry) {
		if IsKeyDocument(entry.Name()) {
			docs = append(docs, path)
		}
	})
	return docs
}

// FindSourceFiles returns the source files below root, in traversal order.
// Filesystem errors end the walk of the affected directory and are otherwise ignored.
func (s *Scanner) FindSourceFiles(root string) []string {
	excl := s.loadExcludePatterns(root)

	var files []string
	skip := sourceSkipDirs
	if len(s.config.Scan.ExtraSkipDirs) > 0 {
		skip = make(map[string]bool, len(sourceSkipDirs)+len(s.config.Scan.ExtraSkipDirs))
		for d := range sourceSkipDirs {
			skip[d] = true
		}
		for _, d := range s.config.Scan.ExtraSkipDirs {
			skip[d] = true
		}
	}

	s.walk(root, s.config.Scan.MaxSourceDepth, skip, excl, func(path string, entry os.DirEntry) {
		if !IsSourceFile(path) {
			return
		}
		if rel, err := filepath.Rel(root, path); err == nil && excl.match(rel, false) {
			return
		}
		files = append(files, path)
	})
	return files
}

// walk visits regular files up to maxDepth directory levels below root.
// Entries are visited in lexical order so results are deterministic.
func (s *Scanner) walk(root string, maxDepth int, skip map[string]bool, excl exclusion, visit func(string, os.DirEntry)) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		s.logger.Debug("resolve root failed", "root", root, "error", err)
		return
	}
	if resolved, err := filepath.EvalSymlinks(absRoot); err == nil {
		absRoot = resolved
	}
	s.walkDir(absRoot, absRoot, 0, maxDepth, skip, excl, visit)
}

func (s *Scanner) walkDir(root, dir string, depth, maxDepth int, skip map[string]bool, excl exclusion, visit func(string, os.DirEntry)) {
	if depth > maxDepth {
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		s.logger.Debug("read directory failed", "dir", dir, "error", err)
		return
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		if entry.Type()&os.ModeSymlink != 0 {
			// Symlinks are followed only for files that stay inside root.
			resolved, err := filepath.EvalSymlinks(path)
			if err != nil || !isWithinRoot(resolved, root) {
				continue
			}
			if info, err := os.Stat(resolved); err != nil || info.IsDir() {
				continue
			}
			visit(path, entry)
			continue
		}

		if entry.IsDir() {
			if skip[entry.Name()] {
				continue
			}
			if rel, err := filepath.Rel(root, path); err == nil && excl.match(rel, true) {
				continue
			}
			s.walkDir(root, path, depth+1, maxDepth, skip, excl, visit)
			continue
		}

		if entry.Type().IsRegular() {
			visit(path, entry)
		}
	}
}

// loadExcludePatterns loads exclusion patterns from both config and .gitignore files.
// Config patterns are parsed as gitignore patterns and combined with .gitignore files.
func (s *Scanner) loadExcludePatterns(root string) exclusion {
	var patterns []gitignore.Pattern

	for _, pattern := range s.config.Exclude.Patterns {
		patterns = append(patterns, gitignore.ParsePattern(pattern, nil))
	}

	if s.config.Exclude.Gitignore {
		fs := osfs.New(root)
		if gitPatterns, err := gitignore.ReadPatterns(fs, nil); err == nil {
			patterns = append(patterns, gitPatterns...)
		} else {
			s.logger.Debug("read .gitignore failed", "root", root, "error", err)
		}
	}

	if len(patterns) == 0 {
		return nil
	}
	return exclusion{gitignore.NewMatcher(patterns)}
}

// match checks if a path matches any exclusion pattern.
func (e exclusion) match(path string, isDir bool) bool {
	if len(e) == 0 {
		return false
	}

	pathParts := strings.Split(path, string(filepath.Separator))
	for _, m := range e {
		if m.Match(pathParts, isDir) {
			return true
		}
	}
	return false
}

// isWithinRoot checks if a path is contained within the root directory.
func isWithinRoot(path, root string) bool {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}

	absPath = filepath.Clean(absPath)
	root = filepath.Clean(root)

	// Add separator to prevent "/root2" matching "/root"
	return absPath == root || strings.HasPrefix(absPath, root+string(filepath.Separator))
}
