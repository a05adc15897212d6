// Package repo resolves the repository root that owns a path.
package repo

import (
	"os"
	"path/filepath"
)

// Markers are checked in order at every directory level. The order only
// decides which marker is reported when a directory holds several of them;
// it never ranks markers across directories.
var Markers = []string{
	".git",
	"package.json",
	"pyproject.toml",
	"Cargo.toml",
	"pom.xml",
	"build.gradle",
	"go.mod",
	"composer.json",
	"Gemfile",
	".gitignore",
	"README.md",
}

// FindRoot returns the nearest ancestor of start (inclusive) containing any
// marker. If no directory up to the filesystem root qualifies, start is
// returned unchanged.
func FindRoot(start string) string {
	root, _ := FindRootWithMarker(start)
	return root
}

// FindRootWithMarker is FindRoot that also reports the marker that matched.
// The marker is empty when nothing was found.
func FindRootWithMarker(start string) (string, string) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return start, ""
	}

	dir := abs
	if info, err := os.Stat(abs); err == nil && !info.IsDir() {
		dir = filepath.Dir(abs)
	}

	for {
		if marker := markerIn(dir); marker != "" {
			return dir, marker
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return start, ""
		}
		dir = parent
	}
}

func markerIn(dir string) string {
	for _, m := range Markers {
		if _, err := os.Stat(filepath.Join(dir, m)); err == nil {
			return m
		}
	}
	return ""
}
