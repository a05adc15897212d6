// Package heuristic extracts dependencies, entry points, idiom and
// architecture tags and coarse code elements from source text using
// regular expressions. It never builds a syntax tree.
package heuristic

import (
	"fmt"
	"log/slog"

	"github.com/panbanda/waypoint/pkg/models"
)

// Analyzer runs the heuristic passes over file records.
type Analyzer struct {
	logger *slog.Logger
}

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithLogger sets the logger that receives recovered pass failures.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// New creates a new heuristic analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = slog.New(slog.DiscardHandler)
	}
	return a
}

// AnalyzeFile runs every pass over one record. A pass that panics
// contributes nothing and does not stop the remaining passes.
func (a *Analyzer) AnalyzeFile(rec models.FileRecord) FileInsight {
	fi := FileInsight{Path: rec.Path}
	if lang, ok := LookupLanguage(rec.Path); ok {
		fi.Language = lang.Name
	}

	a.guard("dependencies", rec.Path, func() {
		fi.Dependencies, fi.LocalImports = Dependencies(rec.Path, rec.Content)
	})
	a.guard("entry point", rec.Path, func() {
		fi.EntryPoint = IsEntryPoint(rec.Path, rec.Content)
	})
	a.guard("idioms", rec.Path, func() {
		fi.Idioms = Idioms(rec.Path, rec.Content)
	})
	a.guard("architecture", rec.Path, func() {
		fi.Architecture = Architecture(rec.Path, rec.Content)
	})
	a.guard("elements", rec.Path, func() {
		fi.Elements = Elements(rec.Path, rec.Content)
	})
	return fi
}

func (a *Analyzer) guard(pass, path string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Debug("heuristic pass failed", "pass", pass, "path", path, "panic", fmt.Sprint(r))
		}
	}()
	fn()
}

// Analyze runs every pass over records in order and aggregates the result.
func (a *Analyzer) Analyze(records []models.FileRecord) *Result {
	insights := make([]FileInsight, 0, len(records))
	for _, rec := range records {
		insights = append(insights, a.AnalyzeFile(rec))
	}
	return Aggregate(insights)
}

// Aggregate concatenates per-file insights. Lists of names are
// de-duplicated keeping the first occurrence; elements are not.
func Aggregate(insights []FileInsight) *Result {
	r := &Result{Files: insights, Elements: []models.CodeElement{}}
	ext, internal, entries := newOrderedSet(), newOrderedSet(), newOrderedSet()
	idioms, arch := newOrderedSet(), newOrderedSet()

	for _, fi := range insights {
		ext.add(fi.Dependencies...)
		internal.add(fi.LocalImports...)
		if fi.EntryPoint {
			entries.add(fi.Path)
		}
		idioms.add(fi.Idioms...)
		arch.add(fi.Architecture...)
		r.Elements = append(r.Elements, fi.Elements...)
	}

	r.ExternalDeps = ext.items
	r.InternalDeps = internal.items
	r.EntryPoints = entries.items
	r.Idioms = idioms.items
	r.Architecture = arch.items
	return r
}

type orderedSet struct {
	seen  map[string]bool
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]bool), items: []string{}}
}

func (s *orderedSet) add(vals ...string) {
	for _, v := range vals {
		if !s.seen[v] {
			s.seen[v] = true
			s.items = append(s.items, v)
		}
	}
}
