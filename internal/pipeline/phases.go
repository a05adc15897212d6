package pipeline

import (
	"context"
	"os"
	"path/filepath"

	"github.com/panbanda/waypoint/internal/cache"
	"github.com/panbanda/waypoint/internal/report"
	"github.com/panbanda/waypoint/internal/vcs"
	"github.com/panbanda/waypoint/pkg/analyzer/heuristic"
	"github.com/panbanda/waypoint/pkg/analyzer/structure"
	"github.com/panbanda/waypoint/pkg/models"
)

func (s *Session) conceptual(t target) (report.Phase, error) {
	paths := s.scanner.FindKeyDocuments(t.resolved)
	docs := make([]models.KeyDocument, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			s.logger.Debug("read failed", "path", path, "error", err)
			continue
		}
		rel, err := filepath.Rel(t.resolved, path)
		if err != nil {
			rel = path
		}
		docs = append(docs, models.KeyDocument{
			Path:    filepath.ToSlash(rel),
			Name:    filepath.Base(path),
			Summary: report.SummaryLine(string(data), s.cfg.Report.SummaryWidth),
		})
	}
	return s.renderer.Conceptual(report.ConceptualInput{
		ProjectPath: t.root,
		Documents:   docs,
	})
}

func (s *Session) structural(ctx context.Context, t target) (report.Phase, error) {
	in := report.StructuralInput{
		ProjectPath: t.root,
		Marker:      t.marker,
		Listing:     s.lister.Render(ctx, t.root),
	}
	if info, err := vcs.Inspect(s.opener, t.root); err == nil {
		in.Git = info
	} else {
		s.logger.Debug("no git metadata", "path", t.root, "error", err)
	}
	return s.renderer.Structural(in)
}

func (s *Session) analysis(t target) (report.Phase, error) {
	records := s.scanner.ReadRecords(t.resolved, s.scanner.FindSourceFiles(t.resolved))

	insights := make([]heuristic.FileInsight, 0, len(records))
	hits := 0
	for _, rec := range records {
		fi, hit := s.insight(t.resolved, rec)
		if hit {
			hits++
		}
		insights = append(insights, fi)
	}
	if s.cache.Enabled() {
		s.logger.Debug("insight cache", "hits", hits, "files", len(records))
	}

	return s.renderer.Analysis(report.AnalysisInput{
		ProjectPath: t.root,
		Records:     records,
		Summary:     structure.Summarize(records),
		Result:      heuristic.Aggregate(insights),
	})
}

// insight analyzes one record, consulting the cache when enabled.
// Cache failures are treated as misses.
func (s *Session) insight(root string, rec models.FileRecord) (heuristic.FileInsight, bool) {
	if !s.cache.Enabled() {
		return s.analyzer.AnalyzeFile(rec), false
	}
	key := filepath.Join(root, filepath.FromSlash(rec.Path))
	hash := cache.HashContent(rec.Content)
	if fi, ok := s.cache.Get(key, hash); ok {
		fi.Path = rec.Path
		return fi, true
	}
	fi := s.analyzer.AnalyzeFile(rec)
	if err := s.cache.Put(key, hash, fi); err != nil {
		s.logger.Debug("cache write failed", "path", rec.Path, "error", err)
	}
	return fi, false
}
