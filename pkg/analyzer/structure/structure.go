// Package structure reduces file records to a CodeStructureSummary.
package structure

import (
	"sort"

	"github.com/panbanda/waypoint/pkg/models"
	"github.com/panbanda/waypoint/pkg/stats"
)

// MaxLargestFiles is the length of the largest files ranking.
const MaxLargestFiles = 5

// Summarize aggregates records into totals, a per-extension breakdown,
// the largest files by line count and a complexity tier. It is pure:
// the same records always produce the same summary. Ties in the ranking
// keep encounter order.
func Summarize(records []models.FileRecord) models.CodeStructureSummary {
	s := models.CodeStructureSummary{
		ByExtension:  make(map[string]models.ExtensionStats),
		LargestFiles: []models.FileSize{},
	}

	lines := make([]int, 0, len(records))
	ranked := make([]models.FileSize, 0, len(records))
	for _, rec := range records {
		s.TotalFiles++
		s.TotalLines += rec.Lines
		s.TotalSize += rec.Size

		ext := rec.Ext
		if ext == "" {
			ext = "(none)"
		}
		es := s.ByExtension[ext]
		es.Count++
		es.Lines += rec.Lines
		s.ByExtension[ext] = es

		lines = append(lines, rec.Lines)
		ranked = append(ranked, models.FileSize{Path: rec.Path, Lines: rec.Lines, Size: rec.Size})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Lines > ranked[j].Lines
	})
	if len(ranked) > MaxLargestFiles {
		ranked = ranked[:MaxLargestFiles]
	}
	s.LargestFiles = ranked

	d := stats.Describe(lines)
	s.MeanLines = d.Mean
	s.StdDevLines = d.StdDev
	s.P90Lines = d.P90

	s.Complexity = models.ClassifyComplexity(s.TotalLines)
	return s
}

// Extensions returns the extensions of s ordered by descending file count,
// then by name.
func Extensions(s models.CodeStructureSummary) []string {
	exts := make([]string, 0, len(s.ByExtension))
	for ext := range s.ByExtension {
		exts = append(exts, ext)
	}
	sort.Slice(exts, func(i, j int) bool {
		a, b := s.ByExtension[exts[i]], s.ByExtension[exts[j]]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return exts[i] < exts[j]
	})
	return exts
}
