package structure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panbanda/waypoint/pkg/models"
)

func rec(path, ext string, lines int) models.FileRecord {
	return models.FileRecord{Path: path, Ext: ext, Lines: lines, Size: int64(lines * 10)}
}

func TestSummarize(t *testing.T) {
	records := []models.FileRecord{
		rec("a.js", ".js", 10),
		rec("b.js", ".js", 30),
		rec("c.py", ".py", 20),
		rec("Makefile", "", 5),
	}

	s := Summarize(records)

	assert.Equal(t, 4, s.TotalFiles)
	assert.Equal(t, 65, s.TotalLines)
	assert.Equal(t, int64(650), s.TotalSize)
	assert.Equal(t, models.ExtensionStats{Count: 2, Lines: 40}, s.ByExtension[".js"])
	assert.Equal(t, models.ExtensionStats{Count: 1, Lines: 20}, s.ByExtension[".py"])
	assert.Equal(t, models.ExtensionStats{Count: 1, Lines: 5}, s.ByExtension["(none)"])
	assert.Equal(t, models.ComplexityLow, s.Complexity)
	assert.InDelta(t, 16.25, s.MeanLines, 1e-9)
	assert.Greater(t, s.StdDevLines, 0.0)

	require.Len(t, s.LargestFiles, 4)
	assert.Equal(t, "b.js", s.LargestFiles[0].Path)
	assert.Equal(t, "c.py", s.LargestFiles[1].Path)
}

func TestSummarizeTopFiveStableTies(t *testing.T) {
	records := []models.FileRecord{
		rec("one", ".go", 50),
		rec("two", ".go", 100),
		rec("three", ".go", 50),
		rec("four", ".go", 50),
		rec("five", ".go", 50),
		rec("six", ".go", 50),
		rec("seven", ".go", 100),
	}

	s := Summarize(records)

	require.Len(t, s.LargestFiles, MaxLargestFiles)
	var got []string
	for _, f := range s.LargestFiles {
		got = append(got, f.Path)
	}
	assert.Equal(t, []string{"two", "seven", "one", "three", "four"}, got)
}

func TestSummarizeDeterministic(t *testing.T) {
	records := []models.FileRecord{
		rec("x.ts", ".ts", 300),
		rec("y.ts", ".ts", 300),
		rec("z.rs", ".rs", 700),
	}
	first := Summarize(records)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Summarize(records))
	}
}

func TestSummarizeComplexityBoundaries(t *testing.T) {
	tests := []struct {
		lines int
		want  models.Complexity
	}{
		{999, models.ComplexityLow},
		{1000, models.ComplexityMedium},
		{5000, models.ComplexityMedium},
		{5001, models.ComplexityHigh},
	}
	for _, tt := range tests {
		s := Summarize([]models.FileRecord{rec("f.go", ".go", tt.lines)})
		assert.Equal(t, tt.want, s.Complexity, "lines=%d", tt.lines)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.TotalFiles)
	assert.NotNil(t, s.ByExtension)
	assert.NotNil(t, s.LargestFiles)
	assert.Empty(t, s.LargestFiles)
	assert.Equal(t, models.ComplexityLow, s.Complexity)
	assert.Zero(t, s.StdDevLines)
}

func TestExtensions(t *testing.T) {
	s := Summarize([]models.FileRecord{
		rec("a.py", ".py", 1),
		rec("a.js", ".js", 1),
		rec("b.js", ".js", 1),
		rec("a.go", ".go", 1),
	})
	assert.Equal(t, []string{".js", ".go", ".py"}, Extensions(s))
}
