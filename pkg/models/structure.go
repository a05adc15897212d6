package models

// Complexity is the coarse size tier of a codebase.
type Complexity string

const (
	ComplexityLow    Complexity = "Low"
	ComplexityMedium Complexity = "Medium"
	ComplexityHigh   Complexity = "High"
)

// Complexity tier boundaries in total lines of code.
const (
	MediumComplexityLines = 1000
	HighComplexityLines   = 5000
)

// ClassifyComplexity maps a total line count to a tier:
// below 1000 is Low, 1000 through 5000 is Medium, above 5000 is High.
func ClassifyComplexity(totalLines int) Complexity {
	switch {
	case totalLines < MediumComplexityLines:
		return ComplexityLow
	case totalLines <= HighComplexityLines:
		return ComplexityMedium
	default:
		return ComplexityHigh
	}
}

// ExtensionStats aggregates files sharing an extension.
type ExtensionStats struct {
	Count int `json:"count"`
	Lines int `json:"lines"`
}

// FileSize is an entry in the largest files ranking.
type FileSize struct {
	Path  string `json:"path"`
	Lines int    `json:"lines"`
	Size  int64  `json:"size"`
}

// CodeStructureSummary is the aggregate view over all analyzed files.
type CodeStructureSummary struct {
	TotalFiles   int                       `json:"total_files"`
	TotalLines   int                       `json:"total_lines"`
	TotalSize    int64                     `json:"total_size"`
	ByExtension  map[string]ExtensionStats `json:"by_extension"`
	LargestFiles []FileSize                `json:"largest_files"`
	Complexity   Complexity                `json:"complexity"`
	MeanLines    float64                   `json:"mean_lines"`
	StdDevLines  float64                   `json:"stddev_lines"`
	P90Lines     float64                   `json:"p90_lines"`
}
