package report

import (
	"fmt"
	"strings"

	"github.com/panbanda/waypoint/pkg/models"
)

// maxSummaryTags caps the idiom and architecture tags named in the executive summary.
const maxSummaryTags = 5

// Indicator is one line of the health section.
type Indicator struct {
	Name   string
	Status string
}

type comprehensiveView struct {
	ProjectName string
	ProjectPath string
	Phases      []Phase
	Summary     []string
	Health      []Indicator
}

// Comprehensive concatenates the phase texts and derives an executive
// summary and health indicators from their merged Signals.
func (r *Renderer) Comprehensive(projectPath string, phases []Phase) (Phase, error) {
	var sig Signals
	for _, p := range phases {
		sig = sig.Merge(p.Signals)
	}

	text, err := r.execute("comprehensive.tmpl", comprehensiveView{
		ProjectName: projectName(projectPath),
		ProjectPath: projectPath,
		Phases:      phases,
		Summary:     ExecutiveSummary(sig),
		Health:      HealthIndicators(sig),
	})
	if err != nil {
		return Phase{}, err
	}
	return Phase{Name: models.PhaseAll, Text: text, Signals: sig}, nil
}

// ExecutiveSummary derives the summary bullet points from sig.
func ExecutiveSummary(sig Signals) []string {
	var out []string

	if sig.KeyDocuments == 0 {
		out = append(out, "No key documentation found; onboarding will rely on reading the code")
	} else {
		out = append(out, fmt.Sprintf("%d key document(s) available for onboarding", sig.KeyDocuments))
	}

	var kinds []string
	if sig.HasPackageJSON {
		kinds = append(kinds, "Node.js/JavaScript")
	}
	if sig.HasPython {
		kinds = append(kinds, "Python")
	}
	if sig.HasCargo {
		kinds = append(kinds, "Rust")
	}
	if sig.HasJVMBuild {
		kinds = append(kinds, "JVM")
	}
	if len(kinds) == 0 {
		out = append(out, "Project type could not be determined from the layout")
	} else {
		out = append(out, "Project type: "+strings.Join(kinds, ", "))
	}

	complexity := sig.Complexity
	if complexity == "" {
		complexity = models.ClassifyComplexity(sig.TotalLines)
	}
	out = append(out, fmt.Sprintf("%d source files, %d lines of code, %s complexity", sig.TotalFiles, sig.TotalLines, complexity))
	out = append(out, fmt.Sprintf("%d external dependencies, %d entry point(s)", sig.ExternalDeps, sig.EntryPoints))

	if len(sig.Idioms) > 0 {
		shown, _ := capList(sig.Idioms, maxSummaryTags)
		out = append(out, "Dominant idioms: "+strings.Join(shown, ", "))
	}
	if len(sig.Architecture) > 0 {
		shown, _ := capList(sig.Architecture, maxSummaryTags)
		out = append(out, "Architectural patterns: "+strings.Join(shown, ", "))
	}
	return out
}

// HealthIndicators grades documentation, testing, layout, size and entry points.
func HealthIndicators(sig Signals) []Indicator {
	docs := "Missing"
	switch {
	case sig.KeyDocuments >= 2:
		docs = "Good"
	case sig.KeyDocuments == 1:
		docs = "Minimal"
	}

	testing := "Not detected"
	if sig.HasTesting {
		testing = "Present"
	}

	layout := "Flat or custom layout"
	if sig.HasSrcDir {
		layout = "Conventional (src/ directory)"
	}

	complexity := sig.Complexity
	if complexity == "" {
		complexity = models.ClassifyComplexity(sig.TotalLines)
	}

	entries := "Not identified"
	if sig.EntryPoints > 0 {
		entries = fmt.Sprintf("Identified (%d)", sig.EntryPoints)
	}

	return []Indicator{
		{Name: "Documentation", Status: docs},
		{Name: "Testing", Status: testing},
		{Name: "Structure", Status: layout},
		{Name: "Complexity", Status: string(complexity)},
		{Name: "Entry Points", Status: entries},
	}
}
