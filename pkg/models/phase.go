package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Phase identifies one of the analysis stages.
type Phase string

const (
	PhaseConceptual Phase = "conceptual"
	PhaseStructural Phase = "structural"
	PhaseAnalysis   Phase = "analysis"
	PhaseSynthesis  Phase = "synthesis"

	// PhaseAll runs every phase in canonical order followed by the comprehensive report.
	PhaseAll Phase = "all"
)

// ErrUnsupportedPhase is returned when a phase name is not recognized.
var ErrUnsupportedPhase = errors.New("unsupported phase")

// Phases returns the four analysis phases in canonical order.
func Phases() []Phase {
	return []Phase{PhaseConceptual, PhaseStructural, PhaseAnalysis, PhaseSynthesis}
}

// ParsePhase converts a user supplied phase name. An empty name selects PhaseAll.
func ParsePhase(s string) (Phase, error) {
	switch p := Phase(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PhaseAll, nil
	case PhaseConceptual, PhaseStructural, PhaseAnalysis, PhaseSynthesis, PhaseAll:
		return p, nil
	default:
		return "", &PhaseError{Name: s}
	}
}

// Next returns the suggested phase to run after p. The relation is advisory;
// nothing prevents phases from running out of order.
func (p Phase) Next() (Phase, bool) {
	switch p {
	case PhaseConceptual:
		return PhaseStructural, true
	case PhaseStructural:
		return PhaseAnalysis, true
	case PhaseAnalysis:
		return PhaseSynthesis, true
	default:
		return "", false
	}
}

// Title returns the display name used in report headings.
func (p Phase) Title() string {
	if p == "" {
		return ""
	}
	return strings.ToUpper(string(p[:1])) + string(p[1:])
}

// PhaseError reports an unrecognized phase name.
type PhaseError struct {
	Name string
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("unsupported phase %q (want conceptual, structural, analysis, synthesis or all)", e.Name)
}

func (e *PhaseError) Unwrap() error {
	return ErrUnsupportedPhase
}

// PhaseRecord is one entry of the analysis history. Records are immutable
// once appended.
type PhaseRecord struct {
	ProjectPath     string    `json:"project_path"`
	Phase           Phase     `json:"phase"`
	Findings        string    `json:"findings"`
	NextPhaseNeeded bool      `json:"next_phase_needed"`
	Timestamp       time.Time `json:"timestamp"`
}
