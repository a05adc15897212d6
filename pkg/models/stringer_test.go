package models

import (
	"testing"
)

func TestStringerMethods(t *testing.T) {
	t.Run("Phase", func(t *testing.T) {
		if PhaseAnalysis.String() != "analysis" {
			t.Errorf("Phase.String() = %q, want %q", PhaseAnalysis.String(), "analysis")
		}
	})

	t.Run("ElementKind", func(t *testing.T) {
		if ElementArrowFunction.String() != "arrow_function" {
			t.Errorf("ElementKind.String() = %q, want %q", ElementArrowFunction.String(), "arrow_function")
		}
	})

	t.Run("Complexity", func(t *testing.T) {
		if ComplexityMedium.String() != "Medium" {
			t.Errorf("Complexity.String() = %q, want %q", ComplexityMedium.String(), "Medium")
		}
	})
}
