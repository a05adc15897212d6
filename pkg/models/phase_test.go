package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePhase(t *testing.T) {
	tests := []struct {
		in   string
		want Phase
	}{
		{"", PhaseAll},
		{"all", PhaseAll},
		{"conceptual", PhaseConceptual},
		{"Structural", PhaseStructural},
		{" ANALYSIS ", PhaseAnalysis},
		{"synthesis", PhaseSynthesis},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePhase(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePhase_Unsupported(t *testing.T) {
	_, err := ParsePhase("deploy")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedPhase))

	var pe *PhaseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "deploy", pe.Name)
	assert.Contains(t, err.Error(), `"deploy"`)
}

func TestPhaseNext(t *testing.T) {
	order := Phases()
	require.Len(t, order, 4)
	for i := 0; i < len(order)-1; i++ {
		next, ok := order[i].Next()
		assert.True(t, ok)
		assert.Equal(t, order[i+1], next)
	}
	_, ok := PhaseSynthesis.Next()
	assert.False(t, ok)
	_, ok = PhaseAll.Next()
	assert.False(t, ok)
}

func TestPhaseTitle(t *testing.T) {
	assert.Equal(t, "Conceptual", PhaseConceptual.Title())
	assert.Equal(t, "", Phase("").Title())
}

func TestClassifyComplexity(t *testing.T) {
	tests := []struct {
		lines int
		want  Complexity
	}{
		{0, ComplexityLow},
		{999, ComplexityLow},
		{1000, ComplexityMedium},
		{5000, ComplexityMedium},
		{5001, ComplexityHigh},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyComplexity(tt.lines), "lines=%d", tt.lines)
	}
}
