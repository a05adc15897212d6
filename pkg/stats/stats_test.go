package stats

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      int
		want   float64
	}{
		{"empty", nil, 90, 0},
		{"single", []float64{7}, 90, 7},
		{"p90 of ten", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 90, 10},
		{"p50 of ten", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 50, 6},
		{"p100 clamps", []float64{1, 2}, 100, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Percentile(tt.sorted, tt.p); got != tt.want {
				t.Errorf("Percentile(%v, %d) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	if d := Describe(nil); d != (Distribution{}) {
		t.Errorf("Describe(nil) = %+v, want zero", d)
	}

	d := Describe([]int{42})
	if d.Mean != 42 || d.StdDev != 0 || d.P90 != 42 {
		t.Errorf("Describe([42]) = %+v", d)
	}

	d = Describe([]int{2, 4, 4, 4, 5, 5, 7, 9})
	if d.Mean != 5 {
		t.Errorf("Mean = %v, want 5", d.Mean)
	}
	// Sample standard deviation of the classic example set.
	if math.Abs(d.StdDev-2.138) > 0.001 {
		t.Errorf("StdDev = %v, want ~2.138", d.StdDev)
	}
	if d.P90 != 9 {
		t.Errorf("P90 = %v, want 9", d.P90)
	}
}
