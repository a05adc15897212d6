// Package stats provides small statistical helpers over line counts.
package stats

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Percentile calculates the p-th percentile of a sorted slice.
// The slice must already be sorted in ascending order.
// Returns 0 if the slice is empty.
func Percentile(sorted []float64, p int) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := (p * len(sorted)) / 100
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// Distribution summarizes a set of per-file line counts.
type Distribution struct {
	Mean   float64
	StdDev float64
	P90    float64
}

// Describe computes mean, sample standard deviation and 90th percentile of
// values. The standard deviation is 0 for fewer than two values.
func Describe(values []int) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}
	xs := make([]float64, len(values))
	for i, v := range values {
		xs[i] = float64(v)
	}

	var d Distribution
	if len(xs) < 2 {
		d.Mean = xs[0]
	} else {
		d.Mean, d.StdDev = stat.MeanStdDev(xs, nil)
	}

	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	d.P90 = Percentile(sorted, 90)
	return d
}
