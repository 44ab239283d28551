package transform

import (
	"fmt"
	"math"
	"slices"

	"github.com/bft-labs/gridscatter/internal/domain"
)

// Percentile returns the p-th percentile (0..100) of values, interpolating
// linearly between the closest ranks (Hyndman and Fan type 7).
func Percentile(values []float64, p float64) (float64, error) {
	if len(values) == 0 {
		return 0, fmt.Errorf("%w: percentile of empty column", domain.ErrDegenerateDistribution)
	}
	if p < 0 || p > 100 || math.IsNaN(p) {
		return 0, fmt.Errorf("%w: percentile %v outside 0..100", domain.ErrParse, p)
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo], nil
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo]), nil
}

// Cutoff resolves a threshold against the values of its column.
func Cutoff(values []float64, th domain.Threshold) (float64, error) {
	if !th.Percentile {
		return th.Value, nil
	}
	return Percentile(values, th.Value)
}

// Filter keeps only rows of t whose spec column is >= the resolved cutoff.
// It returns the cutoff used. The table is updated in place.
func Filter(t *domain.Table, spec domain.ThresholdSpec) (float64, error) {
	col, err := t.Column(spec.Column)
	if err != nil {
		return 0, fmt.Errorf("filter: %w", err)
	}
	cutoff, err := Cutoff(col, spec.Threshold)
	if err != nil {
		return 0, fmt.Errorf("filter %q: %w", spec.Column, err)
	}

	mask := make([]bool, len(col))
	kept := 0
	for i, v := range col {
		if v >= cutoff {
			mask[i] = true
			kept++
		}
	}
	if kept == 0 {
		return cutoff, fmt.Errorf("%w: no %q values >= %g", domain.ErrAlignmentEmpty, spec.Column, cutoff)
	}
	if err := t.Keep(mask); err != nil {
		return cutoff, err
	}
	return cutoff, nil
}
