package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// PercentSuffix marks a threshold expression as a percentile.
const PercentSuffix = "pct"

// Threshold is a parsed threshold expression: either a raw cutoff or a
// percentile of the filtered column.
type Threshold struct {
	Value      float64
	Percentile bool
}

// String renders the threshold in its expression syntax.
func (t Threshold) String() string {
	s := strconv.FormatFloat(t.Value, 'g', -1, 64)
	if t.Percentile {
		return s + PercentSuffix
	}
	return s
}

// ParseThreshold parses "<number>" or "<number>pct" (0 to 100). The number
// must be finite.
func ParseThreshold(expr string) (Threshold, error) {
	s := strings.TrimSpace(expr)
	pct := strings.HasSuffix(s, PercentSuffix)
	if pct {
		s = strings.TrimSpace(strings.TrimSuffix(s, PercentSuffix))
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Threshold{}, fmt.Errorf("%w: threshold %q: expected <number> or <number>%s", ErrParse, expr, PercentSuffix)
	}
	if pct && (v < 0 || v > 100) {
		return Threshold{}, fmt.Errorf("%w: percentile %q outside 0..100", ErrParse, expr)
	}
	return Threshold{Value: v, Percentile: pct}, nil
}

// ThresholdSpec filters rows of a table by one of its columns.
type ThresholdSpec struct {
	Column    string
	Threshold Threshold
}

// ParseThresholdSpec builds a ThresholdSpec from a column name and expression.
func ParseThresholdSpec(column, expr string) (ThresholdSpec, error) {
	if strings.TrimSpace(column) == "" {
		return ThresholdSpec{}, fmt.Errorf("%w: filter column is empty", ErrParse)
	}
	th, err := ParseThreshold(expr)
	if err != nil {
		return ThresholdSpec{}, err
	}
	return ThresholdSpec{Column: column, Threshold: th}, nil
}
