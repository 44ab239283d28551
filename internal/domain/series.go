package domain

import (
	"fmt"
	"math"
)

// Series is a one-dimensional labelled variable.
// Index holds one canonical label per value; Dims names the coordinate
// dimensions the labels were built from. Missing values are NaN.
type Series struct {
	Name   string
	Dims   []string
	Index  []string
	Values []float64
}

// NewSeries creates a Series and checks its invariants.
func NewSeries(name string, dims, index []string, values []float64) (Series, error) {
	s := Series{Name: name, Dims: dims, Index: index, Values: values}
	if err := s.Validate(); err != nil {
		return Series{}, err
	}
	return s, nil
}

// Validate checks that the index and values line up and labels are unique.
func (s Series) Validate() error {
	if len(s.Index) != len(s.Values) {
		return fmt.Errorf("series %q: %d labels for %d values", s.Name, len(s.Index), len(s.Values))
	}
	seen := make(map[string]struct{}, len(s.Index))
	for _, label := range s.Index {
		if _, ok := seen[label]; ok {
			return fmt.Errorf("%w: series %q label %q", ErrDuplicateIndex, s.Name, label)
		}
		seen[label] = struct{}{}
	}
	return nil
}

// Len returns the number of entries.
func (s Series) Len() int {
	return len(s.Values)
}

// Missing returns the number of NaN values.
func (s Series) Missing() int {
	n := 0
	for _, v := range s.Values {
		if math.IsNaN(v) {
			n++
		}
	}
	return n
}
