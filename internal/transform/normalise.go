package transform

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/bft-labs/gridscatter/internal/domain"
)

// NormSuffix is appended to a column name for its normalised copy.
const NormSuffix = "_norm"

// Normalise returns (v - mean) / stdev for every value, using the sample
// standard deviation (n-1 denominator). It fails with
// domain.ErrDegenerateDistribution for fewer than two values or zero spread.
func Normalise(values []float64) ([]float64, error) {
	if len(values) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 values, have %d", domain.ErrDegenerateDistribution, len(values))
	}
	mean, std := stat.MeanStdDev(values, nil)
	if std == 0 || math.IsNaN(std) {
		return nil, fmt.Errorf("%w: standard deviation is %v", domain.ErrDegenerateDistribution, std)
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = (v - mean) / std
	}
	return out, nil
}

// NormaliseColumn adds the normalised copy of column name to t and returns
// the new column's name (name + NormSuffix).
func NormaliseColumn(t *domain.Table, name string) (string, error) {
	col, err := t.Column(name)
	if err != nil {
		return "", err
	}
	norm, err := Normalise(col)
	if err != nil {
		return "", fmt.Errorf("normalise %q: %w", name, err)
	}
	target := name + NormSuffix
	if err := t.AddColumn(target, norm); err != nil {
		return "", err
	}
	return target, nil
}
