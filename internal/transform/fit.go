package transform

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/bft-labs/gridscatter/internal/domain"
)

// FitLine fits y = slope*x + intercept by ordinary least squares.
// The x values must not all be equal.
func FitLine(x, y []float64) (domain.LineFit, error) {
	if len(x) != len(y) {
		return domain.LineFit{}, fmt.Errorf("fit: %d x values for %d y values", len(x), len(y))
	}
	if len(x) < 2 {
		return domain.LineFit{}, fmt.Errorf("%w: fit needs at least 2 points, have %d", domain.ErrDegenerateDistribution, len(x))
	}
	lo, hi := floats.Min(x), floats.Max(x)
	if lo == hi {
		return domain.LineFit{}, fmt.Errorf("%w: all x values equal %g", domain.ErrDegenerateDistribution, lo)
	}
	intercept, slope := stat.LinearRegression(x, y, nil, false)
	return domain.LineFit{Slope: slope, Intercept: intercept, XMin: lo, XMax: hi}, nil
}
