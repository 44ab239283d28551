package transform

import "github.com/bft-labs/gridscatter/internal/domain"

// ThinIndices returns the positions kept when thinning n rows with the given
// stride: 0, stride, 2*stride, ... A stride below 1 keeps every row.
func ThinIndices(n, stride int) []int {
	if stride < 1 {
		stride = 1
	}
	idx := make([]int, 0, (n+stride-1)/stride)
	for i := 0; i < n; i += stride {
		idx = append(idx, i)
	}
	return idx
}

// Thin subsamples plot data by stride. The colour column, when present, is
// thinned with the same positions.
func Thin(d domain.PlotData, stride int) domain.PlotData {
	idx := ThinIndices(d.Len(), stride)
	out := domain.PlotData{
		X:     pick(d.X, idx),
		Y:     pick(d.Y, idx),
		CName: d.CName,
		Trend: d.Trend,
	}
	if d.C != nil {
		out.C = pick(d.C, idx)
	}
	return out
}

func pick(values []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for i, p := range idx {
		out[i] = values[p]
	}
	return out
}
