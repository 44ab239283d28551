package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// LabelSep joins per-dimension parts of a multi-dimensional index label.
const LabelSep = ","

// FormatCoordinate renders a numeric coordinate as an index label.
func FormatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// FormatTime renders a time coordinate as an index label, rounded to the
// second and expressed in UTC.
func FormatTime(t time.Time) string {
	return t.Round(time.Second).UTC().Format(time.RFC3339)
}

// JoinLabel combines per-dimension label parts.
func JoinLabel(parts []string) string {
	return strings.Join(parts, LabelSep)
}

// Nearest returns the position of the value in coords closest to target.
// NaN coordinates are skipped; ties keep the first position. It returns -1
// when no coordinate is usable.
func Nearest(coords []float64, target float64) int {
	best := -1
	bestDist := math.Inf(1)
	for i, c := range coords {
		if math.IsNaN(c) {
			continue
		}
		if d := math.Abs(c - target); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
