package domain

import (
	"math"
	"testing"
	"time"
)

func TestNearest(t *testing.T) {
	lats := []float64{-90, -60, -55.5, -30, 0, 30}
	tests := []struct {
		target float64
		want   int
	}{
		{-55, 2},
		{-57, 2},
		{-59, 1},
		{-100, 0},
		{100, 5},
		{-15, 3}, // tie between -30 and 0 keeps the first
	}
	for _, tt := range tests {
		if got := Nearest(lats, tt.target); got != tt.want {
			t.Errorf("Nearest(%v) = %d, want %d", tt.target, got, tt.want)
		}
	}
	if got := Nearest([]float64{math.NaN()}, 1); got != -1 {
		t.Errorf("Nearest(NaN) = %d, want -1", got)
	}
}

func TestFormatTime(t *testing.T) {
	ts := time.Date(1979, 1, 16, 11, 59, 59, 700_000_000, time.FixedZone("x", 3600))
	if got := FormatTime(ts); got != "1979-01-16T11:00:00Z" {
		t.Errorf("FormatTime = %q", got)
	}
}

func TestFormatCoordinate(t *testing.T) {
	if got := FormatCoordinate(-55.5); got != "-55.5" {
		t.Errorf("FormatCoordinate = %q", got)
	}
	if got := JoinLabel([]string{"a", "b"}); got != "a,b" {
		t.Errorf("JoinLabel = %q", got)
	}
}
