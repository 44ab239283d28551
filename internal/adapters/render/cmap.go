package render

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/palette/moreland"

	"github.com/bft-labs/gridscatter/internal/domain"
)

// ReverseSuffix reverses any named colour map.
const ReverseSuffix = "_r"

// rampSteps is the number of control colours sampled from generated palettes.
const rampSteps = 64

var namedMaps = map[string]func() palette.ColorMap{
	"coolwarm":  func() palette.ColorMap { return moreland.SmoothBlueRed() },
	"blackbody": moreland.BlackBody,
	"kindlmann": moreland.Kindlmann,
	"heat": func() palette.ColorMap {
		return newRamp(palette.Heat(rampSteps, 1).Colors())
	},
	"rainbow": func() palette.ColorMap {
		return newRamp(palette.Rainbow(rampSteps, palette.Blue, palette.Red, 1, 1, 1).Colors())
	},
}

// ColorMap returns the colour map called name. ColorBrewer palette names
// are accepted as well as coolwarm, blackbody, kindlmann, heat and rainbow.
// A "_r" suffix reverses the map.
func ColorMap(name string) (palette.ColorMap, error) {
	base, reversed := strings.CutSuffix(name, ReverseSuffix)

	var cm palette.ColorMap
	if fn, ok := namedMaps[strings.ToLower(base)]; ok {
		cm = fn()
	} else {
		p, err := largestBrewer(base)
		if err != nil {
			return nil, fmt.Errorf("%w: colour map %q", domain.ErrParse, name)
		}
		cm = newRamp(p.Colors())
	}
	if reversed {
		cm = palette.Reverse(cm)
	}
	return cm, nil
}

// largestBrewer returns the palette with the most classes available.
func largestBrewer(name string) (palette.Palette, error) {
	var err error
	for n := 12; n >= 3; n-- {
		var p palette.Palette
		if p, err = brewer.GetPalette(brewer.TypeAny, name, n); err == nil {
			return p, nil
		}
	}
	return nil, err
}

// ramp is a palette.ColorMap interpolating linearly in RGB between evenly
// spaced control colours.
type ramp struct {
	colors   []color.NRGBA
	min, max float64
	alpha    float64
}

func newRamp(cs []color.Color) *ramp {
	r := &ramp{colors: make([]color.NRGBA, len(cs)), max: 1, alpha: 1}
	for i, c := range cs {
		r.colors[i] = color.NRGBAModel.Convert(c).(color.NRGBA)
	}
	return r
}

func (r *ramp) At(v float64) (color.Color, error) {
	if r.max <= r.min {
		return nil, fmt.Errorf("colour map: max %g <= min %g", r.max, r.min)
	}
	if math.IsNaN(v) || v < r.min || v > r.max {
		return nil, fmt.Errorf("colour map: value %g outside [%g, %g]", v, r.min, r.max)
	}
	pos := (v - r.min) / (r.max - r.min) * float64(len(r.colors)-1)
	i := int(math.Floor(pos))
	if i >= len(r.colors)-1 {
		return r.withAlpha(r.colors[len(r.colors)-1]), nil
	}
	f := pos - float64(i)
	lo, hi := r.colors[i], r.colors[i+1]
	mix := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a) + f*(float64(b)-float64(a))))
	}
	return r.withAlpha(color.NRGBA{R: mix(lo.R, hi.R), G: mix(lo.G, hi.G), B: mix(lo.B, hi.B), A: mix(lo.A, hi.A)}), nil
}

func (r *ramp) withAlpha(c color.NRGBA) color.NRGBA {
	c.A = uint8(math.Round(float64(c.A) * r.alpha))
	return c
}

func (r *ramp) Max() float64     { return r.max }
func (r *ramp) SetMax(v float64) { r.max = v }
func (r *ramp) Min() float64     { return r.min }
func (r *ramp) SetMin(v float64) { r.min = v }
func (r *ramp) Alpha() float64   { return r.alpha }

func (r *ramp) SetAlpha(a float64) {
	if a < 0 || a > 1 {
		panic("colour map: alpha out of range")
	}
	r.alpha = a
}

// Palette samples n colours evenly across the map.
func (r *ramp) Palette(n int) palette.Palette {
	out := make(colors, n)
	for i := range out {
		v := r.min
		if n > 1 {
			v += float64(i) / float64(n-1) * (r.max - r.min)
		}
		c, err := r.At(v)
		if err != nil {
			panic(err)
		}
		out[i] = c
	}
	return out
}

type colors []color.Color

func (c colors) Colors() []color.Color { return c }
