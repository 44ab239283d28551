package render

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg/draw"
)

// zeroLines draws a horizontal line at y=0 and a vertical line at x=0 across
// the data area. Its data range pulls both axes out to include zero.
type zeroLines struct {
	draw.LineStyle
}

func (z zeroLines) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)
	x, y := trX(0), trY(0)
	c.StrokeLine2(z.LineStyle, c.Min.X, y, c.Max.X, y)
	c.StrokeLine2(z.LineStyle, x, c.Min.Y, x, c.Max.Y)
}

func (zeroLines) DataRange() (xmin, xmax, ymin, ymax float64) {
	return 0, 0, 0, 0
}
