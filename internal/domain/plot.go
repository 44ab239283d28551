package domain

// ColourSpec selects how scatter points are coloured.
// It is either [Solid] or [FromColumn].
type ColourSpec interface {
	isColourSpec()
}

// Solid colours every point the same.
type Solid struct {
	Colour string
}

// FromColumn colour-maps points by the values of a table column.
type FromColumn struct {
	Name string
}

func (Solid) isColourSpec()      {}
func (FromColumn) isColourSpec() {}

// PlotSpec holds the rendering options for one scatterplot.
type PlotSpec struct {
	XLabel string
	YLabel string

	Colour ColourSpec
	CMap   string

	// Thin keeps every Nth point starting at 0. Values below 1 mean 1.
	Thin int

	TrendLine   bool
	TrendColour string
	ZeroLines   bool

	// Width and Height are in inches.
	Width     float64
	Height    float64
	DPI       int
	PointSize float64
}

// LineFit is a degree-1 least-squares fit y = Slope*x + Intercept over the
// x range of the fitted points.
type LineFit struct {
	Slope     float64
	Intercept float64
	XMin      float64
	XMax      float64
}

// At evaluates the fitted line at x.
func (f LineFit) At(x float64) float64 {
	return f.Slope*x + f.Intercept
}

// PlotData is the row-aligned data handed to a plotter.
// C is nil when points are not colour-mapped.
type PlotData struct {
	X     []float64
	Y     []float64
	C     []float64
	CName string
	Trend *LineFit
}

// Len returns the number of points.
func (d PlotData) Len() int {
	return len(d.X)
}
