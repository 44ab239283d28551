// Package render renders scatterplots with gonum/plot.
package render

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	// Register the vector output formats with draw.NewFormattedCanvas.
	_ "gonum.org/v1/plot/vg/vgeps"
	_ "gonum.org/v1/plot/vg/vgpdf"
	_ "gonum.org/v1/plot/vg/vgsvg"

	"github.com/bft-labs/gridscatter/internal/adapters/fs"
	"github.com/bft-labs/gridscatter/internal/domain"
	"github.com/bft-labs/gridscatter/internal/ports"
)

// Rendering defaults used when a PlotSpec leaves a field unset.
const (
	DefaultWidth     = 6.4 // inches
	DefaultHeight    = 4.8 // inches
	DefaultDPI       = 100
	DefaultPointSize = 2.0 // points
	DefaultCMap      = "Greys"

	colourBarFraction = 0.15
)

var (
	zeroLineColour = color.Gray{Y: 128}
	rasterFormats  = map[string]bool{"png": true, "jpg": true, "jpeg": true, "tif": true, "tiff": true}
	vectorFormats  = map[string]bool{"svg": true, "pdf": true, "eps": true}
)

// Renderer implements ports.Plotter.
type Renderer struct {
	logger ports.Logger
}

// NewRenderer creates a Renderer.
func NewRenderer(logger ports.Logger) *Renderer {
	return &Renderer{logger: logger}
}

// Format returns the output format for path, derived from its extension.
func Format(path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if rasterFormats[ext] || vectorFormats[ext] {
		return ext, nil
	}
	return "", fmt.Errorf("%w: output %q", domain.ErrUnsupportedFormat, path)
}

// Render draws data and writes the image to path. Nothing is written unless
// drawing succeeds.
func (r *Renderer) Render(ctx context.Context, path string, data domain.PlotData, spec domain.PlotSpec) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	format, err := Format(path)
	if err != nil {
		return err
	}
	if data.Len() == 0 {
		return fmt.Errorf("%w: nothing to plot", domain.ErrAlignmentEmpty)
	}
	if len(data.Y) != data.Len() || (data.C != nil && len(data.C) != data.Len()) {
		return fmt.Errorf("plot data columns differ in length")
	}
	spec = withDefaults(spec)

	w := vg.Length(spec.Width) * vg.Inch
	h := vg.Length(spec.Height) * vg.Inch
	cw, err := newCanvas(format, w, h, spec.DPI)
	if err != nil {
		return err
	}
	if err := r.draw(draw.New(cw), data, spec); err != nil {
		return err
	}

	var buf bytes.Buffer
	if _, err := cw.WriteTo(&buf); err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}
	if err := fs.WriteFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	r.logger.Debug("image written",
		ports.String("path", path),
		ports.String("format", format),
		ports.Int("bytes", buf.Len()),
	)
	return nil
}

func withDefaults(spec domain.PlotSpec) domain.PlotSpec {
	if spec.Width <= 0 {
		spec.Width = DefaultWidth
	}
	if spec.Height <= 0 {
		spec.Height = DefaultHeight
	}
	if spec.DPI <= 0 {
		spec.DPI = DefaultDPI
	}
	if spec.PointSize <= 0 {
		spec.PointSize = DefaultPointSize
	}
	if spec.CMap == "" {
		spec.CMap = DefaultCMap
	}
	if spec.Colour == nil {
		spec.Colour = domain.Solid{Colour: "k"}
	}
	return spec
}

// newCanvas creates the output canvas. Raster canvases honour dpi.
func newCanvas(format string, w, h vg.Length, dpi int) (vg.CanvasWriterTo, error) {
	img := func() *vgimg.Canvas {
		return vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(dpi))
	}
	switch format {
	case "png":
		return vgimg.PngCanvas{Canvas: img()}, nil
	case "jpg", "jpeg":
		return vgimg.JpegCanvas{Canvas: img()}, nil
	case "tif", "tiff":
		return vgimg.TiffCanvas{Canvas: img()}, nil
	}
	return draw.NewFormattedCanvas(w, h, format)
}

func (r *Renderer) draw(dc draw.Canvas, data domain.PlotData, spec domain.PlotSpec) error {
	p := plot.New()
	p.X.Label.Text = spec.XLabel
	p.Y.Label.Text = spec.YLabel

	if spec.ZeroLines {
		p.Add(zeroLines{LineStyle: draw.LineStyle{Color: zeroLineColour, Width: vg.Points(0.75)}})
	}

	xys := make(plotter.XYs, data.Len())
	for i := range xys {
		xys[i].X, xys[i].Y = data.X[i], data.Y[i]
	}
	sc, err := plotter.NewScatter(xys)
	if err != nil {
		return fmt.Errorf("scatter: %w", err)
	}
	sc.GlyphStyle = draw.GlyphStyle{Shape: draw.CircleGlyph{}, Radius: vg.Points(spec.PointSize)}

	var cm palette.ColorMap
	if data.C != nil {
		cm, err = ColorMap(spec.CMap)
		if err != nil {
			return err
		}
		lo, hi := valueRange(data.C)
		cm.SetMin(lo)
		cm.SetMax(hi)

		styles := make([]draw.GlyphStyle, len(data.C))
		for i, v := range data.C {
			c, err := cm.At(v)
			if err != nil {
				return fmt.Errorf("colour map %s: %w", spec.CMap, err)
			}
			styles[i] = sc.GlyphStyle
			styles[i].Color = c
		}
		sc.GlyphStyleFunc = func(i int) draw.GlyphStyle { return styles[i] }
	} else {
		name := "k"
		if s, ok := spec.Colour.(domain.Solid); ok && s.Colour != "" {
			name = s.Colour
		}
		c, err := ParseColour(name)
		if err != nil {
			return err
		}
		sc.GlyphStyle.Color = c
	}
	p.Add(sc)

	if data.Trend != nil {
		c, err := ParseColour(spec.TrendColour)
		if err != nil {
			return fmt.Errorf("trend colour: %w", err)
		}
		f := *data.Trend
		line, err := plotter.NewLine(plotter.XYs{
			{X: f.XMin, Y: f.At(f.XMin)},
			{X: f.XMax, Y: f.At(f.XMax)},
		})
		if err != nil {
			return fmt.Errorf("trend line: %w", err)
		}
		line.LineStyle.Color = c
		line.LineStyle.Width = vg.Points(1.5)
		p.Add(line)
	}

	if cm == nil {
		p.Draw(dc)
		return nil
	}

	barWidth := (dc.Max.X - dc.Min.X) * colourBarFraction
	p.Draw(draw.Crop(dc, 0, -barWidth, 0, 0))

	bar := plot.New()
	bar.HideX()
	bar.Y.Padding = 0
	bar.Y.Label.Text = data.CName
	bar.Add(&plotter.ColorBar{ColorMap: cm, Vertical: true})
	bar.Draw(draw.Crop(dc, (dc.Max.X-dc.Min.X)-barWidth, 0, 0, 0))
	return nil
}

// valueRange returns the extent of vs, widened when all values are equal.
func valueRange(vs []float64) (lo, hi float64) {
	lo, hi = vs[0], vs[0]
	for _, v := range vs[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	return lo, hi
}
