package render

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	applog "github.com/bft-labs/gridscatter/internal/adapters/log"
	"github.com/bft-labs/gridscatter/internal/domain"
)

func sampleData() domain.PlotData {
	return domain.PlotData{
		X: []float64{-2, -1, 0, 1, 2},
		Y: []float64{-3, -1, 0, 2, 4},
	}
}

func TestRenderer_WritesPNGAtDPI(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	r := NewRenderer(applog.NewNoopLogger())

	data := sampleData()
	data.Trend = &domain.LineFit{Slope: 1.7, Intercept: 0.4, XMin: -2, XMax: 2}
	spec := domain.PlotSpec{
		XLabel: "x", YLabel: "y",
		TrendColour: "r", ZeroLines: true,
		Width: 4, Height: 3, DPI: 50,
	}
	require.NoError(t, r.Render(context.Background(), path, data, spec))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	cfg, err := png.DecodeConfig(bytes.NewReader(b))
	require.NoError(t, err)
	assert.Equal(t, 200, cfg.Width)
	assert.Equal(t, 150, cfg.Height)
}

func TestRenderer_ColourBar(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	r := NewRenderer(applog.NewNoopLogger())

	data := sampleData()
	data.C = []float64{5, 4, 3, 2, 1}
	data.CName = "depth"
	spec := domain.PlotSpec{Colour: domain.FromColumn{Name: "depth"}, CMap: "RdBu_r"}
	require.NoError(t, r.Render(context.Background(), path, data, spec))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, _, err := image.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 640, img.Bounds().Dx())
}

func TestRenderer_ConstantColourColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flat.png")
	data := sampleData()
	data.C = []float64{1, 1, 1, 1, 1}
	err := NewRenderer(applog.NewNoopLogger()).Render(context.Background(), path, data, domain.PlotSpec{})
	require.NoError(t, err)
}

func TestRenderer_VectorFormats(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(applog.NewNoopLogger())
	for _, name := range []string{"a.svg", "a.pdf", "a.eps", "a.jpg", "a.tiff"} {
		path := filepath.Join(dir, name)
		require.NoError(t, r.Render(context.Background(), path, sampleData(), domain.PlotSpec{}), name)
		st, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, st.Size(), name)
	}
}

func TestRenderer_NoFileOnError(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(applog.NewNoopLogger())

	tests := []struct {
		name string
		file string
		data domain.PlotData
		spec domain.PlotSpec
		want error
	}{
		{"unsupported format", "out.gif", sampleData(), domain.PlotSpec{}, domain.ErrUnsupportedFormat},
		{"empty data", "empty.png", domain.PlotData{}, domain.PlotSpec{}, domain.ErrAlignmentEmpty},
		{"bad colour", "colour.png", sampleData(), domain.PlotSpec{Colour: domain.Solid{Colour: "nope"}}, domain.ErrParse},
		{"bad cmap", "cmap.png", domain.PlotData{X: []float64{1, 2}, Y: []float64{1, 2}, C: []float64{1, 2}}, domain.PlotSpec{CMap: "NotAMap"}, domain.ErrParse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			err := r.Render(context.Background(), path, tt.data, tt.spec)
			assert.ErrorIs(t, err, tt.want)
			_, statErr := os.Stat(path)
			assert.True(t, os.IsNotExist(statErr))
		})
	}
}

func TestParseColour(t *testing.T) {
	tests := []struct {
		in   string
		want color.Color
	}{
		{"k", color.RGBA{A: 255}},
		{"r", color.RGBA{R: 255, A: 255}},
		{"Red", color.RGBA{R: 255, A: 255}},
		{"steelblue", color.RGBA{R: 70, G: 130, B: 180, A: 255}},
		{"#ff8000", color.NRGBA{R: 255, G: 128, A: 255}},
		{"#ff800080", color.NRGBA{R: 255, G: 128, A: 128}},
		{"0.5", color.Gray{Y: 128}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColour(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "#12", "#zzzzzz", "1.5", "notacolour"} {
		_, err := ParseColour(bad)
		assert.ErrorIs(t, err, domain.ErrParse, bad)
	}
}

func TestColorMap(t *testing.T) {
	for _, name := range []string{"Greys", "Greys_r", "RdBu", "Set1", "coolwarm", "blackbody", "kindlmann_r", "heat", "rainbow"} {
		t.Run(name, func(t *testing.T) {
			cm, err := ColorMap(name)
			require.NoError(t, err)
			cm.SetMin(-1)
			cm.SetMax(1)
			for _, v := range []float64{-1, 0, 1} {
				_, err := cm.At(v)
				assert.NoError(t, err)
			}
		})
	}

	_, err := ColorMap("viridis_x")
	assert.ErrorIs(t, err, domain.ErrParse)
}

func TestColorMap_GreysDarkens(t *testing.T) {
	cm, err := ColorMap("Greys")
	require.NoError(t, err)
	cm.SetMin(0)
	cm.SetMax(1)
	lo, _ := cm.At(0)
	hi, _ := cm.At(1)
	r0, _, _, _ := lo.RGBA()
	r1, _, _, _ := hi.RGBA()
	assert.Greater(t, r0, r1)

	rev, err := ColorMap("Greys_r")
	require.NoError(t, err)
	rev.SetMin(0)
	rev.SetMax(1)
	rlo, _ := rev.At(0)
	assert.Equal(t, hi, rlo)
}
