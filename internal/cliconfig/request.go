package cliconfig

import (
	"strconv"
	"strings"

	"github.com/bft-labs/gridscatter/internal/app"
	"github.com/bft-labs/gridscatter/internal/domain"
)

// Request converts a validated Config into a pipeline request. command is
// the full command line recorded in the output metadata.
func (c Config) Request(command, version string) (app.Request, error) {
	req := app.Request{
		X:         app.Source{Path: c.XFile, Variable: c.XVar},
		Y:         app.Source{Path: c.YFile, Variable: c.YVar},
		Normalise: c.Normalise,
		Plot: domain.PlotSpec{
			XLabel:      c.XLabel,
			YLabel:      c.YLabel,
			Colour:      domain.Solid{Colour: c.PointColour},
			CMap:        c.CMap,
			Thin:        c.Thin,
			TrendLine:   c.TrendLine,
			TrendColour: c.TrendColour,
			ZeroLines:   c.ZeroLines,
			Width:       c.Width,
			Height:      c.Height,
			DPI:         c.DPI,
			PointSize:   c.PointSize,
		},
		OutFile: c.OutFile,
		Invocation: domain.Invocation{
			Command:    command,
			Version:    version,
			Parameters: c.Parameters(),
		},
	}

	if len(c.Colour) == 2 {
		src := &app.Source{Path: c.Colour[0], Variable: c.Colour[1]}
		if c.CLatSet {
			src.Subset = map[string]float64{ColourLatitude: c.CLat}
		}
		req.Colour = src
	}
	if len(c.Filter) == 2 {
		spec, err := domain.ParseThresholdSpec(c.Filter[0], c.Filter[1])
		if err != nil {
			return app.Request{}, err
		}
		req.Filter = &spec
	}
	return req, nil
}

// Parameters lists the effective options for the metadata record.
func (c Config) Parameters() map[string]string {
	p := map[string]string{
		"normalise":    strconv.FormatBool(c.Normalise),
		"thin":         strconv.Itoa(c.Thin),
		"trend_line":   strconv.FormatBool(c.TrendLine),
		"trend_colour": c.TrendColour,
		"zero_lines":   strconv.FormatBool(c.ZeroLines),
		"cmap":         c.CMap,
		"width":        strconv.FormatFloat(c.Width, 'g', -1, 64),
		"height":       strconv.FormatFloat(c.Height, 'g', -1, 64),
		"dpi":          strconv.Itoa(c.DPI),
	}
	if len(c.Colour) == 2 {
		p["colour"] = strings.Join(c.Colour, " ")
	}
	if c.CLatSet {
		p["clat"] = strconv.FormatFloat(c.CLat, 'g', -1, 64)
	}
	if len(c.Filter) == 2 {
		p["filter"] = strings.Join(c.Filter, " ")
	}
	if c.XLabel != "" {
		p["xlabel"] = c.XLabel
	}
	if c.YLabel != "" {
		p["ylabel"] = c.YLabel
	}
	return p
}
