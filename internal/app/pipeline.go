package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bft-labs/gridscatter/internal/domain"
	"github.com/bft-labs/gridscatter/internal/ports"
	"github.com/bft-labs/gridscatter/internal/transform"
)

// Source names one variable in one input file.
type Source struct {
	Path     string
	Variable string

	// Subset selects the nearest grid point along each named coordinate.
	Subset map[string]float64
}

// Request describes one scatterplot run.
type Request struct {
	X, Y   Source
	Colour *Source

	Normalise bool
	Filter    *domain.ThresholdSpec

	// Plot carries presentation options. Empty axis labels default to the
	// variable names; Colour is replaced by the colour column when Colour
	// is set on the request.
	Plot domain.PlotSpec

	OutFile    string
	Invocation domain.Invocation
}

// Result summarises a completed run.
type Result struct {
	RunID        string
	RowsAligned  int
	RowsFiltered int
	RowsPlotted  int
	Cutoff       *float64
	Fit          *domain.LineFit
}

// Pipeline reads, aligns, transforms and plots variables, then records the
// lineage of the output.
type Pipeline struct {
	reader  ports.DatasetReader
	plotter ports.Plotter
	writer  ports.MetadataWriter
	logger  ports.Logger
}

// NewPipeline creates a pipeline with the given collaborators.
func NewPipeline(
	reader ports.DatasetReader,
	plotter ports.Plotter,
	writer ports.MetadataWriter,
	logger ports.Logger,
) *Pipeline {
	return &Pipeline{
		reader:  reader,
		plotter: plotter,
		writer:  writer,
		logger:  logger,
	}
}

// Run executes the pipeline. Any failure aborts the remaining stages; the
// output image and its metadata exist only if every stage succeeded.
func (p *Pipeline) Run(ctx context.Context, req Request) (Result, error) {
	inv := req.Invocation
	if inv.RunID == "" {
		inv.RunID = uuid.NewString()
	}
	if inv.Created.IsZero() {
		inv.Created = time.Now().UTC()
	}
	lineage := domain.NewLineage(inv)
	res := Result{RunID: inv.RunID}

	// Read
	sources := []Source{req.X, req.Y}
	if req.Colour != nil {
		sources = append(sources, *req.Colour)
	}
	series := make([]domain.Series, 0, len(sources))
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		start := time.Now()
		ds, err := p.reader.Read(ctx, ports.ReadRequest{
			Path:     src.Path,
			Variable: src.Variable,
			Subset:   src.Subset,
		})
		if err != nil {
			return res, fmt.Errorf("read %s from %s: %w", src.Variable, src.Path, err)
		}
		p.logger.Info("dataset read",
			ports.String("path", src.Path),
			ports.String("variable", src.Variable),
			ports.Strings("dims", ds.Series.Dims),
			ports.Int("rows", ds.Series.Len()),
			ports.Int("missing", ds.Series.Missing()),
			ports.Duration("duration", time.Since(start)),
		)
		lineage.AddSource(src.Path, src.Variable, ds.History)
		series = append(series, ds.Series)
	}

	// Align
	names := uniqueNames(variables(sources))
	table, err := transform.Align(series, names)
	if err != nil {
		return res, fmt.Errorf("align: %w", err)
	}
	res.RowsAligned = table.Len()
	p.logger.Info("series aligned",
		ports.Strings("columns", names),
		ports.Int("rows", table.Len()),
	)

	// Normalise
	xcol, ycol := names[0], names[1]
	if req.Normalise {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if xcol, err = transform.NormaliseColumn(table, xcol); err != nil {
			return res, fmt.Errorf("normalise: %w", err)
		}
		if ycol, err = transform.NormaliseColumn(table, ycol); err != nil {
			return res, fmt.Errorf("normalise: %w", err)
		}
		p.logger.Debug("columns normalised", ports.String("x", xcol), ports.String("y", ycol))
	}

	// Filter
	res.RowsFiltered = table.Len()
	if req.Filter != nil {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		cutoff, err := transform.Filter(table, *req.Filter)
		if err != nil {
			return res, fmt.Errorf("filter %s: %w", req.Filter.Column, err)
		}
		res.Cutoff = &cutoff
		res.RowsFiltered = table.Len()
		p.logger.Info("rows filtered",
			ports.String("column", req.Filter.Column),
			ports.String("threshold", req.Filter.Threshold.String()),
			ports.Float64("cutoff", cutoff),
			ports.Int("rows", table.Len()),
		)
	}

	// Plot
	if err := ctx.Err(); err != nil {
		return res, err
	}
	data, err := plotData(table, xcol, ycol, names, req.Colour != nil)
	if err != nil {
		return res, err
	}
	data = transform.Thin(data, req.Plot.Thin)
	res.RowsPlotted = data.Len()

	if req.Plot.TrendLine {
		fit, err := transform.FitLine(data.X, data.Y)
		if err != nil {
			return res, fmt.Errorf("trend line: %w", err)
		}
		data.Trend = &fit
		res.Fit = &fit
		p.logger.Info("trend fitted",
			ports.Float64("slope", fit.Slope),
			ports.Float64("intercept", fit.Intercept),
		)
	}

	spec := req.Plot
	spec.XLabel = AxisLabel(spec.XLabel, req.X.Variable)
	spec.YLabel = AxisLabel(spec.YLabel, req.Y.Variable)
	if req.Colour != nil {
		spec.Colour = domain.FromColumn{Name: data.CName}
	}
	if err := p.plotter.Render(ctx, req.OutFile, data, spec); err != nil {
		return res, fmt.Errorf("render %s: %w", req.OutFile, err)
	}
	p.logger.Info("plot written",
		ports.String("path", req.OutFile),
		ports.Int("points", data.Len()),
	)

	// Metadata
	if err := p.writer.Write(ctx, req.OutFile, lineage); err != nil {
		return res, fmt.Errorf("metadata: %w", err)
	}
	return res, nil
}

func plotData(t *domain.Table, xcol, ycol string, names []string, coloured bool) (domain.PlotData, error) {
	x, err := t.Column(xcol)
	if err != nil {
		return domain.PlotData{}, err
	}
	y, err := t.Column(ycol)
	if err != nil {
		return domain.PlotData{}, err
	}
	d := domain.PlotData{X: x, Y: y}
	if coloured {
		c, err := t.Column(names[2])
		if err != nil {
			return domain.PlotData{}, err
		}
		d.C = c
		d.CName = names[2]
	}
	return d, nil
}

func variables(sources []Source) []string {
	out := make([]string, len(sources))
	for i, s := range sources {
		out[i] = s.Variable
	}
	return out
}

// uniqueNames suffixes repeated column names with _2, _3, ...
func uniqueNames(names []string) []string {
	out := make([]string, len(names))
	seen := make(map[string]int, len(names))
	for i, n := range names {
		seen[n]++
		out[i] = n
		if seen[n] > 1 {
			out[i] = n + "_" + strconv.Itoa(seen[n])
		}
	}
	return out
}

// AxisLabel returns label with underscores shown as spaces, or fallback when
// label is empty.
func AxisLabel(label, fallback string) string {
	if label == "" {
		return fallback
	}
	return strings.ReplaceAll(label, "_", " ")
}
