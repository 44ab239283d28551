// Package gridscatter plots one gridded or time-series variable against
// another.
//
// Example usage:
//
//	cfg := gridscatter.DefaultConfig()
//	cfg.XFile, cfg.XVar = "nino34.nc", "nino34"
//	cfg.YFile, cfg.YVar = "sam.nc", "sam"
//	cfg.OutFile = "scatter.png"
//	cfg.TrendLine = true
//	res, err := gridscatter.Run(context.Background(), cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Fit.Slope)
package gridscatter

import (
	"context"

	"github.com/bft-labs/gridscatter/internal/adapters/dataset"
	"github.com/bft-labs/gridscatter/internal/adapters/fs"
	logAdapter "github.com/bft-labs/gridscatter/internal/adapters/log"
	"github.com/bft-labs/gridscatter/internal/adapters/render"
	"github.com/bft-labs/gridscatter/internal/app"
	"github.com/bft-labs/gridscatter/internal/cliconfig"
	"github.com/bft-labs/gridscatter/internal/domain"
	"github.com/bft-labs/gridscatter/internal/ports"
)

// Config holds the inputs, output and plotting options of one run.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config = cliconfig.Config

// Result summarises a completed run.
type Result = app.Result

// LineFit is the least-squares trend of the plotted points.
type LineFit = domain.LineFit

// Logger is the interface for structured logging.
type Logger = ports.Logger

// LogField represents a structured log field.
type LogField = ports.Field

// Errors returned by Run, for use with errors.Is.
var (
	ErrMissingVariable        = domain.ErrMissingVariable
	ErrAlignmentEmpty         = domain.ErrAlignmentEmpty
	ErrParse                  = domain.ErrParse
	ErrDegenerateDistribution = domain.ErrDegenerateDistribution
	ErrDuplicateIndex         = domain.ErrDuplicateIndex
	ErrOutputMissing          = domain.ErrOutputMissing
	ErrUnsupportedFormat      = domain.ErrUnsupportedFormat
	ErrInvalidConfig          = domain.ErrInvalidConfig
)

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return cliconfig.DefaultConfig()
}

// Option configures optional behaviour of Run.
type Option func(*options)

type options struct {
	logger  ports.Logger
	command string
	version string
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithCommand sets the command line and program version recorded in the
// output metadata.
func WithCommand(command, version string) Option {
	return func(o *options) {
		o.command = command
		o.version = version
	}
}

// Run validates cfg, draws the scatterplot to cfg.OutFile and writes its
// metadata file. Nothing is written if any step fails.
func Run(ctx context.Context, cfg Config, opts ...Option) (Result, error) {
	o := options{logger: logAdapter.NewNoopLogger(), command: "gridscatter", version: "dev"}
	for _, opt := range opts {
		opt(&o)
	}

	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	req, err := cfg.Request(o.command, o.version)
	if err != nil {
		return Result{}, err
	}

	pipeline := app.NewPipeline(
		dataset.NewRouter(o.logger),
		render.NewRenderer(o.logger),
		fs.NewMetadataFileWriter(),
		o.logger,
	)
	return pipeline.Run(ctx, req)
}
