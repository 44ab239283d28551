package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/gridscatter"
	logAdapter "github.com/bft-labs/gridscatter/internal/adapters/log"
	"github.com/bft-labs/gridscatter/internal/cliconfig"
)

const longHelp = `Plot one gridded or time-series variable against another.

The x and y variables are read from netCDF (.nc) or CSV files, joined on their
shared coordinates, optionally normalised and filtered, and drawn as a
scatterplot. A <stem>.met file next to the image records the command and the
history of every input file.

Options can also be set in $HOME/.gridscatter/config.toml or with
GRIDSCATTER_* environment variables; flags take precedence.`

var exampleUsage = strings.TrimSpace(`
  gridscatter nino34.nc nino34 sam.nc sam scatter.png
  gridscatter nino34.nc nino34 sam.nc sam scatter.png --colour zw3.nc ampmedian --clat -55
  gridscatter nino34.nc nino34 sam.nc sam scatter.png --normalise --filter sam 90pct --trend_line
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// underscoreToDash lets --trend_line and --trend-line name the same flag.
func underscoreToDash(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

// newRootCmd builds the gridscatter command. log is replaced by a logger at
// the configured level once the configuration is resolved.
func newRootCmd(log *zerolog.Logger) *cobra.Command {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	root := &cobra.Command{
		Use:           "gridscatter xfile xvar yfile yvar ofile",
		Short:         "Scatterplot one gridded variable against another",
		Long:          longHelp,
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		Args:          cobra.ExactArgs(5),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.SetPositional(args); err != nil {
				return err
			}

			// Load config file first (default $HOME/.gridscatter/config.toml), then apply flag overrides
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			// Build set of changed flags
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })
			cfg.CLatSet = changed["clat"]

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				cliconfig.ApplyFileConfig(&cfg, fc, changed)
			} else if cfgPath != "" {
				return fmt.Errorf("config file %s not found", cfgPath)
			}

			// Environment variables (GRIDSCATTER_*) override the file but not flags
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}
			lg, err := cliconfig.Logger(cfg.LogLevel)
			if err != nil {
				return err
			}
			*log = lg
			log.Debug().Interface("config", cfg).Msg("configuration")

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			res, err := gridscatter.Run(ctx, cfg,
				gridscatter.WithLogger(logAdapter.NewZerologAdapter(*log)),
				gridscatter.WithCommand(strings.Join(os.Args, " "), getVersion()),
			)
			if err != nil {
				return err
			}

			event := log.Info().
				Str("run_id", res.RunID).
				Str("output", cfg.OutFile).
				Int("rows", res.RowsAligned).
				Int("points", res.RowsPlotted)
			if res.Fit != nil {
				event = event.Float64("slope", res.Fit.Slope).Float64("intercept", res.Fit.Intercept)
			}
			event.Msg("done")
			return nil
		},
	}

	flags := root.Flags()
	flags.SetNormalizeFunc(underscoreToDash)

	flags.StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.gridscatter/config.toml)")

	flags.StringArrayVar(&cfg.Colour, "colour", nil, "colour points by a variable: --colour FILE VAR")
	flags.Float64Var(&cfg.CLat, "clat", 0, "latitude of the colour variable to select (nearest grid point)")
	flags.StringArrayVar(&cfg.Filter, "filter", nil, "keep rows where METRIC >= THRESHOLD (value or Npct): --filter METRIC THRESHOLD")
	flags.BoolVar(&cfg.Normalise, "normalise", cfg.Normalise, "plot z-scores of the x and y variables")

	flags.IntVar(&cfg.Thin, "thin", cfg.Thin, "plot every Nth point")
	flags.BoolVar(&cfg.TrendLine, "trend-line", cfg.TrendLine, "draw a least-squares trend line")
	flags.StringVar(&cfg.TrendColour, "trend-colour", cfg.TrendColour, "trend line colour")
	flags.BoolVar(&cfg.ZeroLines, "zero-lines", cfg.ZeroLines, "draw lines through x=0 and y=0")
	flags.StringVar(&cfg.CMap, "cmap", cfg.CMap, "colour map for --colour (append _r to reverse)")
	flags.StringVar(&cfg.XLabel, "xlabel", "", "x-axis label (underscores become spaces; default xvar)")
	flags.StringVar(&cfg.YLabel, "ylabel", "", "y-axis label (underscores become spaces; default yvar)")

	flags.Float64Var(&cfg.Width, "width", cfg.Width, "figure width in inches")
	flags.Float64Var(&cfg.Height, "height", cfg.Height, "figure height in inches")
	flags.IntVar(&cfg.DPI, "dpi", cfg.DPI, "raster image resolution")
	flags.Float64Var(&cfg.PointSize, "point-size", cfg.PointSize, "point radius in points")
	flags.StringVar(&cfg.PointColour, "point-colour", cfg.PointColour, "point colour when --colour is not given")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")

	return root
}

func main() {
	log, _ := cliconfig.Logger("info")
	root := newRootCmd(&log)
	root.SetArgs(cliconfig.NormalizePairArgs(os.Args[1:], cliconfig.PairFlags...))

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("gridscatter")
		os.Exit(1)
	}
}
