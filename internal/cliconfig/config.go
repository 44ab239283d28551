package cliconfig

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/bft-labs/gridscatter/internal/adapters/render"
	"github.com/bft-labs/gridscatter/internal/domain"
)

// ColourLatitude is the coordinate selected by --clat.
const ColourLatitude = "latitude"

// Config holds CLI configuration for gridscatter.
type Config struct {
	XFile   string
	XVar    string
	YFile   string
	YVar    string
	OutFile string

	// Colour and Filter hold FILE VAR and METRIC THRESHOLD pairs.
	Colour []string
	Filter []string

	CLat    float64
	CLatSet bool

	Normalise   bool
	Thin        int
	TrendLine   bool
	TrendColour string
	ZeroLines   bool
	CMap        string
	XLabel      string
	YLabel      string

	Width       float64
	Height      float64
	DPI         int
	PointSize   float64
	PointColour string

	LogLevel string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Thin:        1,
		TrendColour: "r",
		CMap:        render.DefaultCMap,
		Width:       render.DefaultWidth,
		Height:      render.DefaultHeight,
		DPI:         render.DefaultDPI,
		PointSize:   render.DefaultPointSize,
		PointColour: "k",
		LogLevel:    "info",
	}
}

// SetPositional assigns the five positional arguments.
func (c *Config) SetPositional(args []string) error {
	if len(args) != 5 {
		return fmt.Errorf("%w: expected xfile xvar yfile yvar ofile, got %d arguments", domain.ErrInvalidConfig, len(args))
	}
	c.XFile, c.XVar, c.YFile, c.YVar, c.OutFile = args[0], args[1], args[2], args[3], args[4]
	return nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	for name, v := range map[string]string{
		"xfile": c.XFile, "xvar": c.XVar,
		"yfile": c.YFile, "yvar": c.YVar,
		"ofile": c.OutFile,
	} {
		if v == "" {
			return fmt.Errorf("%w: %s is required", domain.ErrInvalidConfig, name)
		}
	}
	if _, err := render.Format(c.OutFile); err != nil {
		return err
	}

	if len(c.Colour) != 0 && len(c.Colour) != 2 {
		return fmt.Errorf("%w: --colour takes FILE VAR", domain.ErrInvalidConfig)
	}
	if len(c.Filter) != 0 && len(c.Filter) != 2 {
		return fmt.Errorf("%w: --filter takes METRIC THRESHOLD", domain.ErrInvalidConfig)
	}
	if c.CLatSet && len(c.Colour) == 0 {
		return fmt.Errorf("%w: --clat requires --colour", domain.ErrInvalidConfig)
	}
	if len(c.Filter) == 2 {
		if _, err := domain.ParseThresholdSpec(c.Filter[0], c.Filter[1]); err != nil {
			return err
		}
	}

	if c.Thin < 1 {
		return fmt.Errorf("%w: thin must be at least 1", domain.ErrInvalidConfig)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: width and height must be positive", domain.ErrInvalidConfig)
	}
	if c.DPI <= 0 {
		return fmt.Errorf("%w: dpi must be positive", domain.ErrInvalidConfig)
	}
	if c.PointSize <= 0 {
		return fmt.Errorf("%w: point size must be positive", domain.ErrInvalidConfig)
	}
	if _, err := render.ParseColour(c.TrendColour); err != nil {
		return fmt.Errorf("trend colour: %w", err)
	}
	if _, err := render.ParseColour(c.PointColour); err != nil {
		return fmt.Errorf("point colour: %w", err)
	}
	if _, err := render.ColorMap(c.CMap); err != nil {
		return err
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log level %q", domain.ErrInvalidConfig, c.LogLevel)
	}
	return nil
}

// overrides applies file and environment values to Config fields. Keys are
// flag names; a value is skipped when its flag was given on the command line.
type overrides map[string]bool

// setString assigns a non-empty value.
func (o overrides) setString(flag, value string, dst *string) {
	if value != "" && !o[flag] {
		*dst = value
	}
}

// setBool assigns a value that was present in the source.
func (o overrides) setBool(flag string, value *bool, dst *bool) {
	if value != nil && !o[flag] {
		*dst = *value
	}
}

// setPositive assigns a value above zero. Zero and negative values mean
// "not set" in file and environment sources.
func setPositive[T int | float64](o overrides, flag string, value T, dst *T) {
	if value > 0 && !o[flag] {
		*dst = value
	}
}

// parsePositive parses a raw environment value and assigns it with
// setPositive. An unparsable value is an ErrInvalidConfig.
func parsePositive[T int | float64](o overrides, flag, raw string, parse func(string) (T, error), dst *T) error {
	if raw == "" || o[flag] {
		return nil
	}
	v, err := parse(raw)
	if err != nil {
		return fmt.Errorf("%w: parse %s: %v", domain.ErrInvalidConfig, flag, err)
	}
	setPositive(o, flag, v, dst)
	return nil
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

// envBool reads "true" or "1" as true and any other non-empty value as
// false. It returns nil for an unset variable.
func envBool(raw string) *bool {
	if raw == "" {
		return nil
	}
	v := raw == "true" || raw == "1"
	return &v
}
