package cliconfig

import (
	"os"
	"strconv"
)

// EnvPrefix prefixes every environment variable read by ApplyEnvConfig.
const EnvPrefix = "GRIDSCATTER_"

// ApplyEnvConfig applies configuration from environment variables (GRIDSCATTER_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	o := overrides(changed)
	env := func(name string) string { return os.Getenv(EnvPrefix + name) }

	o.setString("cmap", env("CMAP"), &cfg.CMap)
	o.setString("trend-colour", env("TREND_COLOUR"), &cfg.TrendColour)
	o.setString("point-colour", env("POINT_COLOUR"), &cfg.PointColour)
	o.setString("log-level", env("LOG_LEVEL"), &cfg.LogLevel)

	for _, f := range []struct {
		flag, env string
		dst       *int
	}{
		{"thin", "THIN", &cfg.Thin},
		{"dpi", "DPI", &cfg.DPI},
	} {
		if err := parsePositive(o, f.flag, env(f.env), strconv.Atoi, f.dst); err != nil {
			return err
		}
	}
	for _, f := range []struct {
		flag, env string
		dst       *float64
	}{
		{"width", "WIDTH", &cfg.Width},
		{"height", "HEIGHT", &cfg.Height},
		{"point-size", "POINT_SIZE", &cfg.PointSize},
	} {
		if err := parsePositive(o, f.flag, env(f.env), parseFloat, f.dst); err != nil {
			return err
		}
	}

	o.setBool("zero-lines", envBool(env("ZERO_LINES")), &cfg.ZeroLines)
	o.setBool("trend-line", envBool(env("TREND_LINE")), &cfg.TrendLine)
	o.setBool("normalise", envBool(env("NORMALISE")), &cfg.Normalise)

	return nil
}
