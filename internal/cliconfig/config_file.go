package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/bft-labs/gridscatter/internal/domain"
)

// FileConfig holds the presentation options that may be set in a TOML file.
type FileConfig struct {
	CMap        string  `toml:"cmap"`
	TrendColour string  `toml:"trend_colour"`
	Thin        int     `toml:"thin"`
	ZeroLines   *bool   `toml:"zero_lines"`
	TrendLine   *bool   `toml:"trend_line"`
	Normalise   *bool   `toml:"normalise"`
	Width       float64 `toml:"width"`
	Height      float64 `toml:"height"`
	DPI         int     `toml:"dpi"`
	PointSize   float64 `toml:"point_size"`
	PointColour string  `toml:"point_colour"`
	LogLevel    string  `toml:"log_level"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
// Unknown keys are rejected.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	f, err := os.Open(path)
	if err != nil {
		return fc, err
	}
	defer f.Close()

	dec := toml.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fc); err != nil {
		return fc, fmt.Errorf("%w: %s: %v", domain.ErrInvalidConfig, path, err)
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.gridscatter/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".gridscatter", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) {
	o := overrides(changed)

	o.setString("cmap", fc.CMap, &cfg.CMap)
	o.setString("trend-colour", fc.TrendColour, &cfg.TrendColour)
	o.setString("point-colour", fc.PointColour, &cfg.PointColour)
	o.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	setPositive(o, "thin", fc.Thin, &cfg.Thin)
	setPositive(o, "dpi", fc.DPI, &cfg.DPI)
	setPositive(o, "width", fc.Width, &cfg.Width)
	setPositive(o, "height", fc.Height, &cfg.Height)
	setPositive(o, "point-size", fc.PointSize, &cfg.PointSize)

	o.setBool("zero-lines", fc.ZeroLines, &cfg.ZeroLines)
	o.setBool("trend-line", fc.TrendLine, &cfg.TrendLine)
	o.setBool("normalise", fc.Normalise, &cfg.Normalise)
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
