package cliconfig

import (
	"errors"
	"strconv"
	"testing"

	"github.com/bft-labs/gridscatter/internal/domain"
)

func TestApplyEnvConfig(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		changed  map[string]bool
		initial  Config
		expected Config
		wantErr  bool
	}{
		{
			name: "applies all valid env vars",
			envVars: map[string]string{
				"GRIDSCATTER_CMAP":         "Blues",
				"GRIDSCATTER_THIN":         "10",
				"GRIDSCATTER_WIDTH":        "5.5",
				"GRIDSCATTER_ZERO_LINES":   "true",
				"GRIDSCATTER_POINT_COLOUR": "navy",
				"GRIDSCATTER_LOG_LEVEL":    "warn",
			},
			changed: map[string]bool{},
			initial: Config{},
			expected: Config{
				CMap:        "Blues",
				Thin:        10,
				Width:       5.5,
				ZeroLines:   true,
				PointColour: "navy",
				LogLevel:    "warn",
			},
		},
		{
			name: "respects changed flags",
			envVars: map[string]string{
				"GRIDSCATTER_CMAP": "Blues",
				"GRIDSCATTER_THIN": "10",
			},
			changed: map[string]bool{"thin": true},
			initial: Config{Thin: 2},
			expected: Config{
				CMap: "Blues",
				Thin: 2,
			},
		},
		{
			name: "returns error for invalid int",
			envVars: map[string]string{
				"GRIDSCATTER_DPI": "not-a-number",
			},
			changed: map[string]bool{},
			wantErr: true,
		},
		{
			name: "returns error for invalid float",
			envVars: map[string]string{
				"GRIDSCATTER_HEIGHT": "tall",
			},
			changed: map[string]bool{},
			wantErr: true,
		},
		{
			name: "handles bool '1' as true",
			envVars: map[string]string{
				"GRIDSCATTER_TREND_LINE": "1",
			},
			changed:  map[string]bool{},
			initial:  Config{},
			expected: Config{TrendLine: true},
		},
		{
			name: "handles bool 'false' as false",
			envVars: map[string]string{
				"GRIDSCATTER_NORMALISE": "false",
			},
			changed:  map[string]bool{},
			initial:  Config{Normalise: true},
			expected: Config{Normalise: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg := tt.initial
			err := ApplyEnvConfig(&cfg, tt.changed)

			if tt.wantErr {
				if err == nil {
					t.Error("ApplyEnvConfig() expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyEnvConfig() unexpected error: %v", err)
			}

			if cfg.CMap != tt.expected.CMap {
				t.Errorf("CMap = %v, want %v", cfg.CMap, tt.expected.CMap)
			}
			if cfg.Thin != tt.expected.Thin {
				t.Errorf("Thin = %v, want %v", cfg.Thin, tt.expected.Thin)
			}
			if cfg.Width != tt.expected.Width {
				t.Errorf("Width = %v, want %v", cfg.Width, tt.expected.Width)
			}
			if cfg.ZeroLines != tt.expected.ZeroLines {
				t.Errorf("ZeroLines = %v, want %v", cfg.ZeroLines, tt.expected.ZeroLines)
			}
			if cfg.TrendLine != tt.expected.TrendLine {
				t.Errorf("TrendLine = %v, want %v", cfg.TrendLine, tt.expected.TrendLine)
			}
			if cfg.Normalise != tt.expected.Normalise {
				t.Errorf("Normalise = %v, want %v", cfg.Normalise, tt.expected.Normalise)
			}
			if cfg.PointColour != tt.expected.PointColour {
				t.Errorf("PointColour = %v, want %v", cfg.PointColour, tt.expected.PointColour)
			}
			if cfg.LogLevel != tt.expected.LogLevel {
				t.Errorf("LogLevel = %v, want %v", cfg.LogLevel, tt.expected.LogLevel)
			}
		})
	}
}

// Integration test: precedence order (CLI > Env > File)
func TestConfigPrecedence(t *testing.T) {
	trueVal := true

	fileConf := FileConfig{
		CMap:      "Greens",
		Thin:      3,
		DPI:       200,
		ZeroLines: &trueVal,
	}

	t.Setenv("GRIDSCATTER_THIN", "7")
	t.Setenv("GRIDSCATTER_CMAP", "Purples")

	// Simulate CLI flags
	changed := map[string]bool{
		"cmap": true,
	}

	cfg := DefaultConfig()
	cfg.CMap = "Oranges" // This should remain (CLI wins)

	ApplyFileConfig(&cfg, fileConf, changed)
	if err := ApplyEnvConfig(&cfg, changed); err != nil {
		t.Fatalf("ApplyEnvConfig failed: %v", err)
	}

	if cfg.CMap != "Oranges" {
		t.Errorf("CMap = %v, want Oranges (CLI should win)", cfg.CMap)
	}
	if cfg.Thin != 7 {
		t.Errorf("Thin = %v, want 7 (env should override file)", cfg.Thin)
	}
	if cfg.DPI != 200 {
		t.Errorf("DPI = %v, want 200 (file should set)", cfg.DPI)
	}
	if !cfg.ZeroLines {
		t.Error("ZeroLines = false, want true (file should set)")
	}
}

func TestParsePositive(t *testing.T) {
	dpi := 100
	o := overrides{"thin": true}

	if err := parsePositive(o, "dpi", "-5", strconv.Atoi, &dpi); err != nil || dpi != 100 {
		t.Errorf("negative value: dpi = %d, err = %v; want 100, nil", dpi, err)
	}
	if err := parsePositive(o, "dpi", "300", strconv.Atoi, &dpi); err != nil || dpi != 300 {
		t.Errorf("valid value: dpi = %d, err = %v; want 300, nil", dpi, err)
	}
	thin := 2
	if err := parsePositive(o, "thin", "x", strconv.Atoi, &thin); err != nil || thin != 2 {
		t.Errorf("flag set: thin = %d, err = %v; want 2, nil", thin, err)
	}
	if err := parsePositive(o, "dpi", "lots", strconv.Atoi, &dpi); !errors.Is(err, domain.ErrInvalidConfig) {
		t.Errorf("invalid value: err = %v, want ErrInvalidConfig", err)
	}
}
