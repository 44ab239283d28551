package render

import (
	"encoding/hex"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/bft-labs/gridscatter/internal/domain"
)

// shorthand holds the single-letter colour codes.
var shorthand = map[string]color.RGBA{
	"b": {R: 0, G: 0, B: 255, A: 255},
	"g": {R: 0, G: 128, B: 0, A: 255},
	"r": {R: 255, G: 0, B: 0, A: 255},
	"c": {R: 0, G: 191, B: 191, A: 255},
	"m": {R: 191, G: 0, B: 191, A: 255},
	"y": {R: 191, G: 191, B: 0, A: 255},
	"k": {R: 0, G: 0, B: 0, A: 255},
	"w": {R: 255, G: 255, B: 255, A: 255},
}

// ParseColour parses a colour given as a single-letter code, an X11/SVG
// colour name, "#rrggbb" or "#rrggbbaa", or a grey level between 0 and 1.
func ParseColour(s string) (color.Color, error) {
	s = strings.TrimSpace(s)
	if c, ok := shorthand[s]; ok {
		return c, nil
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return c, nil
	}
	if strings.HasPrefix(s, "#") {
		b, err := hex.DecodeString(s[1:])
		if err != nil || (len(b) != 3 && len(b) != 4) {
			return nil, fmt.Errorf("%w: colour %q", domain.ErrParse, s)
		}
		c := color.NRGBA{R: b[0], G: b[1], B: b[2], A: 255}
		if len(b) == 4 {
			c.A = b[3]
		}
		return c, nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil && v >= 0 && v <= 1 {
		g := uint8(v*255 + 0.5)
		return color.Gray{Y: g}, nil
	}
	return nil, fmt.Errorf("%w: unknown colour %q", domain.ErrParse, s)
}
