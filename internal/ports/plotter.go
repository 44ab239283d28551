package ports

import (
	"context"

	"github.com/bft-labs/gridscatter/internal/domain"
)

// Plotter renders scatter data to an image file.
type Plotter interface {
	// Render draws data according to spec and writes the image to path,
	// replacing any existing file. No file is left behind on failure.
	Render(ctx context.Context, path string, data domain.PlotData, spec domain.PlotSpec) error
}
