package ports

import (
	"context"

	"github.com/bft-labs/gridscatter/internal/domain"
)

// ReadRequest names one variable to load.
type ReadRequest struct {
	Path     string
	Variable string

	// Subset maps coordinate names to the value whose nearest grid point
	// should be selected along that coordinate.
	Subset map[string]float64
}

// Dataset is a loaded variable and the provenance of its file.
type Dataset struct {
	Series  domain.Series
	History string
}

// DatasetReader loads named variables from data files.
type DatasetReader interface {
	// Read opens the file, loads the variable and closes the file.
	// Returns an error wrapping domain.ErrMissingVariable if the variable
	// or a subset coordinate does not exist.
	Read(ctx context.Context, req ReadRequest) (Dataset, error)
}
