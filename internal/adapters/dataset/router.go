// Package dataset selects a ports.DatasetReader by file extension.
package dataset

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bft-labs/gridscatter/internal/adapters/csv"
	"github.com/bft-labs/gridscatter/internal/adapters/netcdf"
	"github.com/bft-labs/gridscatter/internal/domain"
	"github.com/bft-labs/gridscatter/internal/ports"
)

// Router dispatches reads to the reader registered for the file extension.
type Router struct {
	readers map[string]ports.DatasetReader
}

// NewRouter creates a Router with the netCDF and CSV readers registered.
func NewRouter(logger ports.Logger) *Router {
	r := &Router{readers: make(map[string]ports.DatasetReader)}
	r.Register(netcdf.NewReader(logger), ".nc", ".nc4", ".cdf", ".netcdf")
	r.Register(csv.NewReader(logger), ".csv")
	return r
}

// Register associates reader with the given extensions (case-insensitive).
func (r *Router) Register(reader ports.DatasetReader, exts ...string) {
	for _, ext := range exts {
		r.readers[strings.ToLower(ext)] = reader
	}
}

// Read implements ports.DatasetReader.
func (r *Router) Read(ctx context.Context, req ports.ReadRequest) (ports.Dataset, error) {
	ext := strings.ToLower(filepath.Ext(req.Path))
	reader, ok := r.readers[ext]
	if !ok {
		return ports.Dataset{}, fmt.Errorf("%w: input %q", domain.ErrUnsupportedFormat, req.Path)
	}
	return reader.Read(ctx, req)
}
