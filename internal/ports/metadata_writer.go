package ports

import (
	"context"

	"github.com/bft-labs/gridscatter/internal/domain"
)

// MetadataWriter records the lineage of an output file.
type MetadataWriter interface {
	// Write stores lineage for the file at path. Returns an error wrapping
	// domain.ErrOutputMissing if that file does not exist.
	Write(ctx context.Context, path string, lineage *domain.Lineage) error
}
