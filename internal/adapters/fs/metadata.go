package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/bft-labs/gridscatter/internal/domain"
)

// MetadataExt is the extension of lineage sidecar files.
const MetadataExt = ".met"

// sidecar is the on-disk layout of a lineage file.
type sidecar struct {
	History    string                         `toml:"history"`
	Invocation domain.Invocation              `toml:"invocation"`
	Sources    map[string]domain.SourceRecord `toml:"sources"`
}

// MetadataFileWriter implements ports.MetadataWriter with a TOML sidecar
// file next to the output image.
type MetadataFileWriter struct{}

// NewMetadataFileWriter creates a new MetadataFileWriter.
func NewMetadataFileWriter() *MetadataFileWriter {
	return &MetadataFileWriter{}
}

// SidecarPath returns the lineage file path for an output image:
// the image path with its extension replaced by ".met".
func SidecarPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + MetadataExt
}

// Write encodes lineage as TOML into the sidecar of path.
func (w *MetadataFileWriter) Write(ctx context.Context, path string, lineage *domain.Lineage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !FileExists(path) {
		return fmt.Errorf("%w: %s", domain.ErrOutputMissing, path)
	}

	doc := sidecar{
		History:    lineage.HistoryLine(),
		Invocation: lineage.Invocation,
		Sources:    lineage.Sources,
	}
	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	return WriteFileAtomic(SidecarPath(path), data, 0o644)
}

// ReadMetadata decodes a sidecar file written by MetadataFileWriter.
func ReadMetadata(path string) (*domain.Lineage, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	var doc sidecar
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, "", fmt.Errorf("decode metadata: %w", err)
	}
	return &domain.Lineage{Invocation: doc.Invocation, Sources: doc.Sources}, doc.History, nil
}
