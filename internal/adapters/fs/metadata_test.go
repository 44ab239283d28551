package fs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bft-labs/gridscatter/internal/domain"
)

func TestSidecarPath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"out.png", "out.met"},
		{"/tmp/plots/scatter.v2.svg", "/tmp/plots/scatter.v2.met"},
		{"noext", "noext.met"},
	}
	for _, tt := range tests {
		if got := SidecarPath(tt.in); got != tt.want {
			t.Errorf("SidecarPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMetadataFileWriter_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "scatter.png")
	if err := os.WriteFile(img, []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}

	l := domain.NewLineage(domain.Invocation{
		RunID:      "run-1",
		Created:    time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Command:    "gridscatter a.nc nino34 b.nc sam scatter.png",
		Version:    "dev",
		Parameters: map[string]string{"thin": "1"},
	})
	l.AddSource("/data/a.nc", "nino34", "Mon Jan 1: cdo fldmean in.nc a.nc")
	l.AddSource("/data/b.nc", "sam", "")

	w := NewMetadataFileWriter()
	if err := w.Write(context.Background(), img, l); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, history, err := ReadMetadata(filepath.Join(dir, "scatter.met"))
	if err != nil {
		t.Fatalf("ReadMetadata: %v", err)
	}
	if history != l.HistoryLine() {
		t.Errorf("history = %q, want %q", history, l.HistoryLine())
	}
	if got.Invocation.RunID != "run-1" || got.Invocation.Parameters["thin"] != "1" {
		t.Errorf("invocation = %+v", got.Invocation)
	}
	if !got.Invocation.Created.Equal(l.Invocation.Created) {
		t.Errorf("created = %v, want %v", got.Invocation.Created, l.Invocation.Created)
	}
	src, ok := got.Sources["/data/a.nc"]
	if !ok {
		t.Fatalf("missing source record, have %v", got.Sources)
	}
	if src.History != "Mon Jan 1: cdo fldmean in.nc a.nc" || len(src.Variables) != 1 || src.Variables[0] != "nino34" {
		t.Errorf("source = %+v", src)
	}
}

func TestMetadataFileWriter_MissingOutput(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "never-rendered.png")

	err := NewMetadataFileWriter().Write(context.Background(), img, domain.NewLineage(domain.Invocation{}))
	if !errors.Is(err, domain.ErrOutputMissing) {
		t.Fatalf("error = %v, want ErrOutputMissing", err)
	}
	if FileExists(SidecarPath(img)) {
		t.Error("sidecar written for missing output")
	}
}

func TestWriteFileAtomic_Overwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "file.bin")

	if err := WriteFileAtomic(path, []byte("first"), 0o644); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := WriteFileAtomic(path, []byte("second"), 0o644); err != nil {
		t.Fatalf("second write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "second" {
		t.Errorf("content = %q, want second", data)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the target file, found %d entries", len(entries))
	}
}
