package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	applog "github.com/bft-labs/gridscatter/internal/adapters/log"
	"github.com/bft-labs/gridscatter/internal/domain"
	"github.com/bft-labs/gridscatter/internal/ports"
)

type stubReader struct{ calls int }

func (s *stubReader) Read(context.Context, ports.ReadRequest) (ports.Dataset, error) {
	s.calls++
	return ports.Dataset{History: "stub"}, nil
}

func TestRouter_Dispatch(t *testing.T) {
	r := NewRouter(applog.NewNoopLogger())
	stub := &stubReader{}
	r.Register(stub, ".DAT")

	ds, err := r.Read(context.Background(), ports.ReadRequest{Path: "x/obs.dat", Variable: "v"})
	require.NoError(t, err)
	assert.Equal(t, "stub", ds.History)
	assert.Equal(t, 1, stub.calls)
}

func TestRouter_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.CSV")
	require.NoError(t, os.WriteFile(path, []byte("t,v\n1,2\n"), 0o644))

	r := NewRouter(applog.NewNoopLogger())
	ds, err := r.Read(context.Background(), ports.ReadRequest{Path: path, Variable: "v"})
	require.NoError(t, err)
	assert.Equal(t, []float64{2}, ds.Series.Values)
}

func TestRouter_Unsupported(t *testing.T) {
	r := NewRouter(applog.NewNoopLogger())
	_, err := r.Read(context.Background(), ports.ReadRequest{Path: "a.grib", Variable: "v"})
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}
