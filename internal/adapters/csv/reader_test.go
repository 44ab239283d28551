package csv

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	applog "github.com/bft-labs/gridscatter/internal/adapters/log"
	"github.com/bft-labs/gridscatter/internal/domain"
	"github.com/bft-labs/gridscatter/internal/ports"
)

const indices = `# history: 2024-01-01T00:00:00Z: ncks -v nino34 in.nc out.nc
# source: test
time,nino34,sam
1990-01,0.5,1.0
1990-02,-0.25,NA
1990-03,1.5,-2
`

func TestReader_ReadFrom(t *testing.T) {
	r := NewReader(applog.NewNoopLogger())
	ds, err := r.ReadFrom(strings.NewReader(indices), ports.ReadRequest{Variable: "sam"})
	require.NoError(t, err)

	assert.Equal(t, "2024-01-01T00:00:00Z: ncks -v nino34 in.nc out.nc", ds.History)
	assert.Equal(t, "sam", ds.Series.Name)
	assert.Equal(t, []string{"time"}, ds.Series.Dims)
	assert.Equal(t, []string{"1990-01", "1990-02", "1990-03"}, ds.Series.Index)
	require.Len(t, ds.Series.Values, 3)
	assert.Equal(t, 1.0, ds.Series.Values[0])
	assert.True(t, math.IsNaN(ds.Series.Values[1]))
	assert.Equal(t, -2.0, ds.Series.Values[2])
}

func TestReader_ReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "indices.csv")
	require.NoError(t, os.WriteFile(path, []byte(indices), 0o644))

	r := NewReader(applog.NewNoopLogger())
	ds, err := r.Read(context.Background(), ports.ReadRequest{Path: path, Variable: "nino34"})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, -0.25, 1.5}, ds.Series.Values)
}

func TestReader_MissingVariable(t *testing.T) {
	r := NewReader(applog.NewNoopLogger())
	_, err := r.ReadFrom(strings.NewReader(indices), ports.ReadRequest{Variable: "dmi"})
	assert.ErrorIs(t, err, domain.ErrMissingVariable)

	// the index column is not a variable
	_, err = r.ReadFrom(strings.NewReader(indices), ports.ReadRequest{Variable: "time"})
	assert.ErrorIs(t, err, domain.ErrMissingVariable)
}

func TestReader_Subset(t *testing.T) {
	data := `id,lat,sst
a,-10,1
b,10,2
c,10,3
d,30,4
`
	r := NewReader(applog.NewNoopLogger())
	ds, err := r.ReadFrom(strings.NewReader(data), ports.ReadRequest{
		Variable: "sst",
		Subset:   map[string]float64{"lat": 12},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, ds.Series.Index)
	assert.Equal(t, []float64{2, 3}, ds.Series.Values)

	_, err = r.ReadFrom(strings.NewReader(data), ports.ReadRequest{
		Variable: "sst",
		Subset:   map[string]float64{"depth": 5},
	})
	assert.ErrorIs(t, err, domain.ErrMissingVariable)
}

func TestReader_Errors(t *testing.T) {
	r := NewReader(applog.NewNoopLogger())

	tests := []struct {
		name string
		data string
		want error
	}{
		{"empty", "", domain.ErrParse},
		{"index only", "time\n1\n", domain.ErrParse},
		{"bad number", "time,v\n1,abc\n", domain.ErrParse},
		{"duplicate index", "time,v\n1,2\n1,3\n", domain.ErrDuplicateIndex},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.ReadFrom(strings.NewReader(tt.data), ports.ReadRequest{Variable: "v"})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
