// Package netcdf implements ports.DatasetReader for netCDF files using the
// pure-Go go-native-netcdf library (netCDF classic and netCDF-4/HDF5).
package netcdf

import (
	"context"
	"fmt"
	"math"
	"slices"
	"sort"
	"strconv"

	"github.com/bft-labs/gridscatter/internal/domain"
	"github.com/bft-labs/gridscatter/internal/ports"
)

// Reader loads variables from netCDF files.
type Reader struct {
	open   opener
	logger ports.Logger
}

// NewReader creates a netCDF reader.
func NewReader(logger ports.Logger) *Reader {
	return &Reader{open: openFile, logger: logger}
}

// coordinate holds the labels and numeric positions of one dimension.
type coordinate struct {
	name   string
	values []float64
	labels []string
}

// Read implements ports.DatasetReader.
func (r *Reader) Read(ctx context.Context, req ports.ReadRequest) (ports.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return ports.Dataset{}, err
	}
	src, release, err := r.open(req.Path)
	if err != nil {
		return ports.Dataset{}, fmt.Errorf("open %s: %w", req.Path, err)
	}
	defer release()

	ds, err := r.read(src, req)
	if err != nil {
		return ports.Dataset{}, fmt.Errorf("%s: %w", req.Path, err)
	}
	return ds, nil
}

func (r *Reader) read(src source, req ports.ReadRequest) (ports.Dataset, error) {
	names := src.Variables()
	if !slices.Contains(names, req.Variable) {
		return ports.Dataset{}, fmt.Errorf("%w: %q (file has %v)", domain.ErrMissingVariable, req.Variable, names)
	}
	v, err := src.Variable(req.Variable)
	if err != nil {
		return ports.Dataset{}, fmt.Errorf("read %q: %w", req.Variable, err)
	}

	arr, err := newArray(v.Values)
	if err != nil {
		return ports.Dataset{}, fmt.Errorf("read %q: %w", req.Variable, err)
	}
	if len(arr.shape) != len(v.Dims) {
		return ports.Dataset{}, fmt.Errorf("read %q: rank %d does not match dimensions %v", req.Variable, len(arr.shape), v.Dims)
	}
	unpack(arr.data, v.Attrs)

	coords := make([]coordinate, len(v.Dims))
	for i, dim := range v.Dims {
		c, err := r.coordinate(src, dim, arr.shape[i])
		if err != nil {
			return ports.Dataset{}, err
		}
		coords[i] = c
	}

	keys := make([]string, 0, len(req.Subset))
	for k := range req.Subset {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, name := range keys {
		d := slices.IndexFunc(coords, func(c coordinate) bool { return c.name == name })
		if d < 0 {
			return ports.Dataset{}, fmt.Errorf("%w: coordinate %q is not a dimension of %q %v", domain.ErrMissingVariable, name, req.Variable, v.Dims)
		}
		k := domain.Nearest(coords[d].values, req.Subset[name])
		if k < 0 {
			return ports.Dataset{}, fmt.Errorf("%w: coordinate %q has no usable values", domain.ErrMissingVariable, name)
		}
		r.logger.Debug("nearest grid point",
			ports.String("coordinate", name),
			ports.Float64("requested", req.Subset[name]),
			ports.Float64("selected", coords[d].values[k]),
		)
		arr = arr.take(d, k)
		coords = slices.Delete(coords, d, d+1)
	}

	series, err := toSeries(req.Variable, arr, coords)
	if err != nil {
		return ports.Dataset{}, err
	}

	history := ""
	if h, ok := src.Attr("history"); ok {
		if s, ok := h.(string); ok {
			history = s
		}
	}
	return ports.Dataset{Series: series, History: history}, nil
}

// coordinate loads the coordinate variable for dim, falling back to integer
// positions when the file has none.
func (r *Reader) coordinate(src source, dim string, n int) (coordinate, error) {
	c := coordinate{name: dim, values: make([]float64, n), labels: make([]string, n)}
	if !slices.Contains(src.Variables(), dim) {
		for i := range c.values {
			c.values[i] = float64(i)
			c.labels[i] = strconv.Itoa(i)
		}
		return c, nil
	}

	v, err := src.Variable(dim)
	if err != nil {
		return coordinate{}, fmt.Errorf("read coordinate %q: %w", dim, err)
	}
	arr, err := newArray(v.Values)
	if err != nil {
		return coordinate{}, fmt.Errorf("read coordinate %q: %w", dim, err)
	}
	if len(arr.data) != n {
		return coordinate{}, fmt.Errorf("coordinate %q has %d values, dimension has %d", dim, len(arr.data), n)
	}
	unpack(arr.data, v.Attrs)
	copy(c.values, arr.data)

	ct, isTime, err := parseCFTime(attrString(v.Attrs, "units"), attrString(v.Attrs, "calendar"))
	if err != nil {
		return coordinate{}, fmt.Errorf("coordinate %q: %w", dim, err)
	}
	if !isTime && attrString(v.Attrs, "calendar") != "" {
		r.logger.Warn("unsupported calendar, keeping numeric time labels",
			ports.String("coordinate", dim),
			ports.String("calendar", attrString(v.Attrs, "calendar")),
		)
	}
	for i, x := range c.values {
		if isTime && !math.IsNaN(x) && !math.IsInf(x, 0) {
			c.labels[i] = domain.FormatTime(ct.At(x))
		} else {
			c.labels[i] = domain.FormatCoordinate(x)
		}
	}
	return c, nil
}

// toSeries labels every element of arr with the coordinates of its position.
func toSeries(name string, arr array, coords []coordinate) (domain.Series, error) {
	dims := make([]string, len(coords))
	for i, c := range coords {
		dims[i] = c.name
	}

	index := make([]string, len(arr.data))
	pos := make([]int, len(arr.shape))
	parts := make([]string, len(arr.shape))
	for flat := range arr.data {
		for d := range pos {
			parts[d] = coords[d].labels[pos[d]]
		}
		index[flat] = domain.JoinLabel(parts)

		// row-major increment
		for d := len(pos) - 1; d >= 0; d-- {
			pos[d]++
			if pos[d] < arr.shape[d] {
				break
			}
			pos[d] = 0
		}
	}
	return domain.NewSeries(name, dims, index, slices.Clone(arr.data))
}
