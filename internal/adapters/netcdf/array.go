package netcdf

import (
	"fmt"
	"math"
	"reflect"
)

// array is a dense row-major n-dimensional float64 array.
type array struct {
	data  []float64
	shape []int
}

// newArray flattens the values of a variable. The library returns scalars
// for 0-d variables, slices for 1-d and nested slices for higher ranks.
func newArray(values interface{}) (array, error) {
	if values == nil {
		return array{}, fmt.Errorf("variable has no values")
	}
	rv := reflect.ValueOf(values)

	var shape []int
	for v := rv; v.Kind() == reflect.Slice; v = v.Index(0) {
		shape = append(shape, v.Len())
		if v.Len() == 0 {
			break
		}
	}

	data := make([]float64, 0, product(shape))
	var walk func(v reflect.Value, depth int) error
	walk = func(v reflect.Value, depth int) error {
		if depth == len(shape) {
			f, ok := toFloat(v)
			if !ok {
				return fmt.Errorf("unsupported element type %s", v.Type())
			}
			data = append(data, f)
			return nil
		}
		if v.Len() != shape[depth] {
			return fmt.Errorf("ragged array at depth %d: %d != %d", depth, v.Len(), shape[depth])
		}
		for i := 0; i < v.Len(); i++ {
			if err := walk(v.Index(i), depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(rv, 0); err != nil {
		return array{}, err
	}
	return array{data: data, shape: shape}, nil
}

// take selects position k along dimension d, dropping that dimension.
func (a array) take(d, k int) array {
	outer := product(a.shape[:d])
	n := a.shape[d]
	inner := product(a.shape[d+1:])

	out := make([]float64, 0, outer*inner)
	for o := 0; o < outer; o++ {
		start := (o*n + k) * inner
		out = append(out, a.data[start:start+inner]...)
	}
	shape := append(append([]int{}, a.shape[:d]...), a.shape[d+1:]...)
	return array{data: out, shape: shape}
}

func product(dims []int) int {
	p := 1
	for _, d := range dims {
		p *= d
	}
	return p
}

func toFloat(v reflect.Value) (float64, bool) {
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	case reflect.Interface:
		if v.IsNil() {
			return math.NaN(), true
		}
		return toFloat(v.Elem())
	}
	return 0, false
}

// attrFloat reads a numeric attribute that may be stored as a scalar or a
// one-element slice.
func attrFloat(attrs map[string]interface{}, name string) (float64, bool) {
	raw, ok := attrs[name]
	if !ok || raw == nil {
		return 0, false
	}
	rv := reflect.ValueOf(raw)
	if rv.Kind() == reflect.Slice {
		if rv.Len() == 0 {
			return 0, false
		}
		rv = rv.Index(0)
	}
	return toFloat(rv)
}

// attrString reads a text attribute.
func attrString(attrs map[string]interface{}, name string) string {
	if s, ok := attrs[name].(string); ok {
		return s
	}
	return ""
}

// unpack applies CF packing conventions in place: fill and missing values
// become NaN, then scale_factor and add_offset are applied.
func unpack(data []float64, attrs map[string]interface{}) {
	fill, hasFill := attrFloat(attrs, "_FillValue")
	missing, hasMissing := attrFloat(attrs, "missing_value")
	scale, hasScale := attrFloat(attrs, "scale_factor")
	offset, hasOffset := attrFloat(attrs, "add_offset")

	for i, v := range data {
		if (hasFill && v == fill) || (hasMissing && v == missing) {
			data[i] = math.NaN()
			continue
		}
		if hasScale {
			v *= scale
		}
		if hasOffset {
			v += offset
		}
		data[i] = v
	}
}
