package netcdf

import (
	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"
)

// variable is a decoded netCDF variable: raw (possibly nested) values,
// dimension names and attributes.
type variable struct {
	Values interface{}
	Dims   []string
	Attrs  map[string]interface{}
}

// source is the read-only view of an open file used by the Reader.
type source interface {
	Variables() []string
	Variable(name string) (variable, error)
	Attr(name string) (interface{}, bool)
}

// opener opens a file and returns its source and a function releasing it.
type opener func(path string) (source, func(), error)

// group adapts an api.Group from go-native-netcdf to source.
type group struct {
	g api.Group
}

func openFile(path string) (source, func(), error) {
	g, err := netcdf.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return group{g: g}, func() { g.Close() }, nil
}

func (n group) Variables() []string {
	return n.g.ListVariables()
}

func (n group) Variable(name string) (variable, error) {
	v, err := n.g.GetVariable(name)
	if err != nil {
		return variable{}, err
	}
	return variable{Values: v.Values, Dims: v.Dimensions, Attrs: attrMap(v.Attributes)}, nil
}

func (n group) Attr(name string) (interface{}, bool) {
	attrs := n.g.Attributes()
	if attrs == nil {
		return nil, false
	}
	return attrs.Get(name)
}

func attrMap(m api.AttributeMap) map[string]interface{} {
	out := make(map[string]interface{})
	if m == nil {
		return out
	}
	for _, k := range m.Keys() {
		if v, ok := m.Get(k); ok {
			out[k] = v
		}
	}
	return out
}
