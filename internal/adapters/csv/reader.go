// Package csv implements ports.DatasetReader for comma separated tables.
//
// The first column is the index. Comment lines of the form "# key: value"
// before the header are file attributes; "# history: ..." supplies the
// history returned with the dataset.
package csv

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/bft-labs/gridscatter/internal/domain"
	"github.com/bft-labs/gridscatter/internal/ports"
)

// Reader loads columns from CSV files.
type Reader struct {
	logger ports.Logger
}

// NewReader creates a CSV reader.
func NewReader(logger ports.Logger) *Reader {
	return &Reader{logger: logger}
}

// Read implements ports.DatasetReader.
func (r *Reader) Read(ctx context.Context, req ports.ReadRequest) (ports.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return ports.Dataset{}, err
	}
	f, err := os.Open(req.Path)
	if err != nil {
		return ports.Dataset{}, err
	}
	defer f.Close()

	ds, err := r.ReadFrom(f, req)
	if err != nil {
		return ports.Dataset{}, fmt.Errorf("%s: %w", req.Path, err)
	}
	return ds, nil
}

// ReadFrom parses a table from rd.
func (r *Reader) ReadFrom(rd io.Reader, req ports.ReadRequest) (ports.Dataset, error) {
	br := bufio.NewReader(rd)
	attrs, err := readAttributes(br)
	if err != nil {
		return ports.Dataset{}, err
	}

	cr := csv.NewReader(br)
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return ports.Dataset{}, fmt.Errorf("%w: empty table", domain.ErrParse)
	}
	if err != nil {
		return ports.Dataset{}, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	if len(header) < 2 {
		return ports.Dataset{}, fmt.Errorf("%w: need an index column and at least one value column", domain.ErrParse)
	}

	col := slices.Index(header[1:], req.Variable) + 1
	if col == 0 {
		return ports.Dataset{}, fmt.Errorf("%w: %q (table has %v)", domain.ErrMissingVariable, req.Variable, header[1:])
	}

	records, err := cr.ReadAll()
	if err != nil {
		return ports.Dataset{}, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}

	keep := make([]bool, len(records))
	for i := range keep {
		keep[i] = true
	}
	if err := r.subset(header, records, req.Subset, keep); err != nil {
		return ports.Dataset{}, err
	}

	var index []string
	var values []float64
	for i, rec := range records {
		if !keep[i] {
			continue
		}
		v, err := parseValue(rec[col])
		if err != nil {
			return ports.Dataset{}, fmt.Errorf("%w: row %d column %q: %v", domain.ErrParse, i+1, req.Variable, err)
		}
		index = append(index, strings.TrimSpace(rec[0]))
		values = append(values, v)
	}

	series, err := domain.NewSeries(req.Variable, []string{header[0]}, index, values)
	if err != nil {
		return ports.Dataset{}, err
	}
	return ports.Dataset{Series: series, History: attrs["history"]}, nil
}

// subset clears keep for rows whose coordinate differs from the value
// nearest to the requested one.
func (r *Reader) subset(header []string, records [][]string, sel map[string]float64, keep []bool) error {
	names := make([]string, 0, len(sel))
	for k := range sel {
		names = append(names, k)
	}
	sort.Strings(names)

	for _, name := range names {
		col := slices.Index(header, name)
		if col < 0 {
			return fmt.Errorf("%w: coordinate %q is not a column (table has %v)", domain.ErrMissingVariable, name, header)
		}
		coords := make([]float64, len(records))
		for i, rec := range records {
			v, err := parseValue(rec[col])
			if err != nil {
				return fmt.Errorf("%w: row %d coordinate %q: %v", domain.ErrParse, i+1, name, err)
			}
			coords[i] = v
		}
		k := domain.Nearest(coords, sel[name])
		if k < 0 {
			return fmt.Errorf("%w: coordinate %q has no usable values", domain.ErrMissingVariable, name)
		}
		r.logger.Debug("nearest coordinate value",
			ports.String("coordinate", name),
			ports.Float64("requested", sel[name]),
			ports.Float64("selected", coords[k]),
		)
		for i, c := range coords {
			if c != coords[k] {
				keep[i] = false
			}
		}
	}
	return nil
}

// readAttributes consumes leading "# key: value" lines.
func readAttributes(br *bufio.Reader) (map[string]string, error) {
	attrs := make(map[string]string)
	for {
		peek, err := br.Peek(1)
		if err != nil || peek[0] != '#' {
			return attrs, nil
		}
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		key, value, ok := strings.Cut(strings.TrimPrefix(strings.TrimSpace(line), "#"), ":")
		if ok {
			attrs[strings.TrimSpace(key)] = strings.TrimSpace(value)
		}
		if errors.Is(err, io.EOF) {
			return attrs, nil
		}
	}
}

func parseValue(s string) (float64, error) {
	s = strings.TrimSpace(strings.Trim(s, "\""))
	switch s {
	case "", "NA", "NaN", "nan", "null":
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}
