package transform

import (
	"fmt"
	"math"

	"github.com/bft-labs/gridscatter/internal/domain"
)

// Align inner-joins series on their index labels, names the resulting
// columns and drops every row holding a missing value in any column.
// Row order follows the index order of the first series.
func Align(series []domain.Series, names []string) (*domain.Table, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("%w: nothing to align", domain.ErrAlignmentEmpty)
	}
	if len(series) != len(names) {
		return nil, fmt.Errorf("%w: %d column names for %d series", domain.ErrParse, len(names), len(series))
	}
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if _, dup := seen[n]; dup {
			return nil, fmt.Errorf("%w: duplicate column name %q", domain.ErrParse, n)
		}
		seen[n] = struct{}{}
	}

	lookups := make([]map[string]int, len(series))
	for i, s := range series {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		lookups[i] = make(map[string]int, len(s.Index))
		for pos, label := range s.Index {
			lookups[i][label] = pos
		}
	}

	var index []string
	rows := make([][]float64, len(series))
	for _, label := range series[0].Index {
		row := make([]float64, len(series))
		complete := true
		for i, s := range series {
			p, ok := lookups[i][label]
			if !ok {
				complete = false
				break
			}
			v := s.Values[p]
			if math.IsNaN(v) {
				complete = false
				break
			}
			row[i] = v
		}
		if !complete {
			continue
		}
		index = append(index, label)
		for i := range series {
			rows[i] = append(rows[i], row[i])
		}
	}

	if len(index) == 0 {
		return nil, fmt.Errorf("%w: %v share no complete rows", domain.ErrAlignmentEmpty, names)
	}

	t := domain.NewTable(index)
	for i, name := range names {
		if err := t.AddColumn(name, rows[i]); err != nil {
			return nil, err
		}
	}
	return t, nil
}
