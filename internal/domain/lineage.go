package domain

import "time"

// Invocation records how an output was produced.
type Invocation struct {
	RunID      string            `toml:"run_id"`
	Created    time.Time         `toml:"created"`
	Command    string            `toml:"command"`
	Version    string            `toml:"version"`
	Parameters map[string]string `toml:"parameters,omitempty"`
}

// SourceRecord is the provenance of one input file.
type SourceRecord struct {
	Variables []string `toml:"variables"`
	History   string   `toml:"history"`
}

// Lineage is the provenance written next to an output image, keyed by
// source file path.
type Lineage struct {
	Invocation Invocation              `toml:"invocation"`
	Sources    map[string]SourceRecord `toml:"sources"`
}

// NewLineage creates an empty lineage for the given invocation.
func NewLineage(inv Invocation) *Lineage {
	return &Lineage{Invocation: inv, Sources: make(map[string]SourceRecord)}
}

// AddSource records that variable was read from path with the given history.
// Reading several variables from the same file keeps one record.
func (l *Lineage) AddSource(path, variable, history string) {
	rec := l.Sources[path]
	for _, v := range rec.Variables {
		if v == variable {
			l.Sources[path] = rec
			return
		}
	}
	rec.Variables = append(rec.Variables, variable)
	if rec.History == "" {
		rec.History = history
	}
	l.Sources[path] = rec
}

// HistoryLine renders the invocation as a single history entry in the
// "<timestamp>: <command>" form used by netCDF tools.
func (l *Lineage) HistoryLine() string {
	line := l.Invocation.Created.UTC().Format(time.RFC3339) + ": " + l.Invocation.Command
	if l.Invocation.Version != "" {
		line += " (gridscatter " + l.Invocation.Version + ")"
	}
	return line
}
