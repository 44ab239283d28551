package domain

import "errors"

// Domain errors represent error conditions in the gridscatter pipeline.
// They are wrapped with context and can be checked with errors.Is.
var (
	// ErrMissingVariable is returned when a variable, coordinate or column
	// is not present in its source.
	ErrMissingVariable = errors.New("gridscatter: missing variable")

	// ErrAlignmentEmpty is returned when no rows survive alignment or filtering.
	ErrAlignmentEmpty = errors.New("gridscatter: no overlapping rows")

	// ErrParse is returned for malformed threshold expressions and arguments.
	ErrParse = errors.New("gridscatter: parse error")

	// ErrDegenerateDistribution is returned when a statistic is undefined,
	// e.g. normalising a column with zero standard deviation.
	ErrDegenerateDistribution = errors.New("gridscatter: degenerate distribution")

	// ErrDuplicateIndex is returned when a series repeats an index label.
	ErrDuplicateIndex = errors.New("gridscatter: duplicate index label")

	// ErrOutputMissing is returned when metadata is written for an image
	// that does not exist.
	ErrOutputMissing = errors.New("gridscatter: output file missing")

	// ErrUnsupportedFormat is returned for unknown input or output file types.
	ErrUnsupportedFormat = errors.New("gridscatter: unsupported format")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("gridscatter: invalid configuration")
)
