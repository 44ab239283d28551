// Package transform implements the data preparation steps between reading
// and plotting: alignment of series into a table, z-score normalisation,
// threshold filtering, thinning and the linear trend fit.
//
// All functions are pure apart from the documented in-place table updates.
package transform
