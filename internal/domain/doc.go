// Package domain contains the core data types for gridscatter.
//
// This package has no dependencies on infrastructure concerns (file formats,
// rendering, logging) and contains only the data model and its invariants.
//
// # Entities
//
//   - [Series]: one labelled variable read from a data file
//   - [Table]: named columns aligned to a common index
//   - [ThresholdSpec]: a row filter resolved against a column at run time
//   - [PlotSpec] and [ColourSpec]: rendering options
//   - [Lineage]: provenance recorded next to the output image
package domain
