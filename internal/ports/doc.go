// Package ports defines the interfaces (ports) that connect the pipeline
// driver to infrastructure adapters.
//
// # Port Interfaces
//
//   - [DatasetReader]: loads one variable from a data file as a labelled series
//   - [Plotter]: renders prepared scatter data to an image file
//   - [MetadataWriter]: records provenance next to the output image
//   - [Logger]: structured logging abstraction
//
// # Usage
//
// The pipeline (internal/app) depends only on these interfaces.
// Adapters (internal/adapters) implement them with netCDF and CSV readers,
// gonum/plot rendering, TOML sidecar files and zerolog.
package ports
