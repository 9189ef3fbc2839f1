// Package model defines the core data structures used throughout datemark.
//
// This package contains the following main types:
//   - Color: A 4-channel watermark color with hex/decimal parsing
//   - Anchor: The named watermark placement rule and its origin math
//   - FileResult: The typed per-file outcome of a stamping attempt
//   - RunReport: The summary of a single directory run
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (render, pipeline, report) need to use these
// types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output.
package model
