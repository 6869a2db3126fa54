// Package services defines shared utilities consumed by the matching pipeline
// stages.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers, stage names, and dataset
//     names for logging.
//   - Structured error markers plus the Wrap helper that keep failure
//     classification (load vs validation vs configuration) consistent across
//     stages.
//
// Use these helpers when wiring new stage logic so error handling and
// observability stay uniform across the pipeline.
package services
