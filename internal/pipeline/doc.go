// Package pipeline orchestrates a single batch pass of the matching
// pipeline: loading the five source tables, building the synonym bridge,
// running the exact and synonym matching passes, and committing the paired
// result files.
//
// A run holds a file lock on the data directory for its duration and commits
// both outputs together or not at all.
package pipeline
