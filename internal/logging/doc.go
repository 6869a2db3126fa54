// Package logging assembles structured slog loggers and formatting helpers
// used across the matching pipeline.
//
// It owns the console/JSON handler plumbing, centralizes level parsing and
// output routing, and exposes context-aware helpers so stage code can
// automatically tag log lines with run IDs, stages, and dataset names. The
// package also provides a no-op logger for tests and wiring code that cannot
// fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits data with the same shape.
package logging
