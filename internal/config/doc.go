// Package config loads, normalizes, and validates benchmatch configuration
// data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// BENCHMATCH_DATA_DIR. The Config type centralizes every knob the CLI needs:
// input file locations, source header mappings, absent-CAS sentinels, output
// names, and logging.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
