// Package table implements the immutable string-table substrate the matching
// pipeline is built on: projection, renaming, filtering, inner joins,
// deduplication, and concatenation over small in-memory tables.
//
// Every cell is a string on purpose. CAS registry numbers carry leading
// zeros and formatting that numeric types would destroy, so nothing in the
// pipeline ever parses cells into numbers.
package table
