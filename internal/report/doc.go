// Package report renders run results for humans: console previews of result
// tables and the HTML run report written next to the output files.
package report
