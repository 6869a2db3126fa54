// Package dataset owns the flat-file edges of the pipeline: loading the five
// CSV sources into normalized all-string tables with canonical column names,
// and committing the paired result files atomically (both or neither).
package dataset
