package textutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var foldCaser = cases.Fold()

// FoldKey reduces a chemical name or synonym to a comparison key: Unicode
// NFKC normalization, case folding, and whitespace collapse. The synonym
// export service is inconsistent about case and spacing between the pollutant
// and benchmark sides, so joins run on folded keys while raw text is kept for
// display.
func FoldKey(value string) string {
	value = CleanCell(value)
	if value == "" {
		return ""
	}
	value = norm.NFKC.String(value)
	value = foldCaser.String(value)
	return strings.Join(strings.Fields(value), " ")
}
