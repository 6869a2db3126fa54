package textutil

import "strings"

// nonBreakingReplacer maps the non-breaking space family to plain spaces.
// These show up in cells exported from spreadsheet tools and the synonym
// service and must never survive into output files.
var nonBreakingReplacer = strings.NewReplacer(
	" ", " ", // no-break space
	" ", " ", // figure space
	" ", " ", // narrow no-break space
	"\uFEFF", "", // byte order mark
)

// CleanCell normalizes a raw table cell. Non-breaking whitespace becomes
// regular whitespace, the result is trimmed, and missing-value artifacts
// ("nan", "NaN") collapse to the empty string, which is the explicit missing
// marker in output files.
func CleanCell(value string) string {
	value = strings.TrimSpace(nonBreakingReplacer.Replace(value))
	if strings.EqualFold(value, "nan") {
		return ""
	}
	return value
}
