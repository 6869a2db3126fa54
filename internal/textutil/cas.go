package textutil

import "strings"

// NormalizeCAS strips hyphens and whitespace from a CAS registry number so
// differently formatted sources compare equal ("333-41-5" and "333415" are the
// same substance). Sentinel values pass through untouched apart from trimming;
// filtering them is the caller's job because pollutant and benchmark sources
// use different sentinels.
func NormalizeCAS(cas string) string {
	cas = strings.TrimSpace(cas)
	if cas == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(cas))
	for _, r := range cas {
		if r == '-' || r == ' ' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
