package matching

// Confidence describes how a match was established.
type Confidence string

const (
	// ConfidenceExact marks matches confirmed by shared CAS registry numbers.
	ConfidenceExact Confidence = "exact"
	// ConfidencePotential marks candidate matches found through the synonym
	// bridge. These narrow the search space for human review; they are not
	// asserted to be correct.
	ConfidencePotential Confidence = "potential"
)

// Describe returns the reviewer guidance for matches at this confidence.
func (c Confidence) Describe() string {
	switch c {
	case ConfidenceExact:
		return "Confirmed by shared CAS registry numbers."
	case ConfidencePotential:
		return "Bridged by shared synonyms; requires human review."
	default:
		return ""
	}
}
