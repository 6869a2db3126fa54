// Package matching implements the two matching passes at the core of the
// pipeline: exact matching on normalized CAS registry numbers, and synonym
// candidate matching over the bridge relation for whatever the exact pass
// left unmatched.
package matching
