// Package synonym builds the bridge relation connecting pollutants to
// benchmarks through shared alternate chemical names.
//
// Each side's edge set is first augmented with reflexive edges (every owner
// is a synonym of itself), then the two sets are inner-joined on folded
// synonym text. Keeping the reflexive step separate from the join keeps the
// bridge construction auditable in isolation.
package synonym
