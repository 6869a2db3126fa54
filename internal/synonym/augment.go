package synonym

import (
	"benchmatch/internal/dataset"
	"benchmatch/internal/table"
)

// WithSelfEdges returns the synonym edge table augmented with a reflexive
// edge (owner → its own name) for every distinct owner. This runs as an
// explicit preprocessing step on each side before the bridge join: the
// synonym service does not guarantee that pollutant A's list carries
// benchmark B's name or vice versa, so each side must contribute its own name
// as a trivial synonym for the bridge to be symmetric-safe.
func WithSelfEdges(edges *table.Table, ownerColumn string) (*table.Table, error) {
	owners, err := edges.Values(ownerColumn)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(owners))
	reflexive := make([][]string, 0, len(owners))
	for _, owner := range owners {
		if owner == "" {
			continue
		}
		if _, dup := seen[owner]; dup {
			continue
		}
		seen[owner] = struct{}{}
		reflexive = append(reflexive, []string{owner, owner})
	}
	selfEdges, err := table.New([]string{ownerColumn, dataset.ColSynonym}, reflexive)
	if err != nil {
		return nil, err
	}
	return edges.Concat(selfEdges)
}
