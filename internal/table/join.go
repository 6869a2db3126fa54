package table

import "fmt"

// JoinSpec configures an inner join between two tables.
type JoinSpec struct {
	LeftKey  string
	RightKey string
	// Fold maps key cells to comparison form before matching. Nil means
	// exact comparison. Output rows keep the left side's raw key cell.
	Fold func(string) string
}

// InnerJoin matches left rows to right rows on equal (optionally folded) key
// cells. The result carries every left column followed by every right column
// except the right key. Non-key column name collisions are an error; callers
// drop or rename colliding columns first, which keeps collision handling
// explicit at the call site.
//
// Row order is left-major: left rows in order, each paired with its right
// matches in right order. A many-to-many key fans out into one row per pair.
func InnerJoin(left, right *Table, spec JoinSpec) (*Table, error) {
	leftIdx, ok := left.index[spec.LeftKey]
	if !ok {
		return nil, fmt.Errorf("%w: left key %q", ErrUnknownColumn, spec.LeftKey)
	}
	rightIdx, ok := right.index[spec.RightKey]
	if !ok {
		return nil, fmt.Errorf("%w: right key %q", ErrUnknownColumn, spec.RightKey)
	}

	columns := append([]string(nil), left.columns...)
	rightKept := make([]int, 0, len(right.columns)-1)
	for i, name := range right.columns {
		if i == rightIdx {
			continue
		}
		if left.HasColumn(name) {
			return nil, fmt.Errorf("%w: %q exists on both sides; drop or rename it before joining", ErrColumnCollision, name)
		}
		columns = append(columns, name)
		rightKept = append(rightKept, i)
	}

	fold := spec.Fold
	if fold == nil {
		fold = func(s string) string { return s }
	}

	buckets := make(map[string][]int, right.Len())
	for i, row := range right.rows {
		key := fold(row[rightIdx])
		buckets[key] = append(buckets[key], i)
	}

	rows := make([][]string, 0, left.Len())
	for _, leftRow := range left.rows {
		matches := buckets[fold(leftRow[leftIdx])]
		for _, ri := range matches {
			rightRow := right.rows[ri]
			combined := make([]string, 0, len(columns))
			combined = append(combined, leftRow...)
			for _, ci := range rightKept {
				combined = append(combined, rightRow[ci])
			}
			rows = append(rows, combined)
		}
	}
	return MustNew(columns, rows), nil
}
