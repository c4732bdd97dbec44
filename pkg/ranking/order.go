package ranking

import (
	"cmp"
	"slices"
)

// SortScored orders products by final score descending, then review count
// descending, then product ID ascending. The order is total, so equal inputs
// always produce the same sequence.
func SortScored(scored []ScoredProduct) {
	slices.SortStableFunc(scored, compareScored)
}

func compareScored(a, b ScoredProduct) int {
	if c := cmp.Compare(b.FinalScore, a.FinalScore); c != 0 {
		return c
	}
	if c := cmp.Compare(b.ReviewCount, a.ReviewCount); c != 0 {
		return c
	}
	return cmp.Compare(a.ProductID, b.ProductID)
}
