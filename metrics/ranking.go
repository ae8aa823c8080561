package metrics

import (
	"sort"

	"funnelboard/api/models"
)

// DefaultTopProducts bounds the product popularity charts.
const DefaultTopProducts = 10

// RankedGroup is one group (product or category) with its row count.
type RankedGroup struct {
	ID    int64 `json:"id"`
	Count int   `json:"count"`
}

// TopNByItem ranks products by interaction count, descending.
func TopNByItem(t Table, n int) []RankedGroup {
	return topN(t, n, func(e models.Event) int64 { return e.ItemID })
}

// TopNByCategory ranks categories by interaction count, descending.
func TopNByCategory(t Table, n int) []RankedGroup {
	return topN(t, n, func(e models.Event) int64 { return e.CategoryID })
}

func topN(t Table, n int, key func(models.Event) int64) []RankedGroup {
	if n <= 0 {
		n = DefaultTopProducts
	}
	groups := countGroups(t, key)
	// Stable: ties stay in first-encountered order.
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Count > groups[j].Count })
	if len(groups) > n {
		groups = groups[:n]
	}
	return groups
}

// LeastPopularItems ranks products by interaction count, ascending.
// Groups seen exactly once are excluded as singleton noise whenever at
// least 5 multi-interaction groups remain; with fewer, singletons are
// kept so sparse filters still produce a chart.
func LeastPopularItems(t Table, n int) []RankedGroup {
	if n <= 0 {
		n = DefaultTopProducts
	}
	groups := countGroups(t, func(e models.Event) int64 { return e.ItemID })

	multi := 0
	for _, g := range groups {
		if g.Count > 1 {
			multi++
		}
	}
	if multi >= 5 {
		kept := groups[:0]
		for _, g := range groups {
			if g.Count > 1 {
				kept = append(kept, g)
			}
		}
		groups = kept
	}

	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Count < groups[j].Count })
	if len(groups) > n {
		groups = groups[:n]
	}
	return groups
}

func countGroups(t Table, key func(models.Event) int64) []RankedGroup {
	counts := make(map[int64]int)
	var order []int64
	for _, e := range t {
		k := key(e)
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}

	groups := make([]RankedGroup, 0, len(order))
	for _, k := range order {
		groups = append(groups, RankedGroup{ID: k, Count: counts[k]})
	}
	return groups
}
