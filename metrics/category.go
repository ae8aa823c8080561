package metrics

import (
	"math"
	"sort"

	"funnelboard/api/models"
)

// DefaultTopCategories bounds the category conversion table.
const DefaultTopCategories = 10

// CategoryMetric is the per-category funnel breakdown. Rates are
// percentages rounded to one decimal, 0 whenever their denominator is 0.
type CategoryMetric struct {
	CategoryID int64   `json:"categoryId"`
	Views      int     `json:"views"`
	CartAdds   int     `json:"cartAdds"`
	Favorites  int     `json:"favorites"`
	Purchases  int     `json:"purchases"`
	Total      int     `json:"total"`
	ViewToCart float64 `json:"viewToCart"`
	CartToBuy  float64 `json:"cartToBuy"`
	ViewToBuy  float64 `json:"viewToBuy"`
}

// Conversion stage labels for the melted (long-form) table.
const (
	StageViewToCart = "View → Cart"
	StageCartToBuy  = "Cart → Purchase"
	StageViewToBuy  = "View → Purchase"
)

// ConversionCell is one melted row {category, stage, rate}, the shape a
// grouped-bar or heatmap renderer consumes.
type ConversionCell struct {
	CategoryID int64   `json:"categoryId"`
	Stage      string  `json:"stage"`
	Rate       float64 `json:"rate"`
}

// CategoryConversion pivots behavior counts per category and keeps the
// topN categories. Ranking is by total interaction volume, not by any
// conversion rate; rate-based ordering is a display concern applied
// after this truncation.
func CategoryConversion(t Table, topN int) []CategoryMetric {
	if topN <= 0 {
		topN = DefaultTopCategories
	}

	byCategory := make(map[int64]*CategoryMetric)
	var order []int64
	for _, e := range t {
		m, ok := byCategory[e.CategoryID]
		if !ok {
			m = &CategoryMetric{CategoryID: e.CategoryID}
			byCategory[e.CategoryID] = m
			order = append(order, e.CategoryID)
		}
		switch e.Behavior {
		case models.BehaviorPageView:
			m.Views++
		case models.BehaviorCart:
			m.CartAdds++
		case models.BehaviorFavorite:
			m.Favorites++
		case models.BehaviorBuy:
			m.Purchases++
		default:
			continue
		}
		m.Total++
	}

	// Stable sort keeps first-encountered order among equal totals.
	sort.SliceStable(order, func(i, j int) bool {
		return byCategory[order[i]].Total > byCategory[order[j]].Total
	})
	if len(order) > topN {
		order = order[:topN]
	}

	out := make([]CategoryMetric, 0, len(order))
	for _, id := range order {
		m := *byCategory[id]
		m.ViewToCart = round1(pct(m.CartAdds, m.Views))
		m.CartToBuy = round1(pct(m.Purchases, m.CartAdds))
		m.ViewToBuy = round1(pct(m.Purchases, m.Views))
		out = append(out, m)
	}
	return out
}

// MeltConversion reshapes category metrics into long form, one row per
// (category, conversion stage).
func MeltConversion(ms []CategoryMetric) []ConversionCell {
	cells := make([]ConversionCell, 0, 3*len(ms))
	for _, m := range ms {
		cells = append(cells,
			ConversionCell{CategoryID: m.CategoryID, Stage: StageViewToCart, Rate: m.ViewToCart},
			ConversionCell{CategoryID: m.CategoryID, Stage: StageCartToBuy, Rate: m.CartToBuy},
			ConversionCell{CategoryID: m.CategoryID, Stage: StageViewToBuy, Rate: m.ViewToBuy},
		)
	}
	return cells
}

// CategoryHourlyPoint is one point of the per-category hour-of-day
// activity lines.
type CategoryHourlyPoint struct {
	CategoryID int64 `json:"categoryId"`
	Hour       int   `json:"hour"`
	Count      int   `json:"count"`
}

// CategoryHourly breaks hour-of-day activity down for the topN
// categories by interaction volume. Rows with a zero timestamp are
// excluded, as in every time-bucketed metric.
func CategoryHourly(t Table, topN int) []CategoryHourlyPoint {
	top := TopNByCategory(t, topN)
	wanted := make(map[int64]bool, len(top))
	for _, g := range top {
		wanted[g.ID] = true
	}

	type key struct {
		category int64
		hour     int
	}
	counts := make(map[key]int)
	for _, e := range t {
		if e.Timestamp.IsZero() || !wanted[e.CategoryID] {
			continue
		}
		counts[key{e.CategoryID, e.Timestamp.Hour()}]++
	}

	var out []CategoryHourlyPoint
	for _, g := range top {
		for hour := 0; hour < 24; hour++ {
			if n := counts[key{g.ID, hour}]; n > 0 {
				out = append(out, CategoryHourlyPoint{CategoryID: g.ID, Hour: hour, Count: n})
			}
		}
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
