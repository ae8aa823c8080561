// Package charts maps metric engine reports onto the plain row-oriented
// tables the charting frontend renders. It attaches display names and
// substitutes an explicit placeholder when a report signals insufficient
// data; it never depends on any charting library's types.
package charts

import (
	"funnelboard/api/metrics"
	"funnelboard/api/utils"
)

// Placeholder is returned instead of chart rows when a metric cannot be
// computed meaningfully, so the frontend shows "not enough data" rather
// than a chart of zeros.
type Placeholder struct {
	InsufficientData bool   `json:"insufficientData"`
	Message          string `json:"message"`
}

func NewPlaceholder(message string) Placeholder {
	return Placeholder{InsufficientData: true, Message: message}
}

// ConversionRow is one cell of the category conversion heatmap /
// grouped-bar chart.
type ConversionRow struct {
	CategoryID int64   `json:"categoryId"`
	Category   string  `json:"category"`
	Stage      string  `json:"stage"`
	Rate       float64 `json:"rate"`
}

// ConversionRows melts category metrics into long form with display
// names attached. Rows are ordered for display by each category's
// view-to-buy rate, descending — the already-truncated top-N set is
// reordered here, ranking by volume stays upstream.
func ConversionRows(ms []metrics.CategoryMetric) []ConversionRow {
	ordered := make([]metrics.CategoryMetric, len(ms))
	copy(ordered, ms)
	for i := 0; i < len(ordered)-1; i++ {
		for j := i + 1; j < len(ordered); j++ {
			if ordered[j].ViewToBuy > ordered[i].ViewToBuy {
				ordered[i], ordered[j] = ordered[j], ordered[i]
			}
		}
	}

	rows := make([]ConversionRow, 0, 3*len(ordered))
	for _, cell := range metrics.MeltConversion(ordered) {
		rows = append(rows, ConversionRow{
			CategoryID: cell.CategoryID,
			Category:   utils.CategoryName(cell.CategoryID),
			Stage:      cell.Stage,
			Rate:       cell.Rate,
		})
	}
	return rows
}

// CategoryRow is one bar/slice of a category ranking chart.
type CategoryRow struct {
	CategoryID int64  `json:"categoryId"`
	Category   string `json:"category"`
	Count      int    `json:"count"`
}

func CategoryRows(groups []metrics.RankedGroup) []CategoryRow {
	rows := make([]CategoryRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, CategoryRow{CategoryID: g.ID, Category: utils.CategoryName(g.ID), Count: g.Count})
	}
	return rows
}

// ProductRow is one bar of a product popularity chart.
type ProductRow struct {
	ItemID  int64  `json:"itemId"`
	Product string `json:"product"`
	Count   int    `json:"count"`
}

func ProductRows(groups []metrics.RankedGroup) []ProductRow {
	rows := make([]ProductRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, ProductRow{ItemID: g.ID, Product: utils.ProductName(g.ID), Count: g.Count})
	}
	return rows
}

// CategoryMetricRow is a CategoryMetric with its display name, for the
// per-category table and radar chart.
type CategoryMetricRow struct {
	metrics.CategoryMetric
	Category string `json:"category"`
}

func CategoryMetricRows(ms []metrics.CategoryMetric) []CategoryMetricRow {
	rows := make([]CategoryMetricRow, 0, len(ms))
	for _, m := range ms {
		rows = append(rows, CategoryMetricRow{CategoryMetric: m, Category: utils.CategoryName(m.CategoryID)})
	}
	return rows
}
