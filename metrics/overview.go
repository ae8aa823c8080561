package metrics

import (
	"funnelboard/api/models"
)

// DatasetStats summarizes the filtered table the way the dashboard
// sidebar reports the data source.
type DatasetStats struct {
	Rows       int    `json:"rows"`
	Users      int    `json:"users"`
	Products   int    `json:"products"`
	Categories int    `json:"categories"`
	StartDate  string `json:"startDate,omitempty"`
	EndDate    string `json:"endDate,omitempty"`
	Days       int    `json:"days"`
}

// BehaviorSlice is one slice of the behavior distribution pie.
type BehaviorSlice struct {
	Behavior string `json:"behavior"`
	Count    int    `json:"count"`
}

// OverviewReport is the landing-tab aggregate: dataset stats, the daily
// trend, the funnel, the behavior mix, and the top categories.
type OverviewReport struct {
	Stats         DatasetStats    `json:"stats"`
	Daily         []DailyCount    `json:"daily"`
	Funnel        FunnelReport    `json:"funnel"`
	BehaviorShare []BehaviorSlice `json:"behaviorShare"`
	TopCategories []RankedGroup   `json:"topCategories"`
}

// Stats computes distinct-entity counts and the covered date span.
func Stats(t Table) DatasetStats {
	users := make(map[int64]bool)
	products := make(map[int64]bool)
	categories := make(map[int64]bool)
	s := DatasetStats{Rows: len(t)}

	var minTS, maxTS string
	for _, e := range t {
		users[e.UserID] = true
		products[e.ItemID] = true
		categories[e.CategoryID] = true
		if e.Timestamp.IsZero() {
			continue
		}
		d := e.Timestamp.Format(DateLayout)
		if minTS == "" || d < minTS {
			minTS = d
		}
		if d > maxTS {
			maxTS = d
		}
	}
	s.Users = len(users)
	s.Products = len(products)
	s.Categories = len(categories)
	s.StartDate = minTS
	s.EndDate = maxTS
	if minTS != "" {
		lo, _ := parseDate(minTS)
		hi, _ := parseDate(maxTS)
		s.Days = int(hi.Sub(lo).Hours()/24) + 1
	}
	return s
}

// Overview assembles the landing tab from the other engine functions.
func Overview(t Table) OverviewReport {
	counts := make(map[models.BehaviorType]int)
	var order []models.BehaviorType
	for _, e := range t {
		if _, seen := counts[e.Behavior]; !seen {
			order = append(order, e.Behavior)
		}
		counts[e.Behavior]++
	}
	share := make([]BehaviorSlice, 0, len(order))
	for _, b := range order {
		share = append(share, BehaviorSlice{Behavior: string(b), Count: counts[b]})
	}

	return OverviewReport{
		Stats:         Stats(t),
		Daily:         DailyActivity(t),
		Funnel:        Funnel(t),
		BehaviorShare: share,
		TopCategories: TopNByCategory(t, 5),
	}
}
