package metrics

import "funnelboard/api/models"

// FunnelStage is one step of the pv → cart → fav → buy sequence.
type FunnelStage struct {
	Behavior models.BehaviorType `json:"behavior"`
	Stage    string              `json:"stage"`
	Count    int                 `json:"count"`
	Rate     float64             `json:"rate"` // percent of page views
}

// FunnelReport holds per-behavior totals and their page-view-relative
// conversion rates.
type FunnelReport struct {
	PageViews int           `json:"pageViews"`
	CartAdds  int           `json:"cartAdds"`
	Favorites int           `json:"favorites"`
	Purchases int           `json:"purchases"`
	CartRate  float64       `json:"cartRate"`
	FavRate   float64       `json:"favRate"`
	BuyRate   float64       `json:"buyRate"`
	Stages    []FunnelStage `json:"stages"`
}

// FunnelCounts counts rows per behavior type. Behaviors absent from the
// table appear with a 0; unknown behavior labels are not counted.
func FunnelCounts(t Table) map[models.BehaviorType]int {
	counts := make(map[models.BehaviorType]int, len(models.FunnelStages))
	for _, b := range models.FunnelStages {
		counts[b] = 0
	}
	for _, e := range t {
		if _, ok := models.ParseBehavior(string(e.Behavior)); ok {
			counts[e.Behavior]++
		}
	}
	return counts
}

// Funnel computes the full conversion funnel. All rates are 0 when no
// page views exist — never NaN or Inf, so charts stay well-defined.
func Funnel(t Table) FunnelReport {
	counts := FunnelCounts(t)

	r := FunnelReport{
		PageViews: counts[models.BehaviorPageView],
		CartAdds:  counts[models.BehaviorCart],
		Favorites: counts[models.BehaviorFavorite],
		Purchases: counts[models.BehaviorBuy],
	}
	r.CartRate = pct(r.CartAdds, r.PageViews)
	r.FavRate = pct(r.Favorites, r.PageViews)
	r.BuyRate = pct(r.Purchases, r.PageViews)

	for _, b := range models.FunnelStages {
		r.Stages = append(r.Stages, FunnelStage{
			Behavior: b,
			Stage:    b.Label(),
			Count:    counts[b],
			Rate:     pct(counts[b], r.PageViews),
		})
	}
	return r
}

// pct is num/den as a percentage, 0 when the denominator is 0.
func pct(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den) * 100
}
