package metrics

import "funnelboard/api/models"

// MinSegmentUsers is the floor below which segmentation is reported as
// insufficient rather than charted.
const MinSegmentUsers = 10

// Segment names, in display order.
const (
	SegmentBrowser       = "Browsers"
	SegmentCartAbandoner = "Cart Abandoners"
	SegmentWishlister    = "Wishlisters"
	SegmentPurchaser     = "Purchasers"
)

// SegmentCount is one slice of the segment distribution.
type SegmentCount struct {
	Segment    string  `json:"segment"`
	Users      int     `json:"users"`
	Percentage float64 `json:"percentage"`
}

// SegmentReport partitions distinct users by the set of behaviors they
// exhibited. Insufficient is set instead of returning a degenerate
// distribution when fewer than MinSegmentUsers users qualify.
type SegmentReport struct {
	Segments     []SegmentCount `json:"segments"`
	TotalUsers   int            `json:"totalUsers"`
	Insufficient bool           `json:"insufficient"`
}

// Segments assigns every user with at least one recognized behavior to
// exactly one segment. The original set-difference definitions let a
// user who carted and favorited without buying match both Cart Abandoner
// and Wishlister; assignment here is by fixed priority
// Purchaser > Cart Abandoner > Wishlister > Browser, making the output a
// true partition.
func Segments(t Table) SegmentReport {
	type behaviorSet struct{ pv, cart, fav, buy bool }
	users := make(map[int64]*behaviorSet)
	for _, e := range t {
		if _, ok := models.ParseBehavior(string(e.Behavior)); !ok {
			continue
		}
		s, ok := users[e.UserID]
		if !ok {
			s = &behaviorSet{}
			users[e.UserID] = s
		}
		switch e.Behavior {
		case models.BehaviorPageView:
			s.pv = true
		case models.BehaviorCart:
			s.cart = true
		case models.BehaviorFavorite:
			s.fav = true
		case models.BehaviorBuy:
			s.buy = true
		}
	}

	counts := map[string]int{}
	for _, s := range users {
		switch {
		case s.buy:
			counts[SegmentPurchaser]++
		case s.cart:
			counts[SegmentCartAbandoner]++
		case s.fav:
			counts[SegmentWishlister]++
		case s.pv:
			counts[SegmentBrowser]++
		}
	}

	total := len(users)
	r := SegmentReport{TotalUsers: total}
	if total < MinSegmentUsers {
		r.Insufficient = true
		return r
	}

	for _, name := range []string{SegmentBrowser, SegmentCartAbandoner, SegmentWishlister, SegmentPurchaser} {
		r.Segments = append(r.Segments, SegmentCount{
			Segment:    name,
			Users:      counts[name],
			Percentage: pct(counts[name], total),
		})
	}
	return r
}
