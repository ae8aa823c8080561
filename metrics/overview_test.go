package metrics

import (
	"testing"

	"funnelboard/api/models"
)

func TestStats(t *testing.T) {
	table := Table{
		ev(1, 100, 10, models.BehaviorPageView, "2017-11-25 10:00:00"),
		ev(1, 200, 10, models.BehaviorPageView, "2017-11-26 10:00:00"),
		ev(2, 100, 20, models.BehaviorBuy, "2017-11-28 10:00:00"),
	}
	s := Stats(table)
	if s.Rows != 3 || s.Users != 2 || s.Products != 2 || s.Categories != 2 {
		t.Fatalf("unexpected stats: %+v", s)
	}
	if s.StartDate != "2017-11-25" || s.EndDate != "2017-11-28" {
		t.Fatalf("date span wrong: %+v", s)
	}
	if s.Days != 4 {
		t.Fatalf("days = %d, want 4 (inclusive span)", s.Days)
	}
}

func TestStatsEmptyTable(t *testing.T) {
	s := Stats(nil)
	if s.Rows != 0 || s.Days != 0 || s.StartDate != "" || s.EndDate != "" {
		t.Fatalf("empty table stats should be zero-valued: %+v", s)
	}
}

func TestOverviewBehaviorShare(t *testing.T) {
	table := Table{
		ev(1, 100, 10, models.BehaviorPageView, "2017-11-25 10:00:00"),
		ev(1, 100, 10, models.BehaviorCart, "2017-11-25 10:01:00"),
		ev(2, 200, 20, models.BehaviorPageView, "2017-11-25 11:00:00"),
	}
	r := Overview(table)
	if len(r.BehaviorShare) != 2 {
		t.Fatalf("expected 2 behavior slices, got %v", r.BehaviorShare)
	}
	if r.BehaviorShare[0].Behavior != "pv" || r.BehaviorShare[0].Count != 2 {
		t.Fatalf("first slice = %+v", r.BehaviorShare[0])
	}
	if r.Funnel.PageViews != 2 || r.Funnel.CartAdds != 1 {
		t.Fatalf("funnel not assembled: %+v", r.Funnel)
	}
	if len(r.TopCategories) != 2 {
		t.Fatalf("top categories missing: %v", r.TopCategories)
	}
}
