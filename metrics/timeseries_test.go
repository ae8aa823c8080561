package metrics

import (
	"testing"
	"time"

	"funnelboard/api/models"
)

func TestDailyActivitySortedByDate(t *testing.T) {
	table := Table{
		ev(1, 100, 10, models.BehaviorPageView, "2017-11-27 10:00:00"),
		ev(1, 100, 10, models.BehaviorPageView, "2017-11-25 10:00:00"),
		ev(2, 100, 10, models.BehaviorCart, "2017-11-25 12:00:00"),
	}
	got := DailyActivity(table)
	want := []DailyCount{
		{Date: "2017-11-25", Count: 2},
		{Date: "2017-11-27", Count: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d days, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("day %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestDailyActivitySkipsZeroTimestamps(t *testing.T) {
	table := Table{
		{UserID: 1, ItemID: 100, CategoryID: 10, Behavior: models.BehaviorPageView},
		ev(1, 100, 10, models.BehaviorPageView, "2017-11-25 10:00:00"),
	}
	got := DailyActivity(table)
	if len(got) != 1 || got[0].Count != 1 {
		t.Fatalf("zero-timestamp row must not be bucketed: %v", got)
	}
}

func TestHourlyHeatmapSparseAndOrdered(t *testing.T) {
	table := Table{
		ev(1, 100, 10, models.BehaviorPageView, "2017-11-26 23:00:00"),
		ev(1, 100, 10, models.BehaviorPageView, "2017-11-25 09:00:00"),
		ev(2, 100, 10, models.BehaviorPageView, "2017-11-25 09:30:00"),
	}
	got := HourlyHeatmap(table)
	if len(got) != 2 {
		t.Fatalf("expected 2 populated cells, got %d", len(got))
	}
	if got[0].Date != "2017-11-25" || got[0].Hour != 9 || got[0].Count != 2 {
		t.Errorf("first cell = %+v", got[0])
	}
	if got[1].Date != "2017-11-26" || got[1].Hour != 23 {
		t.Errorf("second cell = %+v", got[1])
	}
}

func TestDayTypeBreakdown(t *testing.T) {
	// 2017-11-25 is a Saturday, 2017-11-27 a Monday.
	if date("2017-11-25").Weekday() != time.Saturday {
		t.Fatal("fixture date is not a Saturday")
	}
	table := Table{
		ev(1, 100, 10, models.BehaviorPageView, "2017-11-25 10:00:00"),
		ev(1, 100, 10, models.BehaviorBuy, "2017-11-25 10:05:00"),
		ev(2, 100, 10, models.BehaviorPageView, "2017-11-27 10:00:00"),
	}
	got := DayTypeBreakdown(table)
	want := []DayTypeCount{
		{DayType: "Weekday", Behavior: models.BehaviorPageView, Count: 1},
		{DayType: "Weekend", Behavior: models.BehaviorPageView, Count: 1},
		{DayType: "Weekend", Behavior: models.BehaviorBuy, Count: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d rows, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

// The hourly conversion chart floors its page-view denominator at 1
// instead of reporting 0, so an hour with purchases but no views yields
// a rate above 100. That convention is intentional and pinned here.
func TestHourlyConversionFloor(t *testing.T) {
	table := Table{
		ev(1, 100, 10, models.BehaviorBuy, "2017-11-25 03:10:00"),
		ev(2, 100, 10, models.BehaviorBuy, "2017-11-25 03:20:00"),
		ev(3, 100, 10, models.BehaviorPageView, "2017-11-25 08:00:00"),
		ev(3, 100, 10, models.BehaviorPageView, "2017-11-25 08:05:00"),
		ev(3, 100, 10, models.BehaviorBuy, "2017-11-25 08:30:00"),
	}
	got := HourlyConversion(table)
	if len(got) != 2 {
		t.Fatalf("expected hours 3 and 8, got %v", got)
	}
	if got[0].Hour != 3 || got[0].PageViews != 0 || got[0].Rate != 200 {
		t.Errorf("zero-view hour = %+v, want rate 200 from the floored denominator", got[0])
	}
	if got[1].Hour != 8 || got[1].Rate != 50 {
		t.Errorf("normal hour = %+v, want rate 50", got[1])
	}
}
