package metrics

import (
	"reflect"
	"testing"
	"time"

	"funnelboard/api/models"
)

func ev(user, item, category int64, behavior models.BehaviorType, ts string) models.Event {
	t, err := time.Parse("2006-01-02 15:04:05", ts)
	if err != nil {
		panic(err)
	}
	return models.Event{UserID: user, ItemID: item, CategoryID: category, Behavior: behavior, Timestamp: t.UTC()}
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

func sampleTable() Table {
	return Table{
		ev(1, 100, 10, models.BehaviorPageView, "2017-11-25 09:00:00"),
		ev(1, 100, 10, models.BehaviorCart, "2017-11-25 09:05:00"),
		ev(2, 200, 20, models.BehaviorPageView, "2017-11-26 23:59:59"),
		ev(3, 300, 30, models.BehaviorBuy, "2017-11-27 12:00:00"),
	}
}

func TestFilterDateBoundsIncludeEntireEndDay(t *testing.T) {
	table := sampleTable()
	got := Filter{Start: date("2017-11-25"), End: date("2017-11-26")}.Apply(table)
	if len(got) != 3 {
		t.Fatalf("expected 3 rows through end of Nov 26, got %d", len(got))
	}
	for _, e := range got {
		if e.Timestamp.After(date("2017-11-27")) {
			t.Fatalf("row past the end bound leaked through: %v", e.Timestamp)
		}
	}

	// Same-day start/end still selects that day.
	got = Filter{Start: date("2017-11-26"), End: date("2017-11-26")}.Apply(table)
	if len(got) != 1 || got[0].UserID != 2 {
		t.Fatalf("same-day filter expected the single Nov 26 row, got %v", got)
	}
}

func TestFilterEmptySetsMeanNoRestriction(t *testing.T) {
	table := sampleTable()
	dateOnly := Filter{Start: date("2017-11-25"), End: date("2017-11-27")}.Apply(table)
	withEmptySets := Filter{
		Start:      date("2017-11-25"),
		End:        date("2017-11-27"),
		Behaviors:  map[models.BehaviorType]bool{},
		Categories: map[int64]bool{},
	}.Apply(table)

	if !reflect.DeepEqual(dateOnly, withEmptySets) {
		t.Fatalf("empty behavior/category sets must be a no-op: %v vs %v", dateOnly, withEmptySets)
	}
}

func TestFilterBehaviorAndCategorySets(t *testing.T) {
	table := sampleTable()

	got := Filter{Behaviors: map[models.BehaviorType]bool{models.BehaviorPageView: true}}.Apply(table)
	if len(got) != 2 {
		t.Fatalf("expected 2 pv rows, got %d", len(got))
	}

	got = Filter{Categories: map[int64]bool{30: true}}.Apply(table)
	if len(got) != 1 || got[0].Behavior != models.BehaviorBuy {
		t.Fatalf("expected the single category-30 buy row, got %v", got)
	}
}

func TestFilterIsIdempotent(t *testing.T) {
	table := sampleTable()
	f := Filter{
		Start:     date("2017-11-25"),
		End:       date("2017-11-26"),
		Behaviors: map[models.BehaviorType]bool{models.BehaviorPageView: true, models.BehaviorCart: true},
	}
	once := f.Apply(table)
	twice := f.Apply(once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("filter not idempotent: %v vs %v", once, twice)
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	table := sampleTable()
	want := sampleTable()
	Filter{Behaviors: map[models.BehaviorType]bool{models.BehaviorBuy: true}}.Apply(table)
	if !reflect.DeepEqual(table, want) {
		t.Fatal("filter mutated its input table")
	}
}

func TestFilterPreservesRowOrder(t *testing.T) {
	table := sampleTable()
	got := Filter{}.Apply(table)
	if !reflect.DeepEqual(got, table) {
		t.Fatalf("unrestricted filter should reproduce the table in order, got %v", got)
	}
}
