package metrics

import (
	"testing"

	"funnelboard/api/models"
)

// journeyFixture gives every user the sequence pv, cart, pv, buy. The
// fourth event falls past the three-step truncation window.
func journeyFixture(users int64) Table {
	var table Table
	for uid := int64(1); uid <= users; uid++ {
		table = append(table,
			ev(uid, 100, 10, models.BehaviorPageView, "2017-11-25 10:00:00"),
			ev(uid, 100, 10, models.BehaviorCart, "2017-11-25 10:01:00"),
			ev(uid, 200, 10, models.BehaviorPageView, "2017-11-25 10:02:00"),
			ev(uid, 200, 10, models.BehaviorBuy, "2017-11-25 10:03:00"),
		)
	}
	return table
}

func TestJourneyTruncatesToFirstThreeEvents(t *testing.T) {
	g := JourneyTransitions(journeyFixture(10))
	if g.Insufficient {
		t.Fatal("10 multi-behavior users should be sufficient")
	}

	// pv→cart and cart→pv from the first three events; the trailing buy
	// never enters, so the buy node is pruned as an orphan.
	if len(g.Nodes) != 2 {
		t.Fatalf("expected 2 connected nodes, got %v", g.Nodes)
	}
	if g.Nodes[0].ID != "pv" || g.Nodes[1].ID != "cart" {
		t.Fatalf("unexpected node set: %v", g.Nodes)
	}
	if len(g.Links) != 2 {
		t.Fatalf("expected 2 links, got %v", g.Links)
	}
	for _, l := range g.Links {
		if l.Value != 10 {
			t.Errorf("every transition occurs once per user: %+v", l)
		}
		if l.Source >= len(g.Nodes) || l.Target >= len(g.Nodes) {
			t.Errorf("link references a pruned node: %+v", l)
		}
	}
}

func TestJourneySingleBehaviorUsersDoNotQualify(t *testing.T) {
	table := journeyFixture(10)
	// 100 extra view-only users must not affect the graph.
	for uid := int64(1000); uid < 1100; uid++ {
		table = append(table, ev(uid, 100, 10, models.BehaviorPageView, "2017-11-25 09:00:00"))
	}

	g := JourneyTransitions(table)
	if g.Insufficient {
		t.Fatal("qualifying users unchanged, graph should render")
	}
	for _, l := range g.Links {
		if l.Value != 10 {
			t.Fatalf("single-behavior users leaked into transitions: %+v", l)
		}
	}
}

func TestJourneyInsufficientBelowFloor(t *testing.T) {
	g := JourneyTransitions(journeyFixture(int64(MinJourneyUsers) - 1))
	if !g.Insufficient {
		t.Fatalf("%d qualifying users should be insufficient", MinJourneyUsers-1)
	}
	if len(g.Nodes) != 0 || len(g.Links) != 0 {
		t.Fatalf("insufficient graph should be empty: %+v", g)
	}
}

func TestJourneyOrdersEventsByTimestamp(t *testing.T) {
	var table Table
	for uid := int64(1); uid <= 10; uid++ {
		// Rows arrive out of chronological order.
		table = append(table,
			ev(uid, 100, 10, models.BehaviorBuy, "2017-11-25 10:02:00"),
			ev(uid, 100, 10, models.BehaviorPageView, "2017-11-25 10:00:00"),
			ev(uid, 100, 10, models.BehaviorCart, "2017-11-25 10:01:00"),
		)
	}

	g := JourneyTransitions(table)
	if g.Insufficient {
		t.Fatal("unexpected insufficient result")
	}
	// Chronological order yields pv→cart and cart→buy only.
	if len(g.Links) != 2 {
		t.Fatalf("expected 2 links, got %v", g.Links)
	}
	wantIDs := map[string]bool{"pv": true, "cart": true, "buy": true}
	for _, n := range g.Nodes {
		if !wantIDs[n.ID] {
			t.Fatalf("unexpected node %v", n)
		}
	}
	if len(g.Nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %v", g.Nodes)
	}
}
