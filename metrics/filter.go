// Package metrics computes the dashboard aggregates from an in-memory
// clickstream snapshot. Every function takes a Table and returns a fresh
// derived value; nothing here mutates its input or touches a database.
package metrics

import (
	"time"

	"funnelboard/api/models"
)

// Table is the immutable event table a snapshot load produces. Filtering
// returns a new Table; the source slice is shared, never written.
type Table []models.Event

// Filter carries the user's current dashboard selections. An empty
// behavior or category set means "no restriction", not "select nothing" —
// that asymmetry mirrors the multiselect controls, where clearing a box
// resets the dimension rather than hiding everything.
type Filter struct {
	Start      time.Time
	End        time.Time
	Behaviors  map[models.BehaviorType]bool
	Categories map[int64]bool
}

// Apply narrows t to the rows matching f. Date bounds are calendar-day
// inclusive on both ends: the end bound admits the entire end day, so a
// same-day start/end still selects that day's events. Row order is
// preserved.
func (f Filter) Apply(t Table) Table {
	var lo, hi time.Time
	if !f.Start.IsZero() {
		lo = startOfDay(f.Start)
	}
	if !f.End.IsZero() {
		hi = startOfDay(f.End).Add(24 * time.Hour)
	}

	out := make(Table, 0, len(t))
	for _, e := range t {
		if !lo.IsZero() && e.Timestamp.Before(lo) {
			continue
		}
		if !hi.IsZero() && !e.Timestamp.Before(hi) {
			continue
		}
		if len(f.Behaviors) > 0 && !f.Behaviors[e.Behavior] {
			continue
		}
		if len(f.Categories) > 0 && !f.Categories[e.CategoryID] {
			continue
		}
		out = append(out, e)
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
