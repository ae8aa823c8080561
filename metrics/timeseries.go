package metrics

import (
	"sort"
	"time"

	"funnelboard/api/models"
)

// DateLayout formats calendar-date keys in time-series output.
const DateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// DailyCount is one point of the daily activity trend.
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// HeatmapCell is one (date, hour) bucket. Buckets with no events are
// omitted; consumers treat absent cells as zero.
type HeatmapCell struct {
	Date  string `json:"date"`
	Hour  int    `json:"hour"`
	Count int    `json:"count"`
}

// DayTypeCount cross-tabulates Weekday/Weekend against behavior type.
type DayTypeCount struct {
	DayType  string              `json:"dayType"`
	Behavior models.BehaviorType `json:"behavior"`
	Count    int                 `json:"count"`
}

// HourlyRate is the buy/pv conversion for one hour of day.
type HourlyRate struct {
	Hour      int     `json:"hour"`
	PageViews int     `json:"pageViews"`
	Purchases int     `json:"purchases"`
	Rate      float64 `json:"rate"`
}

// DailyActivity counts rows per calendar date, ordered by date. Rows
// with a zero timestamp never enter time-bucketed metrics.
func DailyActivity(t Table) []DailyCount {
	byDate := make(map[string]int)
	for _, e := range t {
		if e.Timestamp.IsZero() {
			continue
		}
		byDate[e.Timestamp.Format(DateLayout)]++
	}

	out := make([]DailyCount, 0, len(byDate))
	for d, n := range byDate {
		out = append(out, DailyCount{Date: d, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// HourlyHeatmap counts rows per (date, hour-of-day), sparse.
func HourlyHeatmap(t Table) []HeatmapCell {
	type key struct {
		date string
		hour int
	}
	byCell := make(map[key]int)
	for _, e := range t {
		if e.Timestamp.IsZero() {
			continue
		}
		byCell[key{e.Timestamp.Format(DateLayout), e.Timestamp.Hour()}]++
	}

	out := make([]HeatmapCell, 0, len(byCell))
	for k, n := range byCell {
		out = append(out, HeatmapCell{Date: k.date, Hour: k.hour, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Hour < out[j].Hour
	})
	return out
}

// DayTypeBreakdown splits activity into Weekday (Mon–Fri) and Weekend
// (Sat–Sun) per behavior type, in canonical funnel order.
func DayTypeBreakdown(t Table) []DayTypeCount {
	counts := make(map[string]map[models.BehaviorType]int)
	for _, e := range t {
		if e.Timestamp.IsZero() {
			continue
		}
		if _, ok := models.ParseBehavior(string(e.Behavior)); !ok {
			continue
		}
		dayType := "Weekday"
		switch e.Timestamp.Weekday() {
		case time.Saturday, time.Sunday:
			dayType = "Weekend"
		}
		if counts[dayType] == nil {
			counts[dayType] = make(map[models.BehaviorType]int)
		}
		counts[dayType][e.Behavior]++
	}

	var out []DayTypeCount
	for _, dayType := range []string{"Weekday", "Weekend"} {
		byBehavior, ok := counts[dayType]
		if !ok {
			continue
		}
		for _, b := range models.FunnelStages {
			if n := byBehavior[b]; n > 0 {
				out = append(out, DayTypeCount{DayType: dayType, Behavior: b, Count: n})
			}
		}
	}
	return out
}

// HourlyConversion computes buy/pv per hour of day. The page-view
// denominator is floored at 1 — this deliberately diverges from the
// 0-on-zero-denominator rule the other rate metrics follow; it is the
// documented convention for this one chart and is preserved as-is.
func HourlyConversion(t Table) []HourlyRate {
	type hourCounts struct{ pv, buy int }
	byHour := make(map[int]*hourCounts)
	for _, e := range t {
		if e.Timestamp.IsZero() {
			continue
		}
		h := e.Timestamp.Hour()
		c, ok := byHour[h]
		if !ok {
			c = &hourCounts{}
			byHour[h] = c
		}
		switch e.Behavior {
		case models.BehaviorPageView:
			c.pv++
		case models.BehaviorBuy:
			c.buy++
		}
	}

	out := make([]HourlyRate, 0, len(byHour))
	for h, c := range byHour {
		den := c.pv
		if den < 1 {
			den = 1
		}
		out = append(out, HourlyRate{
			Hour:      h,
			PageViews: c.pv,
			Purchases: c.buy,
			Rate:      float64(c.buy) / float64(den) * 100,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hour < out[j].Hour })
	return out
}
