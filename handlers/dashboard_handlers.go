// api/handlers/dashboard_handlers.go
package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"funnelboard/api/charts"
	"funnelboard/api/metrics"
	"funnelboard/api/store"
	"funnelboard/api/utils"

	"github.com/gin-gonic/gin"
)

type DashboardHandlers struct {
	Snapshots *store.SnapshotStore
	Source    store.Source
}

func NewDashboardHandlers(s *store.SnapshotStore, src store.Source) *DashboardHandlers {
	return &DashboardHandlers{
		Snapshots: s,
		Source:    src,
	}
}

// filteredTable resolves the memoized snapshot and applies the request's
// filter selections. On failure it writes the error response itself and
// reports ok=false.
func (h *DashboardHandlers) filteredTable(c *gin.Context) (metrics.Table, *store.Snapshot, bool) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	snap, err := h.Snapshots.Load(ctx, h.Source)
	if err != nil {
		log.Printf("Error loading snapshot from %s: %v", h.Source.Key(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load the clickstream snapshot"})
		return nil, nil, false
	}

	// Defaults cover the snapshot's full date span, mirroring the
	// dashboard's "All" quick selector.
	filter := metrics.Filter{Start: snap.MinDate, End: snap.MaxDate}

	if v := c.Query("start"); v != "" {
		start, err := utils.ParseDate(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return nil, nil, false
		}
		filter.Start = start
	}
	if v := c.Query("end"); v != "" {
		end, err := utils.ParseDate(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return nil, nil, false
		}
		filter.End = end
	}

	behaviors, err := utils.ParseBehaviorSet(c.Query("behaviors"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, nil, false
	}
	filter.Behaviors = behaviors

	categories, err := utils.ParseIDSet(c.Query("categories"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, nil, false
	}
	filter.Categories = categories

	return filter.Apply(metrics.Table(snap.Events)), snap, true
}

// limitParam parses an optional positive integer limit, with a default.
func limitParam(c *gin.Context, fallback int) (int, bool) {
	v := c.Query("limit")
	if v == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'limit' parameter. Must be a positive integer."})
		return 0, false
	}
	return n, true
}

// GetOverview serves the landing tab: snapshot metadata, dataset stats,
// the daily trend, the funnel, the behavior mix, and top categories.
func (h *DashboardHandlers) GetOverview(c *gin.Context) {
	table, snap, ok := h.filteredTable(c)
	if !ok {
		return
	}

	report := metrics.Overview(table)
	c.JSON(http.StatusOK, gin.H{
		"snapshot": gin.H{
			"id":          snap.ID,
			"source":      snap.Source,
			"loadedAt":    snap.LoadedAt.Format(time.RFC3339),
			"droppedRows": snap.Dropped,
		},
		"stats":         report.Stats,
		"daily":         report.Daily,
		"funnel":        report.Funnel,
		"behaviorShare": report.BehaviorShare,
		"topCategories": charts.CategoryRows(report.TopCategories),
	})
}

// GetFunnel serves the conversion funnel plus the per-category
// conversion heatmap shown beneath it.
func (h *DashboardHandlers) GetFunnel(c *gin.Context) {
	table, _, ok := h.filteredTable(c)
	if !ok {
		return
	}

	funnel := metrics.Funnel(table)
	categoryMetrics := metrics.CategoryConversion(table, metrics.DefaultTopCategories)

	c.JSON(http.StatusOK, gin.H{
		"funnel":             funnel,
		"categoryConversion": charts.ConversionRows(categoryMetrics),
	})
}

// GetTimeTrends serves daily activity, the (date, hour) heatmap, the
// weekday/weekend breakdown, and the hourly conversion line.
func (h *DashboardHandlers) GetTimeTrends(c *gin.Context) {
	table, _, ok := h.filteredTable(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"daily":            metrics.DailyActivity(table),
		"hourlyHeatmap":    metrics.HourlyHeatmap(table),
		"dayTypeBreakdown": metrics.DayTypeBreakdown(table),
		"hourlyConversion": metrics.HourlyConversion(table),
	})
}

// GetProductPopularity serves the most and least popular products.
func (h *DashboardHandlers) GetProductPopularity(c *gin.Context) {
	table, _, ok := h.filteredTable(c)
	if !ok {
		return
	}
	limit, ok := limitParam(c, metrics.DefaultTopProducts)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"top":   charts.ProductRows(metrics.TopNByItem(table, limit)),
		"least": charts.ProductRows(metrics.LeastPopularItems(table, limit)),
	})
}

// GetCategoryAnalysis serves the category tab: per-category metrics,
// melted conversion rows, and hour-of-day activity for the leaders.
func (h *DashboardHandlers) GetCategoryAnalysis(c *gin.Context) {
	table, _, ok := h.filteredTable(c)
	if !ok {
		return
	}
	limit, ok := limitParam(c, metrics.DefaultTopCategories)
	if !ok {
		return
	}

	categoryMetrics := metrics.CategoryConversion(table, limit)
	c.JSON(http.StatusOK, gin.H{
		"categories":     charts.CategoryMetricRows(categoryMetrics),
		"conversion":     charts.ConversionRows(categoryMetrics),
		"hourlyActivity": metrics.CategoryHourly(table, 5),
	})
}

// GetUserSegments serves the segment distribution, or an explicit
// placeholder when too few users qualify.
func (h *DashboardHandlers) GetUserSegments(c *gin.Context) {
	table, _, ok := h.filteredTable(c)
	if !ok {
		return
	}

	report := metrics.Segments(table)
	if report.Insufficient {
		c.JSON(http.StatusOK, charts.NewPlaceholder("Not enough data for user segmentation"))
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetJourney serves the behavior transition graph, or a placeholder
// when too few multi-behavior users exist.
func (h *DashboardHandlers) GetJourney(c *gin.Context) {
	table, _, ok := h.filteredTable(c)
	if !ok {
		return
	}

	graph := metrics.JourneyTransitions(table)
	if graph.Insufficient {
		c.JSON(http.StatusOK, charts.NewPlaceholder("Not enough multi-behavior users for a journey flow"))
		return
	}
	c.JSON(http.StatusOK, graph)
}

// GetBrowsingDepth serves the products-viewed vs purchase-rate buckets.
func (h *DashboardHandlers) GetBrowsingDepth(c *gin.Context) {
	table, _, ok := h.filteredTable(c)
	if !ok {
		return
	}

	report := metrics.BrowsingDepth(table)
	if report.Insufficient {
		c.JSON(http.StatusOK, charts.NewPlaceholder("Not enough session data for browsing depth analysis"))
		return
	}
	c.JSON(http.StatusOK, report)
}
