package metrics

import (
	"sort"

	"funnelboard/api/models"
)

// MinJourneyUsers is the floor below which the transition graph is
// reported as insufficient instead of rendering a misleading trickle.
const MinJourneyUsers = 10

// maxJourneySteps truncates each user's sequence; only the first steps
// carry signal before journeys dissolve into noise.
const maxJourneySteps = 3

// JourneyNode is one behavior-type node of the flow diagram.
type JourneyNode struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// JourneyLink is a weighted edge between node indices, the shape a
// sankey renderer consumes directly.
type JourneyLink struct {
	Source int `json:"source"`
	Target int `json:"target"`
	Value  int `json:"value"`
}

// JourneyGraph is the weighted directed multigraph of consecutive
// behavior transitions across all qualifying users.
type JourneyGraph struct {
	Nodes        []JourneyNode `json:"nodes"`
	Links        []JourneyLink `json:"links"`
	Insufficient bool          `json:"insufficient"`
}

// JourneyTransitions builds the behavior flow graph. A user qualifies by
// exhibiting more than one distinct behavior type; each qualifying
// user's chronological sequence is truncated to its first three events
// and every consecutive (prior, next) pair is accumulated.
func JourneyTransitions(t Table) JourneyGraph {
	byUser := make(map[int64][]models.Event)
	var userOrder []int64
	for _, e := range t {
		if _, ok := models.ParseBehavior(string(e.Behavior)); !ok {
			continue
		}
		if _, seen := byUser[e.UserID]; !seen {
			userOrder = append(userOrder, e.UserID)
		}
		byUser[e.UserID] = append(byUser[e.UserID], e)
	}

	qualifying := 0
	pairCounts := make(map[[2]models.BehaviorType]int)
	for _, uid := range userOrder {
		events := byUser[uid]

		distinct := make(map[models.BehaviorType]bool)
		for _, e := range events {
			distinct[e.Behavior] = true
		}
		if len(distinct) < 2 {
			continue
		}
		qualifying++

		// Stable sort keeps table order for same-instant events.
		sort.SliceStable(events, func(i, j int) bool {
			return events[i].Timestamp.Before(events[j].Timestamp)
		})
		if len(events) > maxJourneySteps {
			events = events[:maxJourneySteps]
		}
		for i := 0; i < len(events)-1; i++ {
			pairCounts[[2]models.BehaviorType{events[i].Behavior, events[i+1].Behavior}]++
		}
	}

	if qualifying < MinJourneyUsers {
		return JourneyGraph{Insufficient: true}
	}

	// Fixed node set in funnel order, indexed for link references.
	nodeIndex := make(map[models.BehaviorType]int, len(models.FunnelStages))
	nodes := make([]JourneyNode, len(models.FunnelStages))
	for i, b := range models.FunnelStages {
		nodeIndex[b] = i
		nodes[i] = JourneyNode{ID: string(b), Name: b.Label()}
	}

	var links []JourneyLink
	for pair, count := range pairCounts {
		links = append(links, JourneyLink{
			Source: nodeIndex[pair[0]],
			Target: nodeIndex[pair[1]],
			Value:  count,
		})
	}
	sort.Slice(links, func(i, j int) bool {
		if links[i].Source != links[j].Source {
			return links[i].Source < links[j].Source
		}
		return links[i].Target < links[j].Target
	})

	// Drop nodes no link touches and remap indices so the renderer
	// never sees orphan nodes.
	connected := make(map[int]bool)
	for _, l := range links {
		connected[l.Source] = true
		connected[l.Target] = true
	}
	remap := make(map[int]int)
	var kept []JourneyNode
	for i, n := range nodes {
		if connected[i] {
			remap[i] = len(kept)
			kept = append(kept, n)
		}
	}
	for i := range links {
		links[i].Source = remap[links[i].Source]
		links[i].Target = remap[links[i].Target]
	}

	return JourneyGraph{Nodes: kept, Links: links}
}
