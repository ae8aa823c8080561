package metrics

import "funnelboard/api/models"

// MinDepthUsers is the floor below which the browsing-depth chart is
// reported as insufficient.
const MinDepthUsers = 5

// depthInsightThreshold gates the heavy-vs-light browser callout; a
// multiple under 1.2x is treated as noise.
const depthInsightThreshold = 1.2

// DepthBucket groups users by how many distinct products they viewed.
type DepthBucket struct {
	Bucket       string  `json:"bucket"`
	Users        int     `json:"users"`
	Purchasers   int     `json:"purchasers"`
	PurchaseRate float64 `json:"purchaseRate"`
}

// DepthReport relates browsing depth to purchase likelihood. The
// HighBrowserMultiple insight (purchase rate of users viewing more than
// 5 products over that of users viewing 5 or fewer) is only reported
// when both groups are populated and the multiple clears the noise
// threshold.
type DepthReport struct {
	Buckets             []DepthBucket `json:"buckets"`
	TotalUsers          int           `json:"totalUsers"`
	HighBrowserMultiple float64       `json:"highBrowserMultiple,omitempty"`
	HasInsight          bool          `json:"hasInsight"`
	Insufficient        bool          `json:"insufficient"`
}

var depthBucketNames = []string{"1 product", "2 products", "3-5 products", "6-10 products", "11+ products"}

func depthBucket(viewed int) string {
	switch {
	case viewed <= 1:
		return depthBucketNames[0]
	case viewed == 2:
		return depthBucketNames[1]
	case viewed <= 5:
		return depthBucketNames[2]
	case viewed <= 10:
		return depthBucketNames[3]
	default:
		return depthBucketNames[4]
	}
}

// BrowsingDepth counts distinct items each user viewed (pv rows only),
// buckets users by that depth, and computes per-bucket purchase rates.
func BrowsingDepth(t Table) DepthReport {
	viewedItems := make(map[int64]map[int64]bool)
	purchased := make(map[int64]bool)
	for _, e := range t {
		switch e.Behavior {
		case models.BehaviorPageView:
			if viewedItems[e.UserID] == nil {
				viewedItems[e.UserID] = make(map[int64]bool)
			}
			viewedItems[e.UserID][e.ItemID] = true
		case models.BehaviorBuy:
			purchased[e.UserID] = true
		}
	}

	r := DepthReport{TotalUsers: len(viewedItems)}
	if len(viewedItems) < MinDepthUsers {
		r.Insufficient = true
		return r
	}

	type bucketCounts struct{ users, purchasers int }
	buckets := make(map[string]*bucketCounts, len(depthBucketNames))
	for _, name := range depthBucketNames {
		buckets[name] = &bucketCounts{}
	}

	var heavyUsers, heavyBuyers, lightUsers, lightBuyers int
	for uid, items := range viewedItems {
		b := buckets[depthBucket(len(items))]
		b.users++
		if purchased[uid] {
			b.purchasers++
		}
		if len(items) > 5 {
			heavyUsers++
			if purchased[uid] {
				heavyBuyers++
			}
		} else {
			lightUsers++
			if purchased[uid] {
				lightBuyers++
			}
		}
	}

	for _, name := range depthBucketNames {
		b := buckets[name]
		r.Buckets = append(r.Buckets, DepthBucket{
			Bucket:       name,
			Users:        b.users,
			Purchasers:   b.purchasers,
			PurchaseRate: pct(b.purchasers, b.users),
		})
	}

	if heavyUsers > 0 && lightUsers > 0 && lightBuyers > 0 {
		heavyRate := float64(heavyBuyers) / float64(heavyUsers)
		lightRate := float64(lightBuyers) / float64(lightUsers)
		multiple := heavyRate / lightRate
		if multiple > depthInsightThreshold {
			r.HighBrowserMultiple = multiple
			r.HasInsight = true
		}
	}
	return r
}
