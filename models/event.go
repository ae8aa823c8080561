// api/models/event.go
package models

import "time"

// BehaviorType is the kind of action a user performed on a product.
type BehaviorType string

const (
	BehaviorPageView BehaviorType = "pv"
	BehaviorCart     BehaviorType = "cart"
	BehaviorFavorite BehaviorType = "fav"
	BehaviorBuy      BehaviorType = "buy"
)

// FunnelStages lists the four behavior types in canonical funnel order.
var FunnelStages = []BehaviorType{BehaviorPageView, BehaviorCart, BehaviorFavorite, BehaviorBuy}

// ParseBehavior maps a raw behavior label to its enum value. Anything
// outside the four known kinds reports ok=false; such rows still count
// toward totals but are excluded from funnel math.
func ParseBehavior(s string) (BehaviorType, bool) {
	switch BehaviorType(s) {
	case BehaviorPageView, BehaviorCart, BehaviorFavorite, BehaviorBuy:
		return BehaviorType(s), true
	}
	return "", false
}

// Label returns the display name used on funnel stages and journey nodes.
func (b BehaviorType) Label() string {
	switch b {
	case BehaviorPageView:
		return "Page View"
	case BehaviorCart:
		return "Add to Cart"
	case BehaviorFavorite:
		return "Favorite"
	case BehaviorBuy:
		return "Purchase"
	}
	return string(b)
}

// Event is one row of the clickstream snapshot.
type Event struct {
	UserID     int64        `json:"userId"`
	ItemID     int64        `json:"itemId"`
	CategoryID int64        `json:"categoryId"`
	Behavior   BehaviorType `json:"behaviorType"`
	Timestamp  time.Time    `json:"timestamp"`
}
