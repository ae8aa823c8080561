// api/utils/helpers.go
package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"funnelboard/api/models"
)

// DateLayout is the calendar-date format of the start/end query params.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD query parameter.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, err)
	}
	return t, nil
}

// ParseBehaviorSet parses a comma-separated behavior list ("pv,cart").
// An empty parameter yields an empty set, which downstream means "no
// behavior restriction". Unknown labels are rejected rather than
// silently selecting nothing.
func ParseBehaviorSet(s string) (map[models.BehaviorType]bool, error) {
	set := make(map[models.BehaviorType]bool)
	if s == "" {
		return set, nil
	}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		b, ok := models.ParseBehavior(part)
		if !ok {
			return nil, fmt.Errorf("unknown behavior type %q (expected pv, cart, fav, or buy)", part)
		}
		set[b] = true
	}
	return set, nil
}

// ParseIDSet parses a comma-separated list of integer IDs. Empty input
// yields an empty set ("no restriction").
func ParseIDSet(s string) (map[int64]bool, error) {
	set := make(map[int64]bool)
	if s == "" {
		return set, nil
	}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q: %w", part, err)
		}
		set[id] = true
	}
	return set, nil
}
