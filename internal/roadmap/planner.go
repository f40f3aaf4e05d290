// Package roadmap turns an ordered item list into a day-by-day study
// plan. Plans are derived on every call and never persisted.
package roadmap

import (
	"fmt"

	"github.com/eduflow-app/eduflow/internal/catalog"
)

// DailyPlan is one day's bucket of items. Days are numbered from 1 and
// item order within a day preserves catalog order.
type DailyPlan struct {
	Day   int                  `json:"day"`
	Items []catalog.CourseItem `json:"items"`
}

// MaxDays bounds a plan's duration. The bucket slice is allocated up
// front, so an unbounded day count would let one request allocate
// arbitrary memory.
const MaxDays = 365

// Plan partitions items into exactly days buckets, as evenly as the
// walk allows: ceil(len/days) items per day, in order. Items the walk
// leaves unassigned are appended to the last day rather than
// redistributed, so the last day may be larger than the rest. Trailing
// days past the items are empty. days outside [1, MaxDays] is an input
// error.
func Plan(items []catalog.CourseItem, days int) ([]DailyPlan, error) {
	if days < 1 {
		return nil, fmt.Errorf("days must be at least 1, got %d", days)
	}
	if days > MaxDays {
		return nil, fmt.Errorf("days must be at most %d, got %d", MaxDays, days)
	}

	perDay := (len(items) + days - 1) / days

	plans := make([]DailyPlan, days)
	next := 0
	for day := 0; day < days; day++ {
		plans[day].Day = day + 1
		plans[day].Items = []catalog.CourseItem{}
		for n := 0; n < perDay && next < len(items); n++ {
			plans[day].Items = append(plans[day].Items, items[next])
			next++
		}
	}

	// Leftovers go to the last day. With the ceiling walk above this
	// never triggers, but the tie-break is part of the contract.
	if next < len(items) {
		plans[days-1].Items = append(plans[days-1].Items, items[next:]...)
	}

	return plans, nil
}
