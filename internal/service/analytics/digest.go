package analytics

import (
	"sort"

	"github.com/authlens/change-analytics/internal/domain/change"
)

// DigestResult summarizes the changes of a reporting period for periodic
// notification emails: removals surface before additions, most recent first
// within each group.
type DigestResult struct {
	Events       []change.Event `json:"events"`
	AddedTotal   int            `json:"added_total"`
	RemovedTotal int            `json:"removed_total"`
}

// Digest collects the in-range events in notification order. The full list
// is returned; truncating to a preview length is the caller's concern.
func Digest(events []change.Event, r change.DateRange) *DigestResult {
	inRange := FilterEvents(events, Criteria{DateRange: &r})

	sort.SliceStable(inRange, func(i, j int) bool {
		a, b := inRange[i], inRange[j]
		if a.Action != b.Action {
			return a.Action == change.ActionRemoved
		}
		return a.OccurredAt.After(b.OccurredAt)
	})

	result := &DigestResult{Events: inRange}
	for _, e := range inRange {
		if e.Action == change.ActionAdded {
			result.AddedTotal++
		} else {
			result.RemovedTotal++
		}
	}
	return result
}
