package analytics

import (
	"math"
	"sort"

	"github.com/authlens/change-analytics/internal/domain/change"
)

// UnknownAuthorizationLabel is the grouping fallback for events whose
// authorization is absent from the supplied snapshot.
const UnknownAuthorizationLabel = change.UnknownAuthorizationLabel

// AggregateByDay buckets events into calendar days over the inclusive range.
// Every day in the range appears, zero-filled when empty, so charts render a
// continuous axis. An inverted range yields no buckets. Events referencing
// an unknown authorization still count and rank under a placeholder name.
func AggregateByDay(events []change.Event, r change.DateRange, idx change.AuthorizationIndex) []DayBucket {
	days := r.Days()
	if len(days) == 0 {
		return nil
	}

	// Pre-bucket events by day start to avoid rescanning per day
	byDay := make(map[int64][]change.Event)
	for _, e := range events {
		key := change.DayStart(e.OccurredAt).Unix()
		byDay[key] = append(byDay[key], e)
	}

	buckets := make([]DayBucket, 0, len(days))
	for _, day := range days {
		var added, removed []change.Event
		for _, e := range byDay[day.Unix()] {
			if e.Action == change.ActionAdded {
				added = append(added, e)
			} else {
				removed = append(removed, e)
			}
		}

		buckets = append(buckets, DayBucket{
			Date:                   day,
			AddedCount:             len(added),
			RemovedCount:           len(removed),
			AddedByAuthorization:   groupByAuthorization(added, idx),
			RemovedByAuthorization: groupByAuthorization(removed, idx),
		})
	}

	return buckets
}

// groupByAuthorization ranks a change subset by owning authorization,
// count-descending, stable on first-seen order for ties.
func groupByAuthorization(events []change.Event, idx change.AuthorizationIndex) []AuthorizationBreakdown {
	if len(events) == 0 {
		return nil
	}

	positions := make(map[string]int, len(events))
	groups := make([]AuthorizationBreakdown, 0, len(events))

	for _, e := range events {
		pos, seen := positions[e.AuthorizationID]
		if !seen {
			entry := AuthorizationBreakdown{
				AuthorizationID: e.AuthorizationID,
				DisplayName:     UnknownAuthorizationLabel,
				DataSourceType:  e.DataSource,
			}
			if auth, ok := idx.Lookup(e.AuthorizationID); ok {
				entry.DisplayName = auth.Name
				entry.DataSourceType = auth.DataSourceType
			}
			positions[e.AuthorizationID] = len(groups)
			groups = append(groups, entry)
			pos = positions[e.AuthorizationID]
		}
		groups[pos].Count++
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Count > groups[j].Count
	})
	return groups
}

// AggregateByDataSource groups the in-range events by data source and ranks
// them by total change count, first-seen order on ties. Percentages are
// whole numbers of the grand total; an empty input degrades to no summaries.
func AggregateByDataSource(events []change.Event, r change.DateRange) []DataSourceSummary {
	if !r.IsValid() {
		return nil
	}

	positions := make(map[string]int)
	summaries := make([]DataSourceSummary, 0)
	grandTotal := 0

	for _, e := range events {
		if !r.Contains(e.OccurredAt) {
			continue
		}

		pos, seen := positions[e.DataSource]
		if !seen {
			positions[e.DataSource] = len(summaries)
			summaries = append(summaries, DataSourceSummary{DataSource: e.DataSource})
			pos = positions[e.DataSource]
		}

		summaries[pos].Total++
		if e.Action == change.ActionAdded {
			summaries[pos].AddedCount++
		} else {
			summaries[pos].RemovedCount++
		}
		grandTotal++
	}

	if grandTotal > 0 {
		for i := range summaries {
			summaries[i].Percentage = int(math.Round(100 * float64(summaries[i].Total) / float64(grandTotal)))
		}
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Total > summaries[j].Total
	})
	return summaries
}

// TopBreakdown truncates a ranked breakdown to its top n entries and reports
// how many entries the cut dropped. The tooltip layer shows the remainder as
// a "+N more" line.
func TopBreakdown(breakdown []AuthorizationBreakdown, n int) ([]AuthorizationBreakdown, int) {
	if n < 0 {
		n = 0
	}
	if len(breakdown) <= n {
		return breakdown, 0
	}
	return breakdown[:n], len(breakdown) - n
}
