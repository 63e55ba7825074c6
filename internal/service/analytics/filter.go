package analytics

import (
	"strings"

	"github.com/authlens/change-analytics/internal/domain/change"
)

// FilterEvents applies the criteria predicate chain and returns a new slice
// in input order. The input is never mutated. An inverted date range yields
// an empty (non-nil) result rather than an error.
func FilterEvents(events []change.Event, c Criteria) []change.Event {
	result := make([]change.Event, 0, len(events))

	if c.DateRange != nil && !c.DateRange.IsValid() {
		return result
	}

	term := strings.TrimSpace(strings.ToLower(c.SearchTerm))

	for _, e := range events {
		if c.DateRange != nil && !c.DateRange.Contains(e.OccurredAt) {
			continue
		}
		if !c.Action.matches(e.Action) {
			continue
		}
		if c.AuthorizationID != "" && e.AuthorizationID != c.AuthorizationID {
			continue
		}
		if term != "" && !matchesSearch(e, term) {
			continue
		}
		result = append(result, e)
	}

	return result
}

// matchesSearch tests a lowercased term against subject name, event ID and
// the related stream names. Data source and workspace are deliberately out
// of scope for text search.
func matchesSearch(e change.Event, term string) bool {
	if strings.Contains(strings.ToLower(e.SubjectName), term) {
		return true
	}
	if strings.Contains(strings.ToLower(e.ID), term) {
		return true
	}
	for _, name := range e.RelatedStreamNames {
		if strings.Contains(strings.ToLower(name), term) {
			return true
		}
	}
	return false
}
