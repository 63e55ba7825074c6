package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/authlens/change-analytics/internal/domain/change"
)

// SortField selects the comparison key for event sorting
type SortField string

const (
	SortByOccurredAt  SortField = "occurredAt"
	SortByAction      SortField = "action"
	SortBySubjectName SortField = "subjectName"
	SortByID          SortField = "id"
)

// SortOrder selects the sort direction
type SortOrder string

const (
	OrderAscending  SortOrder = "asc"
	OrderDescending SortOrder = "desc"
)

// SortState tracks the active sort column and direction for a table view
type SortState struct {
	Field SortField `json:"field"`
	Order SortOrder `json:"order"`
}

// DefaultSortState is most-recent-first, matching the initial table view
func DefaultSortState() SortState {
	return SortState{Field: SortByOccurredAt, Order: OrderDescending}
}

// Toggle flips the direction when the same field is selected again and
// resets to descending when the field changes.
func (s *SortState) Toggle(field SortField) {
	if s.Field == field {
		if s.Order == OrderAscending {
			s.Order = OrderDescending
		} else {
			s.Order = OrderAscending
		}
		return
	}
	s.Field = field
	s.Order = OrderDescending
}

// SortEvents returns a new, stably sorted slice: equal keys retain their
// relative input order. Strings compare case-insensitively, actions by their
// string value, timestamps by instant.
func SortEvents(events []change.Event, field SortField, order SortOrder) []change.Event {
	sorted := make([]change.Event, len(events))
	copy(sorted, events)

	sort.SliceStable(sorted, func(i, j int) bool {
		cmp := compareEvents(sorted[i], sorted[j], field)
		if order == OrderAscending {
			return cmp < 0
		}
		return cmp > 0
	})
	return sorted
}

// compareEvents is a three-way comparator: negative when a sorts before b
// ascending, zero on equal keys so stability can hold.
func compareEvents(a, b change.Event, field SortField) int {
	switch field {
	case SortByAction:
		return strings.Compare(string(a.Action), string(b.Action))
	case SortBySubjectName:
		return strings.Compare(strings.ToLower(a.SubjectName), strings.ToLower(b.SubjectName))
	case SortByID:
		return strings.Compare(strings.ToLower(a.ID), strings.ToLower(b.ID))
	default:
		return compareTimes(a.OccurredAt, b.OccurredAt)
	}
}

func compareTimes(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}
