package analytics

import (
	"time"

	"github.com/authlens/change-analytics/internal/domain/change"
)

// ActionFilter narrows results to one change direction
type ActionFilter string

const (
	ActionFilterAll     ActionFilter = "All"
	ActionFilterAdded   ActionFilter = "Added"
	ActionFilterRemoved ActionFilter = "Removed"
)

// matches reports whether an action passes the filter. The zero value
// behaves like ActionFilterAll so an unset criteria field is a no-op.
func (f ActionFilter) matches(a change.Action) bool {
	switch f {
	case ActionFilterAdded:
		return a == change.ActionAdded
	case ActionFilterRemoved:
		return a == change.ActionRemoved
	default:
		return true
	}
}

// Criteria is the predicate chain applied to an event collection. Every
// field is optional; the zero value matches everything.
type Criteria struct {
	// Inclusive on both ends. An inverted range yields an empty result.
	DateRange *change.DateRange

	Action ActionFilter

	// Case-insensitive substring tested against subject name, event ID and
	// each related stream name. Whitespace-only terms are ignored.
	SearchTerm string

	// Restrict to one authorization; empty means unrestricted
	AuthorizationID string
}

// AuthorizationBreakdown ranks one authorization's share of a change subset
type AuthorizationBreakdown struct {
	AuthorizationID string `json:"authorization_id"`
	DisplayName     string `json:"display_name"`
	DataSourceType  string `json:"data_source_type"`
	Count           int    `json:"count"`
}

// DayBucket aggregates the changes of one calendar day. Counts are unsigned;
// the diverging-chart sign convention is applied by the presentation layer.
type DayBucket struct {
	Date         time.Time `json:"date"`
	AddedCount   int       `json:"added_count"`
	RemovedCount int       `json:"removed_count"`

	// Full ranked lists, count-descending with first-seen tie order.
	// Truncation to a display top-N is the caller's concern.
	AddedByAuthorization   []AuthorizationBreakdown `json:"added_by_authorization,omitempty"`
	RemovedByAuthorization []AuthorizationBreakdown `json:"removed_by_authorization,omitempty"`
}

// Total returns the number of changes in the bucket
func (b DayBucket) Total() int {
	return b.AddedCount + b.RemovedCount
}

// DataSourceSummary ranks one data source's share of all changes in range
type DataSourceSummary struct {
	DataSource   string `json:"data_source"`
	Total        int    `json:"total"`
	AddedCount   int    `json:"added_count"`
	RemovedCount int    `json:"removed_count"`

	// Whole-number share of the grand total, zero when there are no changes
	Percentage int `json:"percentage"`
}
