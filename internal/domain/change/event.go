package change

import (
	"fmt"
	"time"

	"github.com/authlens/change-analytics/internal/domain/errors"
)

// Action describes the direction of a grant change
type Action string

const (
	ActionAdded   Action = "Added"
	ActionRemoved Action = "Removed"
)

// ParseAction parses an action literal
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionAdded, ActionRemoved:
		return Action(s), nil
	default:
		return "", errors.NewValidationError("INVALID_ACTION",
			fmt.Sprintf("action must be %q or %q", ActionAdded, ActionRemoved))
	}
}

// SubjectKind distinguishes what kind of grant changed. The permission and
// entity views of the dashboard share one event model; the kind only
// parameterizes display labels at the boundary.
type SubjectKind string

const (
	SubjectPermission SubjectKind = "permission"
	SubjectEntity     SubjectKind = "entity"
)

// Label returns the capitalized display label for the kind
func (k SubjectKind) Label() string {
	switch k {
	case SubjectEntity:
		return "Entity"
	default:
		return "Permission"
	}
}

// Event records a single grant being added or removed under an authorization.
// Events are immutable snapshots: the engine only reads them.
type Event struct {
	ID              string      `json:"id" validate:"required"`
	AuthorizationID string      `json:"authorization_id" validate:"required"`
	SubjectName     string      `json:"subject_name" validate:"required"`
	SubjectKind     SubjectKind `json:"subject_kind,omitempty"`
	Action          Action      `json:"action" validate:"required,oneof=Added Removed"`
	OccurredAt      time.Time   `json:"occurred_at" validate:"required"`

	// Denormalized from the owning authorization for fast grouping
	Workspace  string `json:"workspace,omitempty"`
	DataSource string `json:"data_source,omitempty"`

	// Dependent consumers of the grant; order is display-relevant
	RelatedStreamNames []string `json:"related_stream_names,omitempty"`
}

// NewEvent creates a validated event
func NewEvent(id, authorizationID, subjectName string, action Action, occurredAt time.Time) (*Event, error) {
	e := &Event{
		ID:              id,
		AuthorizationID: authorizationID,
		SubjectName:     subjectName,
		Action:          action,
		OccurredAt:      occurredAt,
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Validate checks the required-field contract. A violation is a caller bug,
// surfaced at ingestion rather than inside aggregation loops.
func (e *Event) Validate() error {
	if e.ID == "" {
		return errors.NewValidationError("MISSING_EVENT_ID", "event ID is required")
	}
	if e.AuthorizationID == "" {
		return errors.NewValidationError("MISSING_AUTHORIZATION_ID", "authorization ID is required")
	}
	if e.SubjectName == "" {
		return errors.NewValidationError("MISSING_SUBJECT_NAME", "subject name is required")
	}
	if _, err := ParseAction(string(e.Action)); err != nil {
		return err
	}
	if e.OccurredAt.IsZero() {
		return errors.NewValidationError("MISSING_OCCURRED_AT", "occurrence timestamp is required")
	}
	return nil
}

// RelatedStreamCount is derived from the stream-name list so the count can
// never drift from the names.
func (e *Event) RelatedStreamCount() int {
	return len(e.RelatedStreamNames)
}

// Clone returns a deep copy of the event
func (e *Event) Clone() Event {
	clone := *e
	if e.RelatedStreamNames != nil {
		clone.RelatedStreamNames = make([]string, len(e.RelatedStreamNames))
		copy(clone.RelatedStreamNames, e.RelatedStreamNames)
	}
	return clone
}
