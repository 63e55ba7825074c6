package change

import (
	"time"

	"github.com/authlens/change-analytics/internal/domain/errors"
)

// Status describes the connection state of an authorization
type Status string

const (
	StatusConnected Status = "Connected"
	StatusExpired   Status = "Expired"
	StatusPending   Status = "Pending"
)

// ParseStatus parses a status literal
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusConnected, StatusExpired, StatusPending:
		return Status(s), nil
	default:
		return "", errors.NewValidationError("INVALID_STATUS",
			"status must be Connected, Expired or Pending")
	}
}

// Authorization is a connection granting access to an external data source.
// The engine never mutates authorizations; it reads them for name and type
// lookups during grouping and export.
type Authorization struct {
	ID             string     `json:"id" validate:"required"`
	Name           string     `json:"name" validate:"required"`
	DataSourceType string     `json:"data_source_type"`
	Workspace      string     `json:"workspace"`
	CreatedAt      time.Time  `json:"created_at"`
	LastUsedAt     *time.Time `json:"last_used_at,omitempty"` // nil = never used

	// Display-only demo metrics, not derived from events
	EntityCount     int `json:"entity_count" validate:"gte=0"`
	DatastreamCount int `json:"datastream_count" validate:"gte=0"`

	Status Status `json:"status" validate:"required,oneof=Connected Expired Pending"`
}

// UnknownAuthorizationLabel is the display fallback for events whose
// authorization is absent from the supplied snapshot.
const UnknownAuthorizationLabel = "Unknown Authorization"

// AuthorizationIndex maps authorization IDs to records for O(1) lookup
type AuthorizationIndex map[string]*Authorization

// NewAuthorizationIndex builds a lookup index over the supplied list
func NewAuthorizationIndex(auths []Authorization) AuthorizationIndex {
	idx := make(AuthorizationIndex, len(auths))
	for i := range auths {
		idx[auths[i].ID] = &auths[i]
	}
	return idx
}

// Lookup resolves an authorization by ID, reporting whether it exists
func (idx AuthorizationIndex) Lookup(id string) (*Authorization, bool) {
	a, ok := idx[id]
	return a, ok
}
