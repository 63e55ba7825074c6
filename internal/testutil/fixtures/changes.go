package fixtures

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/authlens/change-analytics/internal/domain/change"
)

// EventBuilder builds test change events
type EventBuilder struct {
	t     *testing.T
	event change.Event
}

// NewEventBuilder creates an EventBuilder with valid defaults
func NewEventBuilder(t *testing.T) *EventBuilder {
	t.Helper()
	return &EventBuilder{
		t: t,
		event: change.Event{
			ID:              "perm-" + uuid.New().String()[:8],
			AuthorizationID: "auth-meta-1",
			SubjectName:     "Campaign Read Access",
			SubjectKind:     change.SubjectPermission,
			Action:          change.ActionAdded,
			OccurredAt:      time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC),
			Workspace:       "SampleCompany-NA",
			DataSource:      "Meta",
		},
	}
}

// WithID sets the event ID
func (b *EventBuilder) WithID(id string) *EventBuilder {
	b.event.ID = id
	return b
}

// WithAuthorization sets the owning authorization ID
func (b *EventBuilder) WithAuthorization(id string) *EventBuilder {
	b.event.AuthorizationID = id
	return b
}

// WithSubjectName sets the changed grant's display name
func (b *EventBuilder) WithSubjectName(name string) *EventBuilder {
	b.event.SubjectName = name
	return b
}

// WithAction sets the change direction
func (b *EventBuilder) WithAction(action change.Action) *EventBuilder {
	b.event.Action = action
	return b
}

// WithOccurredAt sets the change timestamp
func (b *EventBuilder) WithOccurredAt(ts time.Time) *EventBuilder {
	b.event.OccurredAt = ts
	return b
}

// WithWorkspace sets the denormalized workspace
func (b *EventBuilder) WithWorkspace(workspace string) *EventBuilder {
	b.event.Workspace = workspace
	return b
}

// WithDataSource sets the denormalized data source
func (b *EventBuilder) WithDataSource(source string) *EventBuilder {
	b.event.DataSource = source
	return b
}

// WithStreams sets the related stream names
func (b *EventBuilder) WithStreams(names ...string) *EventBuilder {
	b.event.RelatedStreamNames = names
	return b
}

// Build validates and returns the event
func (b *EventBuilder) Build() change.Event {
	b.t.Helper()
	require.NoError(b.t, b.event.Validate())
	return b.event
}

// AuthorizationBuilder builds test authorizations
type AuthorizationBuilder struct {
	t    *testing.T
	auth change.Authorization
}

// NewAuthorizationBuilder creates an AuthorizationBuilder with valid defaults
func NewAuthorizationBuilder(t *testing.T) *AuthorizationBuilder {
	t.Helper()
	return &AuthorizationBuilder{
		t: t,
		auth: change.Authorization{
			ID:              "auth-" + uuid.New().String()[:8],
			Name:            "Meta NA Account",
			DataSourceType:  "Meta",
			Workspace:       "SampleCompany-NA",
			CreatedAt:       time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			EntityCount:     10,
			DatastreamCount: 4,
			Status:          change.StatusConnected,
		},
	}
}

// WithID sets the authorization ID
func (b *AuthorizationBuilder) WithID(id string) *AuthorizationBuilder {
	b.auth.ID = id
	return b
}

// WithName sets the display name
func (b *AuthorizationBuilder) WithName(name string) *AuthorizationBuilder {
	b.auth.Name = name
	return b
}

// WithDataSourceType sets the connected source system
func (b *AuthorizationBuilder) WithDataSourceType(t string) *AuthorizationBuilder {
	b.auth.DataSourceType = t
	return b
}

// WithWorkspace sets the workspace
func (b *AuthorizationBuilder) WithWorkspace(workspace string) *AuthorizationBuilder {
	b.auth.Workspace = workspace
	return b
}

// WithCreatedAt sets the creation timestamp
func (b *AuthorizationBuilder) WithCreatedAt(ts time.Time) *AuthorizationBuilder {
	b.auth.CreatedAt = ts
	return b
}

// WithLastUsedAt sets the last-used timestamp; nil means never used
func (b *AuthorizationBuilder) WithLastUsedAt(ts *time.Time) *AuthorizationBuilder {
	b.auth.LastUsedAt = ts
	return b
}

// WithStatus sets the connection status
func (b *AuthorizationBuilder) WithStatus(status change.Status) *AuthorizationBuilder {
	b.auth.Status = status
	return b
}

// Build returns the authorization
func (b *AuthorizationBuilder) Build() change.Authorization {
	return b.auth
}
