package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/authlens/change-analytics/internal/domain/change"
	"github.com/authlens/change-analytics/internal/testutil/fixtures"
)

func eventIDs(events []change.Event) []string {
	ids := make([]string, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.ID)
	}
	return ids
}

func TestSortEvents(t *testing.T) {
	events := []change.Event{
		fixtures.NewEventBuilder(t).WithID("e-1").WithSubjectName("budget Management").WithOccurredAt(day(3)).WithAction(change.ActionRemoved).Build(),
		fixtures.NewEventBuilder(t).WithID("e-2").WithSubjectName("Audience Data").WithOccurredAt(day(1)).WithAction(change.ActionAdded).Build(),
		fixtures.NewEventBuilder(t).WithID("e-3").WithSubjectName("Campaign Read").WithOccurredAt(day(2)).WithAction(change.ActionAdded).Build(),
	}

	tests := []struct {
		name  string
		field SortField
		order SortOrder
		want  []string
	}{
		{"timestamp ascending", SortByOccurredAt, OrderAscending, []string{"e-2", "e-3", "e-1"}},
		{"timestamp descending", SortByOccurredAt, OrderDescending, []string{"e-1", "e-3", "e-2"}},
		{"subject name ascending is case-insensitive", SortBySubjectName, OrderAscending, []string{"e-2", "e-1", "e-3"}},
		{"action ascending", SortByAction, OrderAscending, []string{"e-2", "e-3", "e-1"}},
		{"id descending", SortByID, OrderDescending, []string{"e-3", "e-2", "e-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SortEvents(events, tt.field, tt.order)
			assert.Equal(t, tt.want, eventIDs(got))
		})
	}
}

func TestSortEventsStability(t *testing.T) {
	sameDay := day(2).Add(10 * time.Hour)
	events := []change.Event{
		fixtures.NewEventBuilder(t).WithID("first").WithOccurredAt(sameDay).Build(),
		fixtures.NewEventBuilder(t).WithID("second").WithOccurredAt(sameDay).Build(),
		fixtures.NewEventBuilder(t).WithID("third").WithOccurredAt(sameDay).Build(),
		fixtures.NewEventBuilder(t).WithID("earlier").WithOccurredAt(day(1)).Build(),
	}

	t.Run("ascending keeps tied input order", func(t *testing.T) {
		got := SortEvents(events, SortByOccurredAt, OrderAscending)
		assert.Equal(t, []string{"earlier", "first", "second", "third"}, eventIDs(got))
	})

	t.Run("descending keeps tied input order", func(t *testing.T) {
		got := SortEvents(events, SortByOccurredAt, OrderDescending)
		assert.Equal(t, []string{"first", "second", "third", "earlier"}, eventIDs(got))
	})
}

func TestSortEventsDoesNotMutateInput(t *testing.T) {
	events := []change.Event{
		fixtures.NewEventBuilder(t).WithID("e-2").WithOccurredAt(day(2)).Build(),
		fixtures.NewEventBuilder(t).WithID("e-1").WithOccurredAt(day(1)).Build(),
	}

	_ = SortEvents(events, SortByOccurredAt, OrderAscending)

	require.Equal(t, "e-2", events[0].ID)
	require.Equal(t, "e-1", events[1].ID)
}

func TestSortStateToggle(t *testing.T) {
	state := DefaultSortState()
	require.Equal(t, SortByOccurredAt, state.Field)
	require.Equal(t, OrderDescending, state.Order)

	// Same field flips the order
	state.Toggle(SortByOccurredAt)
	assert.Equal(t, OrderAscending, state.Order)
	state.Toggle(SortByOccurredAt)
	assert.Equal(t, OrderDescending, state.Order)

	// New field resets to descending
	state.Toggle(SortByOccurredAt)
	state.Toggle(SortBySubjectName)
	assert.Equal(t, SortBySubjectName, state.Field)
	assert.Equal(t, OrderDescending, state.Order)
}

func TestSortAuthorizations(t *testing.T) {
	used := day(20)
	auths := []change.Authorization{
		fixtures.NewAuthorizationBuilder(t).WithID("a-1").WithName("zeta").WithCreatedAt(day(5)).WithLastUsedAt(&used).Build(),
		fixtures.NewAuthorizationBuilder(t).WithID("a-2").WithName("Alpha").WithCreatedAt(day(1)).WithLastUsedAt(nil).Build(),
		fixtures.NewAuthorizationBuilder(t).WithID("a-3").WithName("meta").WithCreatedAt(day(3)).WithLastUsedAt(&used).Build(),
	}

	t.Run("by name ascending case-insensitive", func(t *testing.T) {
		got := SortAuthorizations(auths, AuthSortByName, OrderAscending)
		assert.Equal(t, "a-2", got[0].ID)
		assert.Equal(t, "a-3", got[1].ID)
		assert.Equal(t, "a-1", got[2].ID)
	})

	t.Run("by created descending", func(t *testing.T) {
		got := SortAuthorizations(auths, AuthSortByCreatedAt, OrderDescending)
		assert.Equal(t, "a-1", got[0].ID)
	})

	t.Run("never-used sorts first ascending by last use", func(t *testing.T) {
		got := SortAuthorizations(auths, AuthSortByLastUsed, OrderAscending)
		assert.Equal(t, "a-2", got[0].ID)
	})
}

func TestFilterAuthorizations(t *testing.T) {
	auths := []change.Authorization{
		fixtures.NewAuthorizationBuilder(t).WithID("a-1").WithName("Meta NA Account").WithDataSourceType("Meta").WithWorkspace("SampleCompany-NA").Build(),
		fixtures.NewAuthorizationBuilder(t).WithID("a-2").WithName("Sheets EMEA Account").WithDataSourceType("Google Sheets").WithWorkspace("SampleCompany-EMEA").WithStatus(change.StatusExpired).Build(),
	}

	t.Run("zero criteria matches all", func(t *testing.T) {
		assert.Len(t, FilterAuthorizations(auths, AuthorizationCriteria{}), 2)
	})

	t.Run("workspace selector", func(t *testing.T) {
		got := FilterAuthorizations(auths, AuthorizationCriteria{Workspace: "SampleCompany-EMEA"})
		require.Len(t, got, 1)
		assert.Equal(t, "a-2", got[0].ID)
	})

	t.Run("status selector", func(t *testing.T) {
		got := FilterAuthorizations(auths, AuthorizationCriteria{Status: change.StatusExpired})
		require.Len(t, got, 1)
		assert.Equal(t, "a-2", got[0].ID)
	})

	t.Run("search covers name type workspace and id", func(t *testing.T) {
		got := FilterAuthorizations(auths, AuthorizationCriteria{SearchTerm: "sheets"})
		require.Len(t, got, 1)
		assert.Equal(t, "a-2", got[0].ID)

		got = FilterAuthorizations(auths, AuthorizationCriteria{SearchTerm: "a-1"})
		require.Len(t, got, 1)
		assert.Equal(t, "a-1", got[0].ID)
	})
}
