package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/authlens/change-analytics/internal/domain/change"
	"github.com/authlens/change-analytics/internal/testutil/fixtures"
)

func testIndex(t *testing.T) change.AuthorizationIndex {
	t.Helper()
	auths := []change.Authorization{
		fixtures.NewAuthorizationBuilder(t).WithID("auth-meta-1").WithName("Meta NA Account").WithDataSourceType("Meta").Build(),
		fixtures.NewAuthorizationBuilder(t).WithID("auth-gads-1").WithName("Google Ads NA Account").WithDataSourceType("Google Ads").Build(),
	}
	return change.NewAuthorizationIndex(auths)
}

func TestAggregateByDay(t *testing.T) {
	idx := testIndex(t)

	t.Run("three day scenario with zero-filled middle day", func(t *testing.T) {
		events := []change.Event{
			fixtures.NewEventBuilder(t).WithAction(change.ActionAdded).WithOccurredAt(day(1)).Build(),
			fixtures.NewEventBuilder(t).WithAction(change.ActionRemoved).WithOccurredAt(day(1)).Build(),
			fixtures.NewEventBuilder(t).WithAction(change.ActionAdded).WithOccurredAt(day(3)).Build(),
		}

		buckets := AggregateByDay(events, change.NewDateRange(day(1), day(3)), idx)

		require.Len(t, buckets, 3)
		assert.Equal(t, 1, buckets[0].AddedCount)
		assert.Equal(t, 1, buckets[0].RemovedCount)
		assert.Equal(t, 0, buckets[1].AddedCount)
		assert.Equal(t, 0, buckets[1].RemovedCount)
		assert.Equal(t, 1, buckets[2].AddedCount)
		assert.Equal(t, 0, buckets[2].RemovedCount)
	})

	t.Run("bucket completeness over an n-day range", func(t *testing.T) {
		buckets := AggregateByDay(nil, change.NewDateRange(day(1), day(8)), idx)

		require.Len(t, buckets, 8)
		for _, b := range buckets {
			assert.Zero(t, b.AddedCount)
			assert.Zero(t, b.RemovedCount)
			assert.Empty(t, b.AddedByAuthorization)
		}
	})

	t.Run("inverted range yields no buckets", func(t *testing.T) {
		events := []change.Event{fixtures.NewEventBuilder(t).WithOccurredAt(day(3)).Build()}
		buckets := AggregateByDay(events, change.NewDateRange(day(5), day(1)), idx)
		assert.Empty(t, buckets)
	})

	t.Run("count conservation per bucket", func(t *testing.T) {
		events := []change.Event{
			fixtures.NewEventBuilder(t).WithAction(change.ActionAdded).WithOccurredAt(day(2).Add(3 * time.Hour)).Build(),
			fixtures.NewEventBuilder(t).WithAction(change.ActionAdded).WithOccurredAt(day(2).Add(9 * time.Hour)).Build(),
			fixtures.NewEventBuilder(t).WithAction(change.ActionRemoved).WithOccurredAt(day(2).Add(20 * time.Hour)).Build(),
		}

		buckets := AggregateByDay(events, change.NewDateRange(day(2), day(2)), idx)

		require.Len(t, buckets, 1)
		assert.Equal(t, len(events), buckets[0].AddedCount+buckets[0].RemovedCount)
	})

	t.Run("breakdown ranks by count with stable ties", func(t *testing.T) {
		events := []change.Event{
			fixtures.NewEventBuilder(t).WithAuthorization("auth-meta-1").WithOccurredAt(day(1)).Build(),
			fixtures.NewEventBuilder(t).WithAuthorization("auth-gads-1").WithOccurredAt(day(1)).Build(),
			fixtures.NewEventBuilder(t).WithAuthorization("auth-gads-1").WithOccurredAt(day(1)).Build(),
		}

		buckets := AggregateByDay(events, change.NewDateRange(day(1), day(1)), idx)

		require.Len(t, buckets, 1)
		breakdown := buckets[0].AddedByAuthorization
		require.Len(t, breakdown, 2)
		assert.Equal(t, "auth-gads-1", breakdown[0].AuthorizationID)
		assert.Equal(t, 2, breakdown[0].Count)
		assert.Equal(t, "Google Ads NA Account", breakdown[0].DisplayName)
		assert.Equal(t, "auth-meta-1", breakdown[1].AuthorizationID)
	})

	t.Run("unknown authorization falls back to placeholder and still counts", func(t *testing.T) {
		events := []change.Event{
			fixtures.NewEventBuilder(t).WithAuthorization("auth-gone").WithOccurredAt(day(1)).Build(),
		}

		buckets := AggregateByDay(events, change.NewDateRange(day(1), day(1)), idx)

		require.Len(t, buckets, 1)
		assert.Equal(t, 1, buckets[0].AddedCount)
		require.Len(t, buckets[0].AddedByAuthorization, 1)
		assert.Equal(t, UnknownAuthorizationLabel, buckets[0].AddedByAuthorization[0].DisplayName)
	})
}

func TestAggregateByDataSource(t *testing.T) {
	t.Run("groups and ranks by total", func(t *testing.T) {
		events := []change.Event{
			fixtures.NewEventBuilder(t).WithDataSource("Meta").WithAction(change.ActionAdded).WithOccurredAt(day(1)).Build(),
			fixtures.NewEventBuilder(t).WithDataSource("Google Ads").WithAction(change.ActionAdded).WithOccurredAt(day(1)).Build(),
			fixtures.NewEventBuilder(t).WithDataSource("Google Ads").WithAction(change.ActionRemoved).WithOccurredAt(day(2)).Build(),
			fixtures.NewEventBuilder(t).WithDataSource("Google Ads").WithAction(change.ActionAdded).WithOccurredAt(day(3)).Build(),
		}

		summaries := AggregateByDataSource(events, change.NewDateRange(day(1), day(3)))

		require.Len(t, summaries, 2)
		assert.Equal(t, "Google Ads", summaries[0].DataSource)
		assert.Equal(t, 3, summaries[0].Total)
		assert.Equal(t, 2, summaries[0].AddedCount)
		assert.Equal(t, 1, summaries[0].RemovedCount)
		assert.Equal(t, 75, summaries[0].Percentage)
		assert.Equal(t, "Meta", summaries[1].DataSource)
		assert.Equal(t, 25, summaries[1].Percentage)
	})

	t.Run("percentages sum close to 100", func(t *testing.T) {
		events := []change.Event{
			fixtures.NewEventBuilder(t).WithDataSource("Meta").WithOccurredAt(day(1)).Build(),
			fixtures.NewEventBuilder(t).WithDataSource("Google Ads").WithOccurredAt(day(1)).Build(),
			fixtures.NewEventBuilder(t).WithDataSource("TikTok Ads").WithOccurredAt(day(1)).Build(),
		}

		summaries := AggregateByDataSource(events, change.NewDateRange(day(1), day(1)))

		sum := 0
		for _, s := range summaries {
			sum += s.Percentage
		}
		assert.InDelta(t, 100, sum, float64(len(summaries)))
	})

	t.Run("excludes events outside the range", func(t *testing.T) {
		events := []change.Event{
			fixtures.NewEventBuilder(t).WithDataSource("Meta").WithOccurredAt(day(1)).Build(),
			fixtures.NewEventBuilder(t).WithDataSource("Meta").WithOccurredAt(day(9)).Build(),
		}

		summaries := AggregateByDataSource(events, change.NewDateRange(day(1), day(5)))

		require.Len(t, summaries, 1)
		assert.Equal(t, 1, summaries[0].Total)
		assert.Equal(t, 100, summaries[0].Percentage)
	})

	t.Run("empty input degrades to no summaries", func(t *testing.T) {
		assert.Empty(t, AggregateByDataSource(nil, change.NewDateRange(day(1), day(5))))
	})

	t.Run("inverted range yields no summaries", func(t *testing.T) {
		events := []change.Event{fixtures.NewEventBuilder(t).WithOccurredAt(day(3)).Build()}
		assert.Empty(t, AggregateByDataSource(events, change.NewDateRange(day(5), day(1))))
	})

	t.Run("stable tie order by first appearance", func(t *testing.T) {
		events := []change.Event{
			fixtures.NewEventBuilder(t).WithDataSource("Twitter Ads").WithOccurredAt(day(1)).Build(),
			fixtures.NewEventBuilder(t).WithDataSource("LinkedIn Ads").WithOccurredAt(day(1)).Build(),
		}

		summaries := AggregateByDataSource(events, change.NewDateRange(day(1), day(1)))

		require.Len(t, summaries, 2)
		assert.Equal(t, "Twitter Ads", summaries[0].DataSource)
		assert.Equal(t, "LinkedIn Ads", summaries[1].DataSource)
	})
}

func TestTopBreakdown(t *testing.T) {
	breakdown := []AuthorizationBreakdown{
		{AuthorizationID: "a", Count: 9},
		{AuthorizationID: "b", Count: 5},
		{AuthorizationID: "c", Count: 3},
		{AuthorizationID: "d", Count: 2},
		{AuthorizationID: "e", Count: 2},
		{AuthorizationID: "f", Count: 1},
		{AuthorizationID: "g", Count: 1},
	}

	top, remainder := TopBreakdown(breakdown, 5)
	assert.Len(t, top, 5)
	assert.Equal(t, 2, remainder)

	top, remainder = TopBreakdown(breakdown[:3], 5)
	assert.Len(t, top, 3)
	assert.Zero(t, remainder)

	top, remainder = TopBreakdown(breakdown, 0)
	assert.Empty(t, top)
	assert.Equal(t, 7, remainder)
}
