package analytics

import (
	"go.uber.org/zap"

	"github.com/authlens/change-analytics/internal/domain/change"
	"github.com/authlens/change-analytics/internal/domain/errors"
)

// Service is the orchestration facade the UI layer invokes. It is stateless
// over its inputs: every call takes its own snapshot and returns a fresh
// result, so concurrent invocations need no coordination.
type Service struct {
	logger *zap.Logger
}

// NewService creates the analytics facade
func NewService(logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{logger: logger}
}

// QueryRequest carries one analytics invocation
type QueryRequest struct {
	Snapshot *change.Snapshot
	Criteria Criteria

	// Optional table sort; nil leaves rows in filtered input order
	Sort *SortState
}

// QueryResult is the complete dashboard view for one invocation
type QueryResult struct {
	// Rows reflect the full criteria (date, action, search, scope)
	Rows []change.Event

	// Aggregates reflect date range and authorization scope only, so the
	// charts keep their full Added/Removed split while the table is
	// narrowed to one action or a search term.
	DayBuckets          []DayBucket
	DataSourceSummaries []DataSourceSummary
}

// Query applies filter, sort and both aggregate views over the snapshot.
// An inverted date range produces an empty result, not an error; a
// malformed snapshot fails fast with a validation error.
func (s *Service) Query(req *QueryRequest) (*QueryResult, error) {
	if req == nil {
		return nil, errors.NewValidationError("INVALID_REQUEST", "request cannot be nil")
	}
	if req.Snapshot == nil {
		return nil, errors.NewValidationError("MISSING_SNAPSHOT", "snapshot is required")
	}
	if err := req.Snapshot.Validate(); err != nil {
		return nil, err
	}

	rows := FilterEvents(req.Snapshot.Events, req.Criteria)
	if req.Sort != nil {
		rows = SortEvents(rows, req.Sort.Field, req.Sort.Order)
	}

	result := &QueryResult{Rows: rows}

	// Chart scope keeps both actions and ignores the search term
	chartEvents := FilterEvents(req.Snapshot.Events, Criteria{
		AuthorizationID: req.Criteria.AuthorizationID,
	})
	if req.Criteria.DateRange != nil {
		r := *req.Criteria.DateRange
		idx := req.Snapshot.Index()
		result.DayBuckets = AggregateByDay(chartEvents, r, idx)
		result.DataSourceSummaries = AggregateByDataSource(chartEvents, r)
	}

	s.logger.Debug("analytics query evaluated",
		zap.Int("events", len(req.Snapshot.Events)),
		zap.Int("rows", len(result.Rows)),
		zap.Int("day_buckets", len(result.DayBuckets)),
		zap.Int("data_sources", len(result.DataSourceSummaries)))

	return result, nil
}
