package change

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/authlens/change-analytics/internal/domain/errors"
)

var validate = validator.New()

// Snapshot is the read-only input the engine operates on: a wholesale
// collection of events and the authorizations they reference, supplied per
// invocation by an external data-provisioning collaborator.
type Snapshot struct {
	Events         []Event         `json:"events" validate:"dive"`
	Authorizations []Authorization `json:"authorizations" validate:"dive"`
}

// Validate fail-fasts on malformed records so aggregation loops can assume
// well-formed input. Unresolvable authorization references are NOT an error;
// grouping and export degrade to placeholder labels for those.
func (s *Snapshot) Validate() error {
	if err := validate.Struct(s); err != nil {
		return errors.NewValidationError("MALFORMED_SNAPSHOT",
			"snapshot contains malformed records").WithCause(err)
	}
	for i := range s.Events {
		if err := s.Events[i].Validate(); err != nil {
			return errors.NewValidationError("MALFORMED_EVENT",
				fmt.Sprintf("event at index %d is malformed", i)).WithCause(err)
		}
	}
	for i := range s.Authorizations {
		a := &s.Authorizations[i]
		if a.ID == "" || a.Name == "" {
			return errors.NewValidationError("MALFORMED_AUTHORIZATION",
				fmt.Sprintf("authorization at index %d is missing required fields", i))
		}
		if _, err := ParseStatus(string(a.Status)); err != nil {
			return errors.NewValidationError("MALFORMED_AUTHORIZATION",
				fmt.Sprintf("authorization at index %d has an invalid status", i)).WithCause(err)
		}
		if a.EntityCount < 0 || a.DatastreamCount < 0 {
			return errors.NewValidationError("MALFORMED_AUTHORIZATION",
				fmt.Sprintf("authorization at index %d has negative counts", i))
		}
	}
	return nil
}

// Index builds the authorization lookup used during grouping and export
func (s *Snapshot) Index() AuthorizationIndex {
	return NewAuthorizationIndex(s.Authorizations)
}
