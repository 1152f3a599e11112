package wizard

import (
	"fmt"

	"drycleaning/internal/pkg/errs"
)

// Status represents the lifecycle state of a wizard session, orthogonal to
// the stage: the stage says where in the flow the session is, the status
// says whether the session is still alive.
//
// Status transitions:
//
//	Active ──┬──> Completed
//	         ├──> Cancelled
//	         └──> Expired
//
// Completed and Cancelled are terminal. Expired is set by the session TTL
// job when a session has been idle for too long.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusActive is the only status in which the session accepts
	// transitions.
	StatusActive

	// StatusCompleted indicates the order was placed. Terminal.
	StatusCompleted

	// StatusCancelled indicates the operator abandoned the wizard.
	// Terminal.
	StatusCancelled

	// StatusExpired indicates the session outlived its TTL without
	// completing.
	StatusExpired
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "Unknown",
		StatusActive:    "Active",
		StatusCompleted: "Completed",
		StatusCancelled: "Cancelled",
		StatusExpired:   "Expired",
	}
}

// Validate checks if the Status value is one of the defined statuses.
func (s Status) Validate() error {
	if s < StatusActive || s > StatusExpired {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ValidateActive checks the session status still accepts transitions.
func (s Status) ValidateActive() error {
	if s != StatusActive {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s session does not accept transitions", s))
	}
	return nil
}

// Complete transitions the status to Completed.
//
// Returns:
//   - (Completed, nil) from Active
//   - (0, error) otherwise
func (s Status) Complete() (Status, error) {
	if err := s.ValidateActive(); err != nil {
		return 0, err
	}
	return StatusCompleted, nil
}

// Cancel transitions the status to Cancelled.
//
// Returns:
//   - (Cancelled, nil) from Active
//   - (0, error) otherwise
func (s Status) Cancel() (Status, error) {
	if err := s.ValidateActive(); err != nil {
		return 0, err
	}
	return StatusCancelled, nil
}

// Expire transitions the status to Expired.
//
// Returns:
//   - (Expired, nil) from Active
//   - (0, error) otherwise
func (s Status) Expire() (Status, error) {
	if err := s.ValidateActive(); err != nil {
		return 0, err
	}
	return StatusExpired, nil
}
