package wizard

import (
	"fmt"

	"drycleaning/internal/pkg/errs"
)

// Stage represents the position in the outer order wizard flow.
// The flow is linear with a nested cyclic item sub-flow inside the
// ItemCollection stage.
//
// Stage transitions:
//
//	ClientAndOrderInfo -> ItemCollection -> OrderAdjustments -> Confirmation -> Completed
//
// Backward transitions go to the immediate predecessor. Completed is
// terminal. Forward transitions are additionally gated by per-stage
// completion predicates enforced by the Session aggregate.
type Stage int

const (
	// StageUnknown represents an invalid or undefined stage.
	// This value (0) helps catch uninitialized Stage values.
	StageUnknown Stage = iota

	// StageClientAndOrderInfo is where the client and the receiving branch
	// are recorded.
	StageClientAndOrderInfo

	// StageItemCollection is where order items are configured through the
	// nested item sub-flow. The order must collect at least one item
	// before it can move on.
	StageItemCollection

	// StageOrderAdjustments is where order-level discount, urgency,
	// payment method and prepayment are set.
	StageOrderAdjustments

	// StageConfirmation shows the full order for review before completion.
	StageConfirmation

	// StageCompleted is the terminal stage: the order has been placed and
	// the session is immutable.
	StageCompleted
)

func getStageStrings() map[Stage]string {
	return map[Stage]string{
		StageUnknown:            "Unknown",
		StageClientAndOrderInfo: "ClientAndOrderInfo",
		StageItemCollection:     "ItemCollection",
		StageOrderAdjustments:   "OrderAdjustments",
		StageConfirmation:       "Confirmation",
		StageCompleted:          "Completed",
	}
}

// Validate checks if the Stage value is one of the defined wizard stages.
// StageUnknown (0) and out-of-range values are invalid.
func (s Stage) Validate() error {
	if s < StageClientAndOrderInfo || s > StageCompleted {
		return errs.NewValueIsInvalidErrorWithCause("stage is invalid",
			fmt.Errorf("%d is not a valid stage", s))
	}
	return nil
}

// String returns the human-readable name of the stage.
func (s Stage) String() string {
	if str, ok := getStageStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Next returns the stage that follows this one.
//
// Returns:
//   - (next, nil) for every stage before Confirmation
//   - (0, error) for Confirmation and Completed: entering Completed goes
//     through the explicit completion operation, never plain advancing
func (s Stage) Next() (Stage, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if s >= StageConfirmation {
		return 0, errs.NewValueIsInvalidErrorWithCause("stage is invalid",
			fmt.Errorf("%s has no next stage to advance to", s))
	}
	return s + 1, nil
}

// Prev returns the immediate predecessor of this stage.
//
// Returns:
//   - (previous, nil) for every stage between ItemCollection and
//     Confirmation
//   - (0, error) for ClientAndOrderInfo, which has no predecessor, and
//     for the immutable Completed stage
func (s Stage) Prev() (Stage, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if s == StageClientAndOrderInfo {
		return 0, errs.NewValueIsInvalidErrorWithCause("stage is invalid",
			fmt.Errorf("%s is the first stage", s))
	}
	if s == StageCompleted {
		return 0, errs.NewValueIsInvalidErrorWithCause("stage is invalid",
			fmt.Errorf("%s is terminal", s))
	}
	return s - 1, nil
}

// Complete transitions the stage to Completed.
//
// Valid transitions:
//   - Confirmation -> Completed
//
// Returns:
//   - (Completed, nil) on valid transition
//   - (0, error) if the wizard is not at the Confirmation stage
func (s Stage) Complete() (Stage, error) {
	if s != StageConfirmation {
		return 0, errs.NewValueIsInvalidErrorWithCause("stage is invalid",
			fmt.Errorf("%s is not a valid stage to complete from", s))
	}
	return StageCompleted, nil
}
