package commands

import (
	"errors"

	"drycleaning/internal/core/domain/model/kernel"
	"drycleaning/internal/core/domain/model/pricing"
	"drycleaning/internal/pkg/guard"
)

var ErrSetOrderAdjustmentsCommandIsNotConstructed = errors.New(
	"SetOrderAdjustmentsCommand must be created via NewSetOrderAdjustmentsCommand constructor",
)

// SetOrderAdjustmentsCommand replaces the order-level adjustments of a
// session: discount, urgency, payment method and prepayment. Every
// committed item is repriced under the new adjustments in the same
// transaction.
type SetOrderAdjustmentsCommand struct { //nolint:recvcheck //using for validation
	sessionID   kernel.UUID
	adjustments pricing.Adjustments

	guard guard.ConstructorGuard
}

// NewSetOrderAdjustmentsCommand creates a command to replace the
// order-level adjustments.
func NewSetOrderAdjustmentsCommand(
	sessionID kernel.UUID, adjustments pricing.Adjustments,
) (SetOrderAdjustmentsCommand, error) {
	if err := errors.Join(sessionID.Validate(), adjustments.Validate()); err != nil {
		return SetOrderAdjustmentsCommand{}, err
	}

	return SetOrderAdjustmentsCommand{
		sessionID:   sessionID,
		adjustments: adjustments,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SetOrderAdjustmentsCommand) Validate() error {
	return c.guard.Validate(ErrSetOrderAdjustmentsCommandIsNotConstructed)
}

// SessionID returns the wizard session identifier.
func (c SetOrderAdjustmentsCommand) SessionID() kernel.UUID {
	return c.sessionID
}

// Adjustments returns the new order-level adjustments.
func (c SetOrderAdjustmentsCommand) Adjustments() pricing.Adjustments {
	return c.adjustments
}
