package commands

import (
	"errors"

	"drycleaning/internal/core/domain/model/kernel"
	"drycleaning/internal/pkg/guard"
)

var ErrCompleteOrderCommandIsNotConstructed = errors.New(
	"CompleteOrderCommand must be created via NewCompleteOrderCommand constructor",
)

// CompleteOrderCommand finishes the wizard from the confirmation stage.
// Completing an already completed session is a no-op.
type CompleteOrderCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCompleteOrderCommand creates a command to finish the wizard.
func NewCompleteOrderCommand(sessionID kernel.UUID) (CompleteOrderCommand, error) {
	if err := sessionID.Validate(); err != nil {
		return CompleteOrderCommand{}, err
	}

	return CompleteOrderCommand{
		sessionID: sessionID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrCompleteOrderCommandIsNotConstructed)
}

// SessionID returns the wizard session identifier.
func (c CompleteOrderCommand) SessionID() kernel.UUID {
	return c.sessionID
}
