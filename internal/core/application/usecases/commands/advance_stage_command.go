package commands

import (
	"errors"

	"drycleaning/internal/core/domain/model/kernel"
	"drycleaning/internal/pkg/guard"
)

var ErrAdvanceStageCommandIsNotConstructed = errors.New(
	"AdvanceStageCommand must be created via NewAdvanceStageCommand constructor",
)

// AdvanceStageCommand requests a forward transition of the wizard to its
// next stage. The transition is gated by the current stage's completion
// predicate.
type AdvanceStageCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAdvanceStageCommand creates a command to advance the wizard.
func NewAdvanceStageCommand(sessionID kernel.UUID) (AdvanceStageCommand, error) {
	if err := sessionID.Validate(); err != nil {
		return AdvanceStageCommand{}, err
	}

	return AdvanceStageCommand{
		sessionID: sessionID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceStageCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceStageCommandIsNotConstructed)
}

// SessionID returns the wizard session identifier.
func (c AdvanceStageCommand) SessionID() kernel.UUID {
	return c.sessionID
}
