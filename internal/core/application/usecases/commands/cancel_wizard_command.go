package commands

import (
	"errors"

	"drycleaning/internal/core/domain/model/kernel"
	"drycleaning/internal/pkg/guard"
)

var ErrCancelWizardCommandIsNotConstructed = errors.New(
	"CancelWizardCommand must be created via NewCancelWizardCommand constructor",
)

// CancelWizardCommand abandons the wizard session. Any open item draft
// is discarded with it. Cancelling twice is a no-op.
type CancelWizardCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCancelWizardCommand creates a command to abandon the wizard.
func NewCancelWizardCommand(sessionID kernel.UUID) (CancelWizardCommand, error) {
	if err := sessionID.Validate(); err != nil {
		return CancelWizardCommand{}, err
	}

	return CancelWizardCommand{
		sessionID: sessionID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelWizardCommand) Validate() error {
	return c.guard.Validate(ErrCancelWizardCommandIsNotConstructed)
}

// SessionID returns the wizard session identifier.
func (c CancelWizardCommand) SessionID() kernel.UUID {
	return c.sessionID
}
