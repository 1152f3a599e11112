package commands

import (
	"errors"

	"drycleaning/internal/pkg/guard"
)

var ErrStartWizardCommandIsNotConstructed = errors.New(
	"StartWizardCommand must be created via NewStartWizardCommand constructor",
)

// StartWizardCommand represents a request to open a new order wizard
// session. The session identifier is issued by the authoritative backend,
// so the command carries no payload of its own.
type StartWizardCommand struct { //nolint:recvcheck //using for validation
	guard guard.ConstructorGuard
}

// NewStartWizardCommand creates a command to open a new wizard session.
func NewStartWizardCommand() (StartWizardCommand, error) {
	return StartWizardCommand{
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c StartWizardCommand) Validate() error {
	return c.guard.Validate(ErrStartWizardCommandIsNotConstructed)
}
