package commands

import (
	"errors"

	"drycleaning/internal/core/domain/model/kernel"
	"drycleaning/internal/pkg/guard"
)

var ErrGoBackCommandIsNotConstructed = errors.New(
	"GoBackCommand must be created via NewGoBackCommand constructor",
)

// GoBackCommand requests a backward transition of the wizard to its
// immediate predecessor stage. Entered data is kept.
type GoBackCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGoBackCommand creates a command to navigate the wizard back.
func NewGoBackCommand(sessionID kernel.UUID) (GoBackCommand, error) {
	if err := sessionID.Validate(); err != nil {
		return GoBackCommand{}, err
	}

	return GoBackCommand{
		sessionID: sessionID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c GoBackCommand) Validate() error {
	return c.guard.Validate(ErrGoBackCommandIsNotConstructed)
}

// SessionID returns the wizard session identifier.
func (c GoBackCommand) SessionID() kernel.UUID {
	return c.sessionID
}
