package commands

import (
	"errors"

	"drycleaning/internal/core/domain/model/kernel"
	"drycleaning/internal/pkg/guard"
)

var ErrCancelItemDraftCommandIsNotConstructed = errors.New(
	"CancelItemDraftCommand must be created via NewCancelItemDraftCommand constructor",
)

// CancelItemDraftCommand discards the open item draft without committing
// it. Cancelling when no draft is open is a no-op.
type CancelItemDraftCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCancelItemDraftCommand creates a command to discard the open draft.
func NewCancelItemDraftCommand(sessionID kernel.UUID) (CancelItemDraftCommand, error) {
	if err := sessionID.Validate(); err != nil {
		return CancelItemDraftCommand{}, err
	}

	return CancelItemDraftCommand{
		sessionID: sessionID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelItemDraftCommand) Validate() error {
	return c.guard.Validate(ErrCancelItemDraftCommandIsNotConstructed)
}

// SessionID returns the wizard session identifier.
func (c CancelItemDraftCommand) SessionID() kernel.UUID {
	return c.sessionID
}
