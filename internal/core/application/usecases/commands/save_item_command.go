package commands

import (
	"errors"

	"drycleaning/internal/core/domain/model/kernel"
	"drycleaning/internal/pkg/guard"
)

var ErrSaveItemCommandIsNotConstructed = errors.New(
	"SaveItemCommand must be created via NewSaveItemCommand constructor",
)

// SaveItemCommand commits the open item draft into the session's order
// items. The local id must match the open draft; retries after a
// successful save are treated as no-ops.
type SaveItemCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID
	localID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewSaveItemCommand creates a command to commit the open item draft.
func NewSaveItemCommand(sessionID, localID kernel.UUID) (SaveItemCommand, error) {
	if err := errors.Join(sessionID.Validate(), localID.Validate()); err != nil {
		return SaveItemCommand{}, err
	}

	return SaveItemCommand{
		sessionID: sessionID,
		localID:   localID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SaveItemCommand) Validate() error {
	return c.guard.Validate(ErrSaveItemCommandIsNotConstructed)
}

// SessionID returns the wizard session identifier.
func (c SaveItemCommand) SessionID() kernel.UUID {
	return c.sessionID
}

// LocalID returns the local identifier of the draft being committed.
func (c SaveItemCommand) LocalID() kernel.UUID {
	return c.localID
}
