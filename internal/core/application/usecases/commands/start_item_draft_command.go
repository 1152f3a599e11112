package commands

import (
	"errors"

	"drycleaning/internal/core/domain/model/kernel"
	"drycleaning/internal/pkg/guard"
)

var ErrStartItemDraftCommandIsNotConstructed = errors.New(
	"StartItemDraftCommand must be created via NewStartItemDraftCommand constructor",
)

// StartItemDraftCommand opens the nested item sub-flow: either for a
// brand-new item with a fresh local id, or as an edit of an already
// committed item, identified by the committed item's local id.
type StartItemDraftCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID
	localID   kernel.UUID
	edit      bool

	guard guard.ConstructorGuard
}

// NewStartItemDraftCommand creates a command to open an item draft.
func NewStartItemDraftCommand(sessionID, localID kernel.UUID, edit bool) (StartItemDraftCommand, error) {
	if err := errors.Join(sessionID.Validate(), localID.Validate()); err != nil {
		return StartItemDraftCommand{}, err
	}

	return StartItemDraftCommand{
		sessionID: sessionID,
		localID:   localID,
		edit:      edit,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c StartItemDraftCommand) Validate() error {
	return c.guard.Validate(ErrStartItemDraftCommandIsNotConstructed)
}

// SessionID returns the wizard session identifier.
func (c StartItemDraftCommand) SessionID() kernel.UUID {
	return c.sessionID
}

// LocalID returns the item local identifier the draft is opened with.
func (c StartItemDraftCommand) LocalID() kernel.UUID {
	return c.localID
}

// Edit reports whether the draft edits an already committed item.
func (c StartItemDraftCommand) Edit() bool {
	return c.edit
}
