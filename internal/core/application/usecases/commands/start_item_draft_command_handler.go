package commands

import (
	"context"
)

// StartItemDraftCommandHandler opens the item sub-flow on the session,
// either for a new item or as a prefilled edit of a committed one.
type StartItemDraftCommandHandler struct {
	uowFactory SessionUoWFactory
}

// NewStartItemDraftCommandHandler creates a handler for opening item drafts.
func NewStartItemDraftCommandHandler(uowFactory SessionUoWFactory) StartItemDraftCommandHandler {
	return StartItemDraftCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle opens the draft on the session and persists it.
func (h *StartItemDraftCommandHandler) Handle(ctx context.Context, cmd StartItemDraftCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.SessionRepository()
	session, err := repo.Get(ctx, cmd.SessionID())
	if err != nil {
		return err
	}

	if cmd.Edit() {
		err = session.StartItemEdit(cmd.LocalID())
	} else {
		err = session.StartNewItemDraft(cmd.LocalID())
	}
	if err != nil {
		return err
	}

	if err = repo.Update(ctx, session); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
