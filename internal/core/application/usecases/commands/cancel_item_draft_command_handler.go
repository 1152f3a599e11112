package commands

import (
	"context"
)

// CancelItemDraftCommandHandler discards the open item draft. A committed
// item being edited stays untouched: the edit simply never lands.
type CancelItemDraftCommandHandler struct {
	uowFactory SessionUoWFactory
}

// NewCancelItemDraftCommandHandler creates a handler for discarding drafts.
func NewCancelItemDraftCommandHandler(uowFactory SessionUoWFactory) CancelItemDraftCommandHandler {
	return CancelItemDraftCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle discards the open draft and persists the session.
func (h *CancelItemDraftCommandHandler) Handle(ctx context.Context, cmd CancelItemDraftCommand) error {
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

	if err = session.CancelItemDraft(); err != nil {
		return err
	}

	if err = repo.Update(ctx, session); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
