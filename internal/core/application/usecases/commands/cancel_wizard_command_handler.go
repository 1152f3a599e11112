package commands

import (
	"context"

	"drycleaning/internal/core/application/sync"
)

// CancelWizardCommandHandler abandons the wizard session locally and
// mirrors the cancellation to the backend.
type CancelWizardCommandHandler struct {
	uowFactory SessionUoWFactory
	syncQueue  SyncQueue
}

// NewCancelWizardCommandHandler creates a handler for abandoning wizards.
func NewCancelWizardCommandHandler(uowFactory SessionUoWFactory, syncQueue SyncQueue) CancelWizardCommandHandler {
	return CancelWizardCommandHandler{
		uowFactory: uowFactory,
		syncQueue:  syncQueue,
	}
}

// Handle cancels the session and queues the backend sync when the
// cancellation actually happened on this call.
func (h *CancelWizardCommandHandler) Handle(ctx context.Context, cmd CancelWizardCommand) error {
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

	versionBefore := session.Version()
	if err = session.Cancel(); err != nil {
		return err
	}

	if session.Version() == versionBefore {
		return uow.Commit(ctx)
	}

	if err = repo.Update(ctx, session); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return h.syncQueue.Enqueue(sync.NewCancelTask(session.ID(), session.Version()))
}
