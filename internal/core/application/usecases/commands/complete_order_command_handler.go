package commands

import (
	"context"

	"drycleaning/internal/core/application/sync"
)

// CompleteOrderCommandHandler finishes the wizard. The completion is
// mirrored to the backend as a final stage advance; a no-op replay of an
// already completed session queues nothing.
type CompleteOrderCommandHandler struct {
	uowFactory SessionUoWFactory
	syncQueue  SyncQueue
}

// NewCompleteOrderCommandHandler creates a handler for finishing wizards.
func NewCompleteOrderCommandHandler(uowFactory SessionUoWFactory, syncQueue SyncQueue) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		uowFactory: uowFactory,
		syncQueue:  syncQueue,
	}
}

// Handle completes the session and queues the backend sync when the
// completion actually happened on this call.
func (h *CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) error {
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
	if err = session.Complete(); err != nil {
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

	return h.syncQueue.Enqueue(sync.NewAdvanceTask(session.ID(), session.Version(), session.Stage()))
}
