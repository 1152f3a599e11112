package commands

import (
	"context"

	"drycleaning/internal/core/application/sync"
)

// AdvanceStageCommandHandler performs a forward stage transition and
// mirrors it to the authoritative backend through the synchronization
// queue.
type AdvanceStageCommandHandler struct {
	uowFactory SessionUoWFactory
	syncQueue  SyncQueue
}

// NewAdvanceStageCommandHandler creates a handler for stage advancement.
func NewAdvanceStageCommandHandler(
	uowFactory SessionUoWFactory, syncQueue SyncQueue,
) AdvanceStageCommandHandler {
	return AdvanceStageCommandHandler{
		uowFactory: uowFactory,
		syncQueue:  syncQueue,
	}
}

// Handle advances the session, persists it and enqueues the mirroring
// task after the local commit succeeded.
func (h *AdvanceStageCommandHandler) Handle(ctx context.Context, cmd AdvanceStageCommand) error {
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

	if err = session.Advance(); err != nil {
		return err
	}

	if err = repo.Update(ctx, session); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return h.syncQueue.Enqueue(
		sync.NewAdvanceTask(session.ID(), session.Version(), session.Stage()))
}
