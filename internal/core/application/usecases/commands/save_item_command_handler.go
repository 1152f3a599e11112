package commands

import (
	"context"
	"fmt"

	"drycleaning/internal/core/application/sync"
	"drycleaning/internal/core/domain/services"
	"drycleaning/internal/core/ports"
	"drycleaning/internal/pkg/errs"
)

// SaveItemCommandHandler prices the open item draft against the catalog
// and commits it into the session atomically. After a successful local
// commit, a commit-item task is queued for backend synchronization.
type SaveItemCommandHandler struct {
	uowFactory SessionUoWFactory
	catalog    ports.Catalog
	composer   services.PriceComposer
	syncQueue  SyncQueue
}

// NewSaveItemCommandHandler creates a handler for committing item drafts.
func NewSaveItemCommandHandler(
	uowFactory SessionUoWFactory,
	catalog ports.Catalog,
	composer services.PriceComposer,
	syncQueue SyncQueue,
) SaveItemCommandHandler {
	return SaveItemCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		composer:   composer,
		syncQueue:  syncQueue,
	}
}

// Handle prices the open draft, commits it and queues the backend sync.
// A retry after a successful save (no open draft, local id already
// committed) is a no-op so duplicated submissions cannot fail or double
// the item.
func (h *SaveItemCommandHandler) Handle(ctx context.Context, cmd SaveItemCommand) error {
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

	draft, ok := session.OpenDraft()
	if !ok {
		if session.IsItemCommitted(cmd.LocalID()) {
			return nil
		}
		return errs.NewObjectNotFoundError("open item draft", cmd.LocalID())
	}
	if !draft.LocalID.IsEqual(cmd.LocalID()) {
		return errs.NewValueIsInvalidErrorWithCause("localID",
			fmt.Errorf("open draft has local id %s, not %s", draft.LocalID, cmd.LocalID()))
	}

	item, err := h.catalog.ResolveItem(ctx, draft.CategoryCode, draft.ItemName)
	if err != nil {
		return err
	}
	modifiers, err := h.catalog.ListModifiers(ctx, item.Category())
	if err != nil {
		return err
	}

	price, err := h.composer.ComposeItemPrice(draft, item, modifiers, session.Adjustments())
	if err != nil {
		return err
	}

	if err = session.SaveItemDraft(price); err != nil {
		return err
	}

	if err = repo.Update(ctx, session); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	committed, ok := session.Item(cmd.LocalID())
	if !ok {
		return errs.NewObjectNotFoundError("committed item", cmd.LocalID())
	}
	return h.syncQueue.Enqueue(sync.NewCommitItemTask(session.ID(), session.Version(), committed))
}
