package commands

import (
	"context"

	"drycleaning/internal/core/domain/model/pricing"
	"drycleaning/internal/core/domain/services"
	"drycleaning/internal/core/ports"
)

// SetOrderAdjustmentsCommandHandler replaces the session adjustments and
// reprices every committed item against the catalog under the new
// settings, so urgency and discount never go stale on saved items.
type SetOrderAdjustmentsCommandHandler struct {
	uowFactory SessionUoWFactory
	catalog    ports.Catalog
	composer   services.PriceComposer
}

// NewSetOrderAdjustmentsCommandHandler creates a handler for replacing
// order-level adjustments.
func NewSetOrderAdjustmentsCommandHandler(
	uowFactory SessionUoWFactory,
	catalog ports.Catalog,
	composer services.PriceComposer,
) SetOrderAdjustmentsCommandHandler {
	return SetOrderAdjustmentsCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		composer:   composer,
	}
}

// Handle reprices all committed items under the new adjustments and
// applies them atomically: either every item carries the new breakdown
// or the session is left untouched.
func (h *SetOrderAdjustmentsCommandHandler) Handle(ctx context.Context, cmd SetOrderAdjustmentsCommand) error {
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

	items := session.Items()
	repriced := make([]pricing.Result, 0, len(items))
	for _, committed := range items {
		draft := committed.Draft()

		entry, resolveErr := h.catalog.ResolveItem(ctx, draft.CategoryCode, draft.ItemName)
		if resolveErr != nil {
			return resolveErr
		}
		modifiers, listErr := h.catalog.ListModifiers(ctx, entry.Category())
		if listErr != nil {
			return listErr
		}

		price, composeErr := h.composer.ComposeItemPrice(draft, entry, modifiers, cmd.Adjustments())
		if composeErr != nil {
			return composeErr
		}
		repriced = append(repriced, price)
	}

	if err = session.SetAdjustments(cmd.Adjustments(), repriced); err != nil {
		return err
	}

	if err = repo.Update(ctx, session); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
