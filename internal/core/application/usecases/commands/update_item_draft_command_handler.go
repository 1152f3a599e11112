package commands

import (
	"context"

	"drycleaning/internal/core/domain/model/wizard"
)

// UpdateItemDraftCommandHandler applies one mutation to the open item
// draft through the session aggregate and persists the session.
type UpdateItemDraftCommandHandler struct {
	uowFactory SessionUoWFactory
}

// NewUpdateItemDraftCommandHandler creates a handler for draft mutations.
func NewUpdateItemDraftCommandHandler(uowFactory SessionUoWFactory) UpdateItemDraftCommandHandler {
	return UpdateItemDraftCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle applies the carried draft mutation and persists the session.
func (h *UpdateItemDraftCommandHandler) Handle(ctx context.Context, cmd UpdateItemDraftCommand) error {
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

	if err = applyDraftAction(session, cmd); err != nil {
		return err
	}

	if err = repo.Update(ctx, session); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func applyDraftAction(session *wizard.Session, cmd UpdateItemDraftCommand) error {
	switch cmd.Action() {
	case DraftSelectItem:
		return session.SelectDraftItem(cmd.CategoryCode(), cmd.ItemName(), cmd.Quantity())
	case DraftSetCharacteristics:
		return session.SetDraftCharacteristics(cmd.Characteristics())
	case DraftConfirmCharacteristics:
		return session.ConfirmDraftCharacteristics()
	case DraftSetDefectsRisks:
		return session.SetDraftDefectsRisks(cmd.Stains(), cmd.Defects(), cmd.RiskNotes())
	case DraftSetPhotos:
		return session.SetDraftPhotos(cmd.PhotoRefs())
	case DraftSelectModifiers:
		return session.SelectDraftModifiers(cmd.ModifierCodes())
	case DraftAdvance:
		return session.AdvanceDraft()
	case DraftBack:
		return session.BackDraft()
	case DraftActionUnknown:
		return cmd.Action().Validate()
	default:
		return cmd.Action().Validate()
	}
}
