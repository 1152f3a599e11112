package commands

import (
	"context"
)

// SetClientInfoCommandHandler records the client and branch on the
// session at the ClientAndOrderInfo stage.
type SetClientInfoCommandHandler struct {
	uowFactory SessionUoWFactory
}

// NewSetClientInfoCommandHandler creates a handler for client info updates.
func NewSetClientInfoCommandHandler(uowFactory SessionUoWFactory) SetClientInfoCommandHandler {
	return SetClientInfoCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the session, records client and branch, and persists it.
func (h *SetClientInfoCommandHandler) Handle(ctx context.Context, cmd SetClientInfoCommand) error {
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

	if err = session.SetClient(cmd.ClientID()); err != nil {
		return err
	}
	if err = session.SetBranch(cmd.BranchID()); err != nil {
		return err
	}

	if err = repo.Update(ctx, session); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
