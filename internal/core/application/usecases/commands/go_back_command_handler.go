package commands

import (
	"context"
)

// GoBackCommandHandler performs a backward stage transition. Backward
// navigation is a purely local concern: the backend only tracks forward
// progress, so no synchronization task is produced.
type GoBackCommandHandler struct {
	uowFactory SessionUoWFactory
}

// NewGoBackCommandHandler creates a handler for backward navigation.
func NewGoBackCommandHandler(uowFactory SessionUoWFactory) GoBackCommandHandler {
	return GoBackCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle moves the session to the previous stage and persists it.
func (h *GoBackCommandHandler) Handle(ctx context.Context, cmd GoBackCommand) error {
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

	if err = session.Back(); err != nil {
		return err
	}

	if err = repo.Update(ctx, session); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
