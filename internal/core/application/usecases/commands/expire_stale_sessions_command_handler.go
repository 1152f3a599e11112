package commands

import (
	"context"
)

// ExpireStaleSessionsCommandHandler expires abandoned wizard sessions.
// Expiry drops any open draft and closes the session; the order must be
// restarted afterwards.
type ExpireStaleSessionsCommandHandler struct {
	uowFactory SessionUoWFactory
}

// NewExpireStaleSessionsCommandHandler creates a handler for session expiry.
func NewExpireStaleSessionsCommandHandler(uowFactory SessionUoWFactory) ExpireStaleSessionsCommandHandler {
	return ExpireStaleSessionsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle expires every active session idle since before the cutoff.
func (h *ExpireStaleSessionsCommandHandler) Handle(ctx context.Context, cmd ExpireStaleSessionsCommand) error {
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
	sessions, err := repo.GetAllActiveUpdatedBefore(ctx, cmd.Cutoff())
	if err != nil {
		return err
	}

	for _, session := range sessions {
		if err = session.Expire(); err != nil {
			return err
		}
		if err = repo.Update(ctx, session); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
