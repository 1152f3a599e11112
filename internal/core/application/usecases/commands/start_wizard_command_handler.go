package commands

import (
	"context"

	"drycleaning/internal/core/domain/model/kernel"
	"drycleaning/internal/core/domain/model/wizard"
	"drycleaning/internal/core/ports"
)

// StartWizardCommandHandler opens a new wizard session: the authoritative
// backend issues the session identifier, and the local optimistic copy is
// persisted positioned at the first stage.
type StartWizardCommandHandler struct {
	uowFactory SessionUoWFactory
	backend    ports.SessionBackend
}

// NewStartWizardCommandHandler creates a handler for opening wizard sessions.
func NewStartWizardCommandHandler(
	uowFactory SessionUoWFactory, backend ports.SessionBackend,
) StartWizardCommandHandler {
	return StartWizardCommandHandler{
		uowFactory: uowFactory,
		backend:    backend,
	}
}

// Handle creates the remote session and persists the local aggregate.
// Returns the session identifier the UI continues the wizard with.
func (h *StartWizardCommandHandler) Handle(ctx context.Context, cmd StartWizardCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	sessionID, err := h.backend.CreateSession(ctx)
	if err != nil {
		return kernel.UUID{}, err
	}

	session, err := wizard.NewSession(sessionID)
	if err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.SessionRepository().Add(ctx, session); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return sessionID, nil
}
