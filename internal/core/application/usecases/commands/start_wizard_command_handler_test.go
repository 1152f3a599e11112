package commands_test

import (
	"errors"
	"testing"

	"drycleaning/internal/core/application/usecases/commands"
	"drycleaning/internal/core/domain/model/kernel"
	"drycleaning/internal/core/domain/model/wizard"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStartWizardCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	sessionID := kernel.NewUUID()
	cmd, _ := commands.NewStartWizardCommand()

	backend := new(MockSessionBackend)
	backend.On("CreateSession", ctx).Return(sessionID, nil).Once()

	repo := new(MockSessionRepository)
	uow := new(MockSessionUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SessionRepository").Return(repo).Once(),
		repo.On("Add", ctx, mock.MatchedBy(func(s *wizard.Session) bool {
			return s.ID().IsEqual(sessionID) && s.Stage() == wizard.StageClientAndOrderInfo
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSessionUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewStartWizardCommandHandler(factory, backend)
	got, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.True(t, got.IsEqual(sessionID))
	backend.AssertExpectations(t)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestStartWizardCommandHandler_Handle_BackendError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewStartWizardCommand()

	backend := new(MockSessionBackend)
	backend.On("CreateSession", ctx).Return(kernel.UUID{}, errors.New("backend down")).Once()

	factory := new(MockSessionUoWFactory)
	h := commands.NewStartWizardCommandHandler(factory, backend)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	factory.AssertNotCalled(t, "Create")
}

func TestStartWizardCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.StartWizardCommand{} // not constructed properly
	h := commands.NewStartWizardCommandHandler(new(MockSessionUoWFactory), new(MockSessionBackend))
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
}
