package commands_test

import (
	"errors"
	"testing"

	"drycleaning/internal/core/application/sync"
	"drycleaning/internal/core/application/usecases/commands"
	"drycleaning/internal/core/domain/model/kernel"
	"drycleaning/internal/core/domain/model/wizard"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAdvanceStageCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	sessionID := kernel.NewUUID()
	localID := kernel.NewUUID()
	cmd, _ := commands.NewAdvanceStageCommand(sessionID)

	session := sessionWithItem(t, sessionID, localID)

	uow := new(MockSessionUoW)
	repo := expectSessionTx(t, ctx, uow, session)
	factory := new(MockSessionUoWFactory)
	factory.On("Create").Return(uow).Once()

	queue := new(MockSyncQueue)
	queue.On("Enqueue", mock.MatchedBy(func(task sync.Task) bool {
		return task.Kind == sync.TaskAdvance &&
			task.SessionID.IsEqual(sessionID) &&
			task.Stage == wizard.StageOrderAdjustments
	})).Return(nil).Once()

	h := commands.NewAdvanceStageCommandHandler(factory, queue)
	require.NoError(t, h.Handle(ctx, cmd))

	require.Equal(t, wizard.StageOrderAdjustments, session.Stage())
	// The queued version is the version after the transition.
	queuedTask := queue.Calls[0].Arguments.Get(0).(sync.Task)
	require.Equal(t, session.Version(), queuedTask.Version)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	queue.AssertExpectations(t)
}

func TestAdvanceStageCommandHandler_Handle_IncompleteStage(t *testing.T) {
	ctx := t.Context()
	sessionID := kernel.NewUUID()
	cmd, _ := commands.NewAdvanceStageCommand(sessionID)

	// No client or branch entered: the first stage is incomplete.
	session, err := wizard.NewSession(sessionID)
	require.NoError(t, err)

	uow := new(MockSessionUoW)
	repo := new(MockSessionRepository)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("SessionRepository").Return(repo).Once()
	repo.On("Get", ctx, sessionID).Return(session, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockSessionUoWFactory)
	factory.On("Create").Return(uow).Once()

	queue := new(MockSyncQueue)
	h := commands.NewAdvanceStageCommandHandler(factory, queue)
	require.Error(t, h.Handle(ctx, cmd))
	queue.AssertNotCalled(t, "Enqueue")
	uow.AssertNotCalled(t, "Commit")
}

func TestAdvanceStageCommandHandler_Handle_EnqueueError(t *testing.T) {
	ctx := t.Context()
	sessionID := kernel.NewUUID()
	cmd, _ := commands.NewAdvanceStageCommand(sessionID)

	session, err := wizard.NewSession(sessionID)
	require.NoError(t, err)
	require.NoError(t, session.SetClient(kernel.NewUUID()))
	require.NoError(t, session.SetBranch(kernel.NewUUID()))

	uow := new(MockSessionUoW)
	expectSessionTx(t, ctx, uow, session)
	factory := new(MockSessionUoWFactory)
	factory.On("Create").Return(uow).Once()

	queue := new(MockSyncQueue)
	queue.On("Enqueue", mock.AnythingOfType("sync.Task")).Return(errors.New("session lost")).Once()

	h := commands.NewAdvanceStageCommandHandler(factory, queue)
	require.Error(t, h.Handle(ctx, cmd))
	// The local transition already committed; only the mirroring failed.
	require.Equal(t, wizard.StageItemCollection, session.Stage())
}
