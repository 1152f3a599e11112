package commands_test

import (
	"testing"

	"drycleaning/internal/core/application/sync"
	"drycleaning/internal/core/application/usecases/commands"
	"drycleaning/internal/core/domain/model/kernel"
	"drycleaning/internal/core/domain/model/pricing"
	"drycleaning/internal/core/domain/services"
	"drycleaning/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSaveItemCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	sessionID := kernel.NewUUID()
	localID := kernel.NewUUID()
	cmd, _ := commands.NewSaveItemCommand(sessionID, localID)

	session := sessionWithDraft(t, sessionID, localID)

	uow := new(MockSessionUoW)
	repo := expectSessionTx(t, ctx, uow, session)
	factory := new(MockSessionUoWFactory)
	factory.On("Create").Return(uow).Once()

	catalog := new(MockCatalog)
	catalog.On("ResolveItem", ctx, "CLOTHING", "Coat").Return(coatEntry(t), nil).Once()
	catalog.On("ListModifiers", ctx, clothingCategory(t)).Return([]pricing.Modifier{}, nil).Once()

	queue := new(MockSyncQueue)
	queue.On("Enqueue", mock.MatchedBy(func(task sync.Task) bool {
		return task.Kind == sync.TaskCommitItem &&
			task.SessionID.IsEqual(sessionID) &&
			task.Item != nil &&
			task.Item.LocalID().IsEqual(localID)
	})).Return(nil).Once()

	h := commands.NewSaveItemCommandHandler(factory, catalog, services.NewPriceComposer(), queue)
	require.NoError(t, h.Handle(ctx, cmd))

	require.False(t, session.HasOpenDraft())
	item, ok := session.Item(localID)
	require.True(t, ok)
	require.Equal(t, int64(1000), item.Price().FinalTotal.MinorUnits())
	repo.AssertExpectations(t)
	catalog.AssertExpectations(t)
	queue.AssertExpectations(t)
}

func TestSaveItemCommandHandler_Handle_RetryAfterSaveIsNoOp(t *testing.T) {
	ctx := t.Context()
	sessionID := kernel.NewUUID()
	localID := kernel.NewUUID()
	cmd, _ := commands.NewSaveItemCommand(sessionID, localID)

	// The item is already committed and no draft is open: a duplicated
	// submission must succeed without touching anything.
	session := sessionWithItem(t, sessionID, localID)
	versionBefore := session.Version()

	uow := new(MockSessionUoW)
	repo := new(MockSessionRepository)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("SessionRepository").Return(repo).Once()
	repo.On("Get", ctx, sessionID).Return(session, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockSessionUoWFactory)
	factory.On("Create").Return(uow).Once()

	catalog := new(MockCatalog)
	queue := new(MockSyncQueue)

	h := commands.NewSaveItemCommandHandler(factory, catalog, services.NewPriceComposer(), queue)
	require.NoError(t, h.Handle(ctx, cmd))

	require.Equal(t, versionBefore, session.Version())
	repo.AssertNotCalled(t, "Update")
	catalog.AssertNotCalled(t, "ResolveItem")
	queue.AssertNotCalled(t, "Enqueue")
}

func TestSaveItemCommandHandler_Handle_LocalIDMismatch(t *testing.T) {
	ctx := t.Context()
	sessionID := kernel.NewUUID()
	cmd, _ := commands.NewSaveItemCommand(sessionID, kernel.NewUUID())

	session := sessionWithDraft(t, sessionID, kernel.NewUUID())

	uow := new(MockSessionUoW)
	repo := new(MockSessionRepository)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("SessionRepository").Return(repo).Once()
	repo.On("Get", ctx, sessionID).Return(session, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockSessionUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSaveItemCommandHandler(
		factory, new(MockCatalog), services.NewPriceComposer(), new(MockSyncQueue))
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	require.True(t, session.HasOpenDraft())
}

func TestSaveItemCommandHandler_Handle_NoDraftNoItem(t *testing.T) {
	ctx := t.Context()
	sessionID := kernel.NewUUID()
	cmd, _ := commands.NewSaveItemCommand(sessionID, kernel.NewUUID())

	session := sessionAtItems(t, sessionID)

	uow := new(MockSessionUoW)
	repo := new(MockSessionRepository)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("SessionRepository").Return(repo).Once()
	repo.On("Get", ctx, sessionID).Return(session, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockSessionUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSaveItemCommandHandler(
		factory, new(MockCatalog), services.NewPriceComposer(), new(MockSyncQueue))
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestSaveItemCommandHandler_Handle_UnknownCatalogItem(t *testing.T) {
	ctx := t.Context()
	sessionID := kernel.NewUUID()
	localID := kernel.NewUUID()
	cmd, _ := commands.NewSaveItemCommand(sessionID, localID)

	session := sessionWithDraft(t, sessionID, localID)

	uow := new(MockSessionUoW)
	repo := new(MockSessionRepository)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("SessionRepository").Return(repo).Once()
	repo.On("Get", ctx, sessionID).Return(session, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockSessionUoWFactory)
	factory.On("Create").Return(uow).Once()

	catalog := new(MockCatalog)
	catalog.On("ResolveItem", ctx, "CLOTHING", "Coat").
		Return(pricing.PriceListItem{}, errs.NewObjectNotFoundError("price list item", "Coat")).Once()

	queue := new(MockSyncQueue)
	h := commands.NewSaveItemCommandHandler(factory, catalog, services.NewPriceComposer(), queue)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	require.True(t, session.HasOpenDraft())
	queue.AssertNotCalled(t, "Enqueue")
}
