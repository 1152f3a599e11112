package commands_test

import (
	"testing"

	"drycleaning/internal/core/application/usecases/commands"
	"drycleaning/internal/core/domain/model/kernel"
	"drycleaning/internal/core/domain/model/pricing"
	"drycleaning/internal/core/domain/services"

	"github.com/stretchr/testify/require"
)

func urgentEvercard(t *testing.T, prepayment int64) pricing.Adjustments {
	t.Helper()
	a, err := pricing.NewAdjustments(
		pricing.DiscountEvercard, 0, pricing.UrgencyExpress48h, pricing.PaymentCash, money(t, prepayment))
	require.NoError(t, err)
	return a
}

func TestSetOrderAdjustmentsCommandHandler_Handle_RepricesCommittedItems(t *testing.T) {
	ctx := t.Context()
	sessionID := kernel.NewUUID()
	localID := kernel.NewUUID()

	session := sessionWithItem(t, sessionID, localID)
	require.NoError(t, session.Advance())

	adjustments := urgentEvercard(t, 0)
	cmd, err := commands.NewSetOrderAdjustmentsCommand(sessionID, adjustments)
	require.NoError(t, err)

	uow := new(MockSessionUoW)
	repo := expectSessionTx(t, ctx, uow, session)
	factory := new(MockSessionUoWFactory)
	factory.On("Create").Return(uow).Once()

	catalog := new(MockCatalog)
	catalog.On("ResolveItem", ctx, "CLOTHING", "Coat").Return(coatEntry(t), nil).Once()
	catalog.On("ListModifiers", ctx, clothingCategory(t)).Return([]pricing.Modifier{}, nil).Once()

	h := commands.NewSetOrderAdjustmentsCommandHandler(factory, catalog, services.NewPriceComposer())
	require.NoError(t, h.Handle(ctx, cmd))

	// 500 x 2 = 1000, +50% urgency 500, -10% Evercard on 1500 -> 1350.
	item, ok := session.Item(localID)
	require.True(t, ok)
	require.Equal(t, int64(1350), item.Price().FinalTotal.MinorUnits())
	require.Equal(t, adjustments, session.Adjustments())
	repo.AssertExpectations(t)
	catalog.AssertExpectations(t)
}

func TestSetOrderAdjustmentsCommandHandler_Handle_PrepaymentExceedsTotal(t *testing.T) {
	ctx := t.Context()
	sessionID := kernel.NewUUID()
	localID := kernel.NewUUID()

	session := sessionWithItem(t, sessionID, localID)
	require.NoError(t, session.Advance())
	before := session.Adjustments()

	cmd, err := commands.NewSetOrderAdjustmentsCommand(sessionID, urgentEvercard(t, 999_999))
	require.NoError(t, err)

	uow := new(MockSessionUoW)
	repo := new(MockSessionRepository)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("SessionRepository").Return(repo).Once()
	repo.On("Get", ctx, sessionID).Return(session, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockSessionUoWFactory)
	factory.On("Create").Return(uow).Once()

	catalog := new(MockCatalog)
	catalog.On("ResolveItem", ctx, "CLOTHING", "Coat").Return(coatEntry(t), nil).Once()
	catalog.On("ListModifiers", ctx, clothingCategory(t)).Return([]pricing.Modifier{}, nil).Once()

	h := commands.NewSetOrderAdjustmentsCommandHandler(factory, catalog, services.NewPriceComposer())
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, pricing.ErrPrepaymentExceedsTotal)

	// Rejected atomically: old adjustments and old prices stay.
	require.Equal(t, before, session.Adjustments())
	item, ok := session.Item(localID)
	require.True(t, ok)
	require.Equal(t, int64(1000), item.Price().FinalTotal.MinorUnits())
	repo.AssertNotCalled(t, "Update")
}

func TestSetOrderAdjustmentsCommandHandler_Handle_WrongStage(t *testing.T) {
	ctx := t.Context()
	sessionID := kernel.NewUUID()

	session := sessionWithItem(t, sessionID, kernel.NewUUID())

	cmd, err := commands.NewSetOrderAdjustmentsCommand(sessionID, urgentEvercard(t, 0))
	require.NoError(t, err)

	uow := new(MockSessionUoW)
	repo := new(MockSessionRepository)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("SessionRepository").Return(repo).Once()
	repo.On("Get", ctx, sessionID).Return(session, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockSessionUoWFactory)
	factory.On("Create").Return(uow).Once()

	catalog := new(MockCatalog)
	catalog.On("ResolveItem", ctx, "CLOTHING", "Coat").Return(coatEntry(t), nil).Once()
	catalog.On("ListModifiers", ctx, clothingCategory(t)).Return([]pricing.Modifier{}, nil).Once()

	h := commands.NewSetOrderAdjustmentsCommandHandler(factory, catalog, services.NewPriceComposer())
	require.Error(t, h.Handle(ctx, cmd))
	uow.AssertNotCalled(t, "Commit")
}
