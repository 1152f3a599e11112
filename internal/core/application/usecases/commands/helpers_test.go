package commands_test

import (
	"context"
	"testing"

	"drycleaning/internal/core/domain/model/itemdraft"
	"drycleaning/internal/core/domain/model/kernel"
	"drycleaning/internal/core/domain/model/pricing"
	"drycleaning/internal/core/domain/model/wizard"
	"drycleaning/internal/core/domain/services"

	"github.com/stretchr/testify/require"
)

func money(t *testing.T, minor int64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(minor)
	require.NoError(t, err)
	return m
}

func pieces(t *testing.T, n int64) kernel.Quantity {
	t.Helper()
	q, err := kernel.NewPieceQuantity(n)
	require.NoError(t, err)
	return q
}

func clothingCategory(t *testing.T) pricing.ServiceCategory {
	t.Helper()
	c, err := pricing.NewServiceCategory(
		"CLOTHING", "Clothing cleaning", kernel.UnitPiece, pricing.ModifierTextile, true)
	require.NoError(t, err)
	return c
}

func coatEntry(t *testing.T) pricing.PriceListItem {
	t.Helper()
	item, err := pricing.NewPriceListItem("Coat", clothingCategory(t),
		money(t, 500), money(t, 0), money(t, 0))
	require.NoError(t, err)
	return item
}

func woolCharacteristics(t *testing.T) itemdraft.Characteristics {
	t.Helper()
	c, err := itemdraft.NewCharacteristics("wool", pricing.ColorBase, "", false, "", 10)
	require.NoError(t, err)
	return c
}

// sessionAtItems builds an active session advanced to the item collection
// stage.
func sessionAtItems(t *testing.T, id kernel.UUID) *wizard.Session {
	t.Helper()
	s, err := wizard.NewSession(id)
	require.NoError(t, err)
	require.NoError(t, s.SetClient(kernel.NewUUID()))
	require.NoError(t, s.SetBranch(kernel.NewUUID()))
	require.NoError(t, s.Advance())
	return s
}

// sessionWithDraft opens a draft ready to be saved: item selected and
// characteristics recorded.
func sessionWithDraft(t *testing.T, id, localID kernel.UUID) *wizard.Session {
	t.Helper()
	s := sessionAtItems(t, id)
	require.NoError(t, s.StartNewItemDraft(localID))
	require.NoError(t, s.SelectDraftItem("CLOTHING", "Coat", pieces(t, 2)))
	require.NoError(t, s.AdvanceDraft())
	require.NoError(t, s.SetDraftCharacteristics(woolCharacteristics(t)))
	return s
}

// sessionWithItem commits the draft and leaves the session at the item
// collection stage with one order item.
func sessionWithItem(t *testing.T, id, localID kernel.UUID) *wizard.Session {
	t.Helper()
	s := sessionWithDraft(t, id, localID)

	draft, ok := s.OpenDraft()
	require.True(t, ok)

	composer := services.NewPriceComposer()
	price, err := composer.ComposeItemPrice(draft, coatEntry(t), nil, s.Adjustments())
	require.NoError(t, err)
	require.NoError(t, s.SaveItemDraft(price))
	return s
}

// sessionAtConfirmation walks a one-item session to the confirmation stage.
func sessionAtConfirmation(t *testing.T, id, localID kernel.UUID) *wizard.Session {
	t.Helper()
	s := sessionWithItem(t, id, localID)
	require.NoError(t, s.Advance())
	require.NoError(t, s.Advance())
	return s
}

// expectSessionTx wires the uow mocks for a get-mutate-update-commit round
// trip and returns the repository mock.
func expectSessionTx(
	t *testing.T, ctx context.Context, uow *MockSessionUoW, session *wizard.Session,
) *MockSessionRepository {
	t.Helper()
	repo := new(MockSessionRepository)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("SessionRepository").Return(repo).Once()
	repo.On("Get", ctx, session.ID()).Return(session, nil).Once()
	repo.On("Update", ctx, session).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	return repo
}
