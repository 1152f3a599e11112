package queries_test

import (
	"context"
	"testing"

	"drycleaning/internal/core/domain/model/itemdraft"
	"drycleaning/internal/core/domain/model/kernel"
	"drycleaning/internal/core/domain/model/pricing"
	"drycleaning/internal/core/domain/model/wizard"
	"drycleaning/internal/core/domain/services"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSessionReader is a mock implementation of the SessionReader interface.
type MockSessionReader struct {
	mock.Mock
}

func (m *MockSessionReader) Get(ctx context.Context, id kernel.UUID) (*wizard.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wizard.Session), args.Error(1)
}

// MockCatalog is a mock implementation of the ports.Catalog interface.
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) ResolveItem(
	ctx context.Context, categoryCode string, itemName string,
) (pricing.PriceListItem, error) {
	args := m.Called(ctx, categoryCode, itemName)
	return args.Get(0).(pricing.PriceListItem), args.Error(1)
}

func (m *MockCatalog) ListModifiers(
	ctx context.Context, category pricing.ServiceCategory,
) ([]pricing.Modifier, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]pricing.Modifier), args.Error(1)
}

func (m *MockCatalog) ListCategories(ctx context.Context) ([]pricing.ServiceCategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]pricing.ServiceCategory), args.Error(1)
}

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

// sessionWithDraft opens a draft with an item selected and characteristics
// recorded.
func sessionWithDraft(t *testing.T, id, localID kernel.UUID) *wizard.Session {
	t.Helper()
	s := sessionAtItems(t, id)
	require.NoError(t, s.StartNewItemDraft(localID))
	require.NoError(t, s.SelectDraftItem("CLOTHING", "Coat", pieces(t, 2)))
	require.NoError(t, s.AdvanceDraft())

	characteristics, err := itemdraft.NewCharacteristics("wool", pricing.ColorBase, "", false, "", 10)
	require.NoError(t, err)
	require.NoError(t, s.SetDraftCharacteristics(characteristics))
	return s
}

// sessionWithItem commits the draft and leaves the session at the item
// collection stage with one order item.
func sessionWithItem(t *testing.T, id, localID kernel.UUID) *wizard.Session {
	t.Helper()
	s := sessionWithDraft(t, id, localID)

	draft, ok := s.OpenDraft()
	require.True(t, ok)

	price, err := services.NewPriceComposer().ComposeItemPrice(draft, coatEntry(t), nil, s.Adjustments())
	require.NoError(t, err)
	require.NoError(t, s.SaveItemDraft(price))
	return s
}
