package services_test

import (
	"testing"

	"drycleaning/internal/core/domain/model/itemdraft"
	"drycleaning/internal/core/domain/model/kernel"
	"drycleaning/internal/core/domain/model/pricing"
	"drycleaning/internal/core/domain/services"
	"drycleaning/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalogItem(t *testing.T) pricing.PriceListItem {
	t.Helper()
	category, err := pricing.NewServiceCategory(
		"CLOTHING", "Clothing cleaning", kernel.UnitPiece, pricing.ModifierTextile, true)
	require.NoError(t, err)

	basePrice, err := kernel.NewMoney(500)
	require.NoError(t, err)
	blackPrice, err := kernel.NewMoney(700)
	require.NoError(t, err)

	item, err := pricing.NewPriceListItem("Coat", category, basePrice, blackPrice, kernel.MoneyZero())
	require.NoError(t, err)
	return item
}

func testDraftSnapshot(t *testing.T, modifierCodes []string) itemdraft.Snapshot {
	t.Helper()
	draft, err := itemdraft.NewDraft(kernel.NewUUID())
	require.NoError(t, err)

	quantity, err := kernel.NewPieceQuantity(2)
	require.NoError(t, err)
	require.NoError(t, draft.SelectItem("CLOTHING", "Coat", quantity))
	require.NoError(t, draft.Advance())

	characteristics, err := itemdraft.NewCharacteristics("wool", pricing.ColorBlack, "", false, "", 30)
	require.NoError(t, err)
	require.NoError(t, draft.SetCharacteristics(characteristics))
	require.NoError(t, draft.SelectModifiers(modifierCodes))

	return draft.Snapshot()
}

func TestPriceComposer_ComposeItemPrice(t *testing.T) {
	composer := services.NewPriceComposer()

	handWash, err := pricing.NewModifier(
		"HAND_WASH", "Hand wash", pricing.ModifierGeneral, pricing.Percentage, 10, 1, nil)
	require.NoError(t, err)
	catalogModifiers := []pricing.Modifier{handWash}

	t.Run("should compose with resolved modifiers and color variant", func(t *testing.T) {
		draft := testDraftSnapshot(t, []string{"HAND_WASH"})

		result, err := composer.ComposeItemPrice(
			draft, testCatalogItem(t), catalogModifiers, pricing.DefaultAdjustments())

		require.NoError(t, err)
		// black variant 700 x 2 = 1400, +10% hand wash = 1540
		assert.Equal(t, int64(700), result.BaseUnitPrice.MinorUnits())
		assert.Equal(t, int64(1540), result.FinalTotal.MinorUnits())
	})

	t.Run("should fail on an unknown modifier code", func(t *testing.T) {
		draft := testDraftSnapshot(t, []string{"GONE_FROM_CATALOG"})

		_, err := composer.ComposeItemPrice(
			draft, testCatalogItem(t), catalogModifiers, pricing.DefaultAdjustments())

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should fail when the price list entry does not match the draft", func(t *testing.T) {
		draft := testDraftSnapshot(t, nil)
		draft.ItemName = "Jacket"

		_, err := composer.ComposeItemPrice(
			draft, testCatalogItem(t), catalogModifiers, pricing.DefaultAdjustments())

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should default to the base color before characteristics are entered", func(t *testing.T) {
		draft, err := itemdraft.NewDraft(kernel.NewUUID())
		require.NoError(t, err)
		quantity, err := kernel.NewPieceQuantity(1)
		require.NoError(t, err)
		require.NoError(t, draft.SelectItem("CLOTHING", "Coat", quantity))

		result, err := composer.ComposeItemPrice(
			draft.Snapshot(), testCatalogItem(t), nil, pricing.DefaultAdjustments())

		require.NoError(t, err)
		assert.Equal(t, int64(500), result.BaseUnitPrice.MinorUnits())
	})
}
