package services

import (
	"fmt"

	"drycleaning/internal/core/domain/model/itemdraft"
	"drycleaning/internal/core/domain/model/pricing"
	"drycleaning/internal/pkg/errs"
)

// PriceComposer is a domain service that turns an item draft into a
// composed price. It resolves the draft's selected modifier codes against
// the catalog modifiers handed in by the caller and runs the price
// composition engine.
//
// The composer is pure: catalog data is passed in, never fetched, so the
// same draft and catalog always compose to the same breakdown. It is used
// both by the saving path, where the result is committed with the item,
// and by the read-only price preview, which must match the eventual
// committed price exactly.
type PriceComposer struct{}

// NewPriceComposer creates a new PriceComposer instance.
func NewPriceComposer() PriceComposer {
	return PriceComposer{}
}

// ComposeItemPrice composes the price for a draft item.
//
// Parameters:
//   - draft: the item draft snapshot; its selected item must match the
//     given price list entry
//   - item: the catalog price list entry resolved for the draft
//   - catalogModifiers: the modifiers available in the catalog; the
//     draft's selected codes are resolved against them
//   - adjustments: the order-level discount, urgency and payment settings
//
// Returns:
//   - pricing.Result: the itemized composition
//   - error: when the draft references an unknown modifier code, the item
//     does not match the draft selection, or the engine rejects the input
func (c PriceComposer) ComposeItemPrice(
	draft itemdraft.Snapshot,
	item pricing.PriceListItem,
	catalogModifiers []pricing.Modifier,
	adjustments pricing.Adjustments,
) (pricing.Result, error) {
	if err := item.Validate(); err != nil {
		return pricing.Result{}, err
	}
	if draft.ItemName != item.Name() || draft.CategoryCode != item.Category().Code() {
		return pricing.Result{}, errs.NewValueIsInvalidErrorWithCause("item",
			fmt.Errorf("price list entry %s/%s does not match draft selection %s/%s",
				item.Category().Code(), item.Name(), draft.CategoryCode, draft.ItemName))
	}

	selected, err := resolveModifiers(draft.ModifierCodes, catalogModifiers)
	if err != nil {
		return pricing.Result{}, err
	}

	color := pricing.ColorBase
	if draft.Characteristics != nil {
		color = draft.Characteristics.Color()
	}

	return pricing.Calculate(pricing.CalculationInput{
		Item:        item,
		Color:       color,
		Quantity:    draft.Quantity,
		Modifiers:   selected,
		Adjustments: adjustments,
	})
}

// resolveModifiers maps selected codes to catalog modifiers. An unknown
// code is an error rather than a silent skip: a stale selection must not
// quietly change the price.
func resolveModifiers(codes []string, catalogModifiers []pricing.Modifier) ([]pricing.Modifier, error) {
	byCode := make(map[string]pricing.Modifier, len(catalogModifiers))
	for _, m := range catalogModifiers {
		byCode[m.Code()] = m
	}

	selected := make([]pricing.Modifier, 0, len(codes))
	for _, code := range codes {
		m, ok := byCode[code]
		if !ok {
			return nil, errs.NewObjectNotFoundError("modifier", code)
		}
		selected = append(selected, m)
	}
	return selected, nil
}
