package ports

import (
	"context"

	"drycleaning/internal/core/domain/model/pricing"
)

// Catalog provides read-only access to the service catalog: categories,
// the price list and the available price modifiers. The catalog is a data
// source for the price composition engine; it is never written through
// this port.
type Catalog interface {
	// ResolveItem finds the price list entry for a category and item name.
	// Returns errs.ObjectNotFoundError when the entry does not exist.
	ResolveItem(ctx context.Context, categoryCode string, itemName string) (pricing.PriceListItem, error)

	// ListModifiers returns the modifiers selectable for items of the
	// given category: the general set plus the category-specific set.
	ListModifiers(ctx context.Context, category pricing.ServiceCategory) ([]pricing.Modifier, error)

	// ListCategories returns all catalog service categories.
	ListCategories(ctx context.Context) ([]pricing.ServiceCategory, error)
}
