// Package staticcatalog provides an in-memory implementation of the
// catalog port seeded with the dry-cleaning price list. The catalog is
// read-only reference data; branch-specific price management happens in a
// separate system, so a static seed is sufficient here.
package staticcatalog

import (
	"context"
	"fmt"

	"drycleaning/internal/core/domain/model/kernel"
	"drycleaning/internal/core/domain/model/pricing"
	"drycleaning/internal/pkg/errs"
)

// Catalog holds the seeded categories, price list and modifiers.
type Catalog struct {
	categories []pricing.ServiceCategory
	items      map[string]map[string]pricing.PriceListItem
	modifiers  []pricing.Modifier
}

// NewCatalog creates a catalog seeded with the default price list.
func NewCatalog() (*Catalog, error) {
	catalog := &Catalog{
		items: make(map[string]map[string]pricing.PriceListItem),
	}

	if err := catalog.seedCategories(); err != nil {
		return nil, err
	}
	if err := catalog.seedPriceList(); err != nil {
		return nil, err
	}
	if err := catalog.seedModifiers(); err != nil {
		return nil, err
	}

	return catalog, nil
}

// ResolveItem finds the price list entry for a category and item name.
func (c *Catalog) ResolveItem(
	_ context.Context, categoryCode string, itemName string,
) (pricing.PriceListItem, error) {
	byName, ok := c.items[categoryCode]
	if !ok {
		return pricing.PriceListItem{}, errs.NewObjectNotFoundError("category", categoryCode)
	}

	item, ok := byName[itemName]
	if !ok {
		return pricing.PriceListItem{}, errs.NewObjectNotFoundError(
			"price list item", fmt.Sprintf("%s/%s", categoryCode, itemName))
	}

	return item, nil
}

// ListModifiers returns the general modifiers plus the ones matching the
// category's modifier class, in catalog order.
func (c *Catalog) ListModifiers(
	_ context.Context, category pricing.ServiceCategory,
) ([]pricing.Modifier, error) {
	if err := category.Validate(); err != nil {
		return nil, err
	}

	selected := make([]pricing.Modifier, 0, len(c.modifiers))
	for _, m := range c.modifiers {
		if m.Category() == pricing.ModifierGeneral || m.Category() == category.ModifierClass() {
			selected = append(selected, m)
		}
	}
	return selected, nil
}

// ListCategories returns all catalog service categories.
func (c *Catalog) ListCategories(_ context.Context) ([]pricing.ServiceCategory, error) {
	categories := make([]pricing.ServiceCategory, len(c.categories))
	copy(categories, c.categories)
	return categories, nil
}

func (c *Catalog) seedCategories() error {
	definitions := []struct {
		code          string
		name          string
		unit          kernel.UnitOfMeasure
		modifierClass pricing.ModifierCategory
		discountable  bool
	}{
		{"CLOTHING", "Clothing cleaning", kernel.UnitPiece, pricing.ModifierTextile, true},
		{"LAUNDRY", "Laundry", kernel.UnitKilogram, pricing.ModifierTextile, false},
		{"IRONING", "Ironing", kernel.UnitKilogram, pricing.ModifierTextile, false},
		{"LEATHER", "Leather and suede", kernel.UnitPiece, pricing.ModifierLeather, true},
		{"FUR", "Natural fur", kernel.UnitPiece, pricing.ModifierLeather, true},
		{"PADDING", "Padded items", kernel.UnitPiece, pricing.ModifierTextile, true},
		{"DYEING", "Dyeing", kernel.UnitPiece, pricing.ModifierLeather, false},
	}

	c.categories = make([]pricing.ServiceCategory, 0, len(definitions))
	for _, d := range definitions {
		category, err := pricing.NewServiceCategory(d.code, d.name, d.unit, d.modifierClass, d.discountable)
		if err != nil {
			return err
		}
		c.categories = append(c.categories, category)
	}
	return nil
}

func (c *Catalog) seedPriceList() error {
	entries := []struct {
		categoryCode string
		name         string
		base         int64
		black        int64
		color        int64
	}{
		{"CLOTHING", "Coat", 50000, 0, 0},
		{"CLOTHING", "Jacket", 40000, 0, 0},
		{"CLOTHING", "Suit (2 pieces)", 45000, 0, 0},
		{"CLOTHING", "Trousers", 25000, 0, 0},
		{"CLOTHING", "Dress", 35000, 0, 0},
		{"CLOTHING", "Wedding dress", 80000, 0, 0},
		{"CLOTHING", "Soft toy", 30000, 0, 0},
		{"LAUNDRY", "Bed linen", 8000, 0, 0},
		{"LAUNDRY", "Towels", 7000, 0, 0},
		{"IRONING", "Shirts", 6000, 0, 0},
		{"LEATHER", "Leather jacket", 90000, 105000, 100000},
		{"LEATHER", "Leather coat", 110000, 125000, 120000},
		{"LEATHER", "Sheepskin coat", 120000, 140000, 130000},
		{"FUR", "Fur coat", 150000, 0, 0},
		{"FUR", "Fur collar", 40000, 0, 0},
		{"PADDING", "Down jacket", 55000, 0, 0},
		{"PADDING", "Blanket", 45000, 0, 0},
		{"DYEING", "Leather jacket dyeing", 70000, 85000, 80000},
	}

	byCode := make(map[string]pricing.ServiceCategory, len(c.categories))
	for _, category := range c.categories {
		byCode[category.Code()] = category
	}

	for _, e := range entries {
		category, ok := byCode[e.categoryCode]
		if !ok {
			return errs.NewObjectNotFoundError("category", e.categoryCode)
		}

		base, err := kernel.NewMoney(e.base)
		if err != nil {
			return err
		}
		black, err := kernel.NewMoney(e.black)
		if err != nil {
			return err
		}
		color, err := kernel.NewMoney(e.color)
		if err != nil {
			return err
		}

		item, err := pricing.NewPriceListItem(e.name, category, base, black, color)
		if err != nil {
			return err
		}

		if c.items[e.categoryCode] == nil {
			c.items[e.categoryCode] = make(map[string]pricing.PriceListItem)
		}
		c.items[e.categoryCode][e.name] = item
	}
	return nil
}

func (c *Catalog) seedModifiers() error {
	definitions := []struct {
		code      string
		name      string
		category  pricing.ModifierCategory
		kind      pricing.ModifierKind
		value     int64
		sortOrder int
	}{
		{"CHILD_SIZE", "Children's items (under size 30)", pricing.ModifierGeneral, pricing.Percentage, -30, 10},
		{"MANUAL_CLEANING", "Manual cleaning", pricing.ModifierGeneral, pricing.Percentage, 20, 20},
		{"HEAVILY_SOILED", "Heavily soiled items", pricing.ModifierGeneral, pricing.Percentage, 50, 30},
		{"EXPRESS", "Express processing", pricing.ModifierGeneral, pricing.Percentage, 70, 40},

		{"FUR_COLLAR", "Items with fur collars and cuffs", pricing.ModifierTextile, pricing.Percentage, 30, 10},
		{"WATER_REPELLENT", "Water-repellent coating", pricing.ModifierTextile, pricing.Percentage, 30, 20},
		{"SILK_FABRIC", "Natural silk, satin and chiffon", pricing.ModifierTextile, pricing.Percentage, 50, 30},
		{"COMBINED_MATERIALS", "Combined leather and textile", pricing.ModifierTextile, pricing.Percentage, 100, 40},
		{"TOYS_CLEANING", "Manual cleaning of large soft toys", pricing.ModifierTextile, pricing.Percentage, 100, 50},
		{"BUTTON_SEWING", "Button sewing", pricing.ModifierTextile, pricing.FixedAmount, 5000, 60},
		{"DARK_LIGHT_COLORS", "Black and light-tone items", pricing.ModifierTextile, pricing.Percentage, 20, 70},
		{"WEDDING_DRESS", "Wedding dress with train", pricing.ModifierTextile, pricing.Percentage, 30, 80},

		{"LEATHER_IRONING", "Leather ironing", pricing.ModifierLeather, pricing.Percentage, 70, 10},
		{"WATER_REPELLENT_LEATHER", "Water-repellent coating", pricing.ModifierLeather, pricing.Percentage, 30, 20},
		{"DYEING_AFTER", "Dyeing after our cleaning", pricing.ModifierLeather, pricing.Percentage, 50, 30},
		{"DYEING_EXTERNAL", "Dyeing after external cleaning", pricing.ModifierLeather, pricing.Percentage, 100, 40},
		{"LEATHER_INSERTS", "Leather items with inserts", pricing.ModifierLeather, pricing.Percentage, 30, 50},
		{"PEARL_COATING", "Pearl coating", pricing.ModifierLeather, pricing.Percentage, 30, 60},
		{"NATURAL_FUR", "Natural sheepskin on faux fur", pricing.ModifierLeather, pricing.Percentage, -20, 70},
		{"LEATHER_BUTTON_SEWING", "Button sewing", pricing.ModifierLeather, pricing.FixedAmount, 7000, 80},
		{"MANUAL_LEATHER_CLEANING", "Manual leather cleaning", pricing.ModifierLeather, pricing.Percentage, 30, 90},
	}

	c.modifiers = make([]pricing.Modifier, 0, len(definitions))
	for _, d := range definitions {
		modifier, err := pricing.NewModifier(d.code, d.name, d.category, d.kind, d.value, d.sortOrder, nil)
		if err != nil {
			return err
		}
		c.modifiers = append(c.modifiers, modifier)
	}
	return nil
}
