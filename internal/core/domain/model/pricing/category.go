package pricing

import (
	"fmt"

	"drycleaning/internal/core/domain/model/kernel"
	"drycleaning/internal/pkg/errs"
	"drycleaning/internal/pkg/guard"
)

// ErrServiceCategoryIsNotConstructed is returned when validating a zero-value
// ServiceCategory.
var ErrServiceCategoryIsNotConstructed = errs.NewValueIsRequiredError(
	"ServiceCategory must be created via NewServiceCategory")

// ServiceCategory describes a catalog service category: its unit of measure,
// which category-specific modifier set applies to its items, and whether its
// services are eligible for order-level discounts. Pressing, laundering and
// dyeing services are sold at fixed prices and are excluded from discounts.
type ServiceCategory struct { //nolint:recvcheck //using for validation
	code          string
	name          string
	unit          kernel.UnitOfMeasure
	modifierClass ModifierCategory
	discountable  bool

	guard guard.ConstructorGuard
}

// NewServiceCategory creates a service category descriptor.
func NewServiceCategory(
	code string,
	name string,
	unit kernel.UnitOfMeasure,
	modifierClass ModifierCategory,
	discountable bool,
) (ServiceCategory, error) {
	if code == "" {
		return ServiceCategory{}, errs.NewValueIsRequiredError("category code")
	}
	if err := unit.Validate(); err != nil {
		return ServiceCategory{}, err
	}
	if modifierClass != ModifierTextile && modifierClass != ModifierLeather {
		return ServiceCategory{}, errs.NewValueIsInvalidErrorWithCause("modifier class",
			fmt.Errorf("category must declare a textile or leather modifier set, got %s", modifierClass))
	}

	return ServiceCategory{
		code:          code,
		name:          name,
		unit:          unit,
		modifierClass: modifierClass,
		discountable:  discountable,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the category was created through NewServiceCategory.
func (c ServiceCategory) Validate() error {
	return c.guard.Validate(ErrServiceCategoryIsNotConstructed)
}

// Code returns the catalog category code.
func (c ServiceCategory) Code() string {
	return c.code
}

// Name returns the category display name.
func (c ServiceCategory) Name() string {
	return c.name
}

// Unit returns the unit of measure items of this category are sold in.
func (c ServiceCategory) Unit() kernel.UnitOfMeasure {
	return c.unit
}

// ModifierClass returns which category-specific modifier set (textile or
// leather) applies to items of this category.
func (c ServiceCategory) ModifierClass() ModifierCategory {
	return c.modifierClass
}

// Discountable reports whether order-level discounts apply to this category.
func (c ServiceCategory) Discountable() bool {
	return c.discountable
}

// ErrPriceListItemIsNotConstructed is returned when validating a zero-value
// PriceListItem.
var ErrPriceListItemIsNotConstructed = errs.NewValueIsRequiredError(
	"PriceListItem must be created via NewPriceListItem")

// PriceListItem is a catalog entry with its base price and optional
// color-specific variants. A zero color variant means the variant is absent
// and the base price applies.
type PriceListItem struct { //nolint:recvcheck //using for validation
	name       string
	category   ServiceCategory
	basePrice  kernel.Money
	priceBlack kernel.Money
	priceColor kernel.Money

	guard guard.ConstructorGuard
}

// NewPriceListItem creates a catalog price list entry.
func NewPriceListItem(
	name string,
	category ServiceCategory,
	basePrice, priceBlack, priceColor kernel.Money,
) (PriceListItem, error) {
	if name == "" {
		return PriceListItem{}, errs.NewValueIsRequiredError("item name")
	}
	if err := category.Validate(); err != nil {
		return PriceListItem{}, err
	}
	if basePrice.IsZero() {
		return PriceListItem{}, errs.NewValueIsRequiredError("base price")
	}

	return PriceListItem{
		name:       name,
		category:   category,
		basePrice:  basePrice,
		priceBlack: priceBlack,
		priceColor: priceColor,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the item was created through NewPriceListItem.
func (i PriceListItem) Validate() error {
	return i.guard.Validate(ErrPriceListItemIsNotConstructed)
}

// Name returns the price list item name.
func (i PriceListItem) Name() string {
	return i.name
}

// Category returns the item's service category.
func (i PriceListItem) Category() ServiceCategory {
	return i.category
}

// BasePrice returns the default unit price.
func (i PriceListItem) BasePrice() kernel.Money {
	return i.basePrice
}

// UnitPriceFor resolves the unit price for a color variant, falling back to
// the base price when the color-specific variant is zero or absent.
func (i PriceListItem) UnitPriceFor(color ColorType) kernel.Money {
	switch color {
	case ColorBlack:
		if !i.priceBlack.IsZero() {
			return i.priceBlack
		}
	case ColorColored, ColorCustom:
		if !i.priceColor.IsZero() {
			return i.priceColor
		}
	case ColorBase:
	}
	return i.basePrice
}

// ColorType selects which price variant of a catalog entry applies and
// whether a custom color description is required.
type ColorType int

const (
	// ColorUnknown catches uninitialized values.
	ColorUnknown ColorType = iota

	// ColorBase is the default coloring; the base price applies.
	ColorBase

	// ColorBlack selects the black-dyeing price variant.
	ColorBlack

	// ColorColored selects the color price variant.
	ColorColored

	// ColorCustom is an operator-described color; the color variant price
	// applies and a custom color string is required.
	ColorCustom
)

// String returns the color type name.
func (c ColorType) String() string {
	switch c {
	case ColorBase:
		return "Base"
	case ColorBlack:
		return "Black"
	case ColorColored:
		return "Colored"
	case ColorCustom:
		return "Custom"
	default:
		return "Unknown"
	}
}

// Validate checks the color type is one of the defined values.
func (c ColorType) Validate() error {
	if c < ColorBase || c > ColorCustom {
		return errs.NewValueIsInvalidError("color type")
	}
	return nil
}
