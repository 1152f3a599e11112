package pricing

import (
	"fmt"
	"sort"

	"drycleaning/internal/pkg/errs"
	"drycleaning/internal/pkg/guard"
)

// ModifierCategory scopes a modifier to the kind of item it may apply to.
type ModifierCategory int

const (
	// ModifierCategoryUnknown catches uninitialized values.
	ModifierCategoryUnknown ModifierCategory = iota

	// ModifierGeneral applies regardless of the item's category.
	ModifierGeneral

	// ModifierTextile applies to textile cleaning categories.
	ModifierTextile

	// ModifierLeather applies to leather and fur categories.
	ModifierLeather
)

// String returns the modifier category name.
func (c ModifierCategory) String() string {
	switch c {
	case ModifierGeneral:
		return "General"
	case ModifierTextile:
		return "Textile"
	case ModifierLeather:
		return "Leather"
	default:
		return "Unknown"
	}
}

// Validate checks the category is one of the defined values.
func (c ModifierCategory) Validate() error {
	if c != ModifierGeneral && c != ModifierTextile && c != ModifierLeather {
		return errs.NewValueIsInvalidErrorWithCause("modifier category",
			fmt.Errorf("%d is not a valid modifier category", c))
	}
	return nil
}

// ModifierKind determines how a modifier's value is turned into a price delta.
type ModifierKind int

const (
	// ModifierKindUnknown catches uninitialized values.
	ModifierKindUnknown ModifierKind = iota

	// Percentage adds running subtotal x value/100.
	Percentage

	// FixedAmount adds the value in minor units, independent of the subtotal.
	FixedAmount

	// Multiplier replaces the running subtotal with subtotal x value,
	// recorded as a delta of subtotal x (value - 1).
	Multiplier
)

// String returns the modifier kind name.
func (k ModifierKind) String() string {
	switch k {
	case Percentage:
		return "Percentage"
	case FixedAmount:
		return "FixedAmount"
	case Multiplier:
		return "Multiplier"
	default:
		return "Unknown"
	}
}

// Validate checks the kind is one of the defined values.
func (k ModifierKind) Validate() error {
	if k != Percentage && k != FixedAmount && k != Multiplier {
		return errs.NewValueIsInvalidErrorWithCause("modifier kind",
			fmt.Errorf("%d is not a valid modifier kind", k))
	}
	return nil
}

// ErrModifierIsNotConstructed is returned when validating a zero-value Modifier.
var ErrModifierIsNotConstructed = errs.NewValueIsRequiredError(
	"Modifier must be created via NewModifier")

// Modifier is an immutable, declarative price adjustment rule from the
// catalog. The engine never mutates a modifier; it only decides whether the
// rule is applicable and, if selected, applies it.
//
// Value semantics depend on the kind:
//   - Percentage: whole percent (10 means +10% of the running subtotal)
//   - FixedAmount: minor units added to the subtotal
//   - Multiplier: hundredths (120 means x1.20)
//
// SortOrder carries the catalog-declared application order explicitly.
// Relying on slice position would make results non-reproducible if the
// catalog ever returned modifiers unordered.
type Modifier struct { //nolint:recvcheck //using for validation
	code                 string
	name                 string
	category             ModifierCategory
	kind                 ModifierKind
	value                int64
	sortOrder            int
	applicableCategories map[string]struct{}

	guard guard.ConstructorGuard
}

// NewModifier creates a catalog price modifier.
// An empty applicableCategories list means the modifier applies to every
// category within its modifier category scope.
func NewModifier(
	code string,
	name string,
	category ModifierCategory,
	kind ModifierKind,
	value int64,
	sortOrder int,
	applicableCategories []string,
) (Modifier, error) {
	if code == "" {
		return Modifier{}, errs.NewValueIsRequiredError("modifier code")
	}
	if err := category.Validate(); err != nil {
		return Modifier{}, err
	}
	if err := kind.Validate(); err != nil {
		return Modifier{}, err
	}
	if kind == Multiplier && value <= 0 {
		return Modifier{}, errs.NewValueIsInvalidErrorWithCause("modifier value",
			fmt.Errorf("multiplier %d is not greater than 0", value))
	}

	applicable := make(map[string]struct{}, len(applicableCategories))
	for _, c := range applicableCategories {
		applicable[c] = struct{}{}
	}

	return Modifier{
		code:                 code,
		name:                 name,
		category:             category,
		kind:                 kind,
		value:                value,
		sortOrder:            sortOrder,
		applicableCategories: applicable,
		guard:                guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the modifier was created through NewModifier.
func (m Modifier) Validate() error {
	return m.guard.Validate(ErrModifierIsNotConstructed)
}

// Code returns the modifier's catalog code.
func (m Modifier) Code() string {
	return m.code
}

// Name returns the modifier's display name.
func (m Modifier) Name() string {
	return m.name
}

// Category returns the modifier's applicability scope.
func (m Modifier) Category() ModifierCategory {
	return m.category
}

// Kind returns how the modifier's value is applied.
func (m Modifier) Kind() ModifierKind {
	return m.kind
}

// Value returns the raw modifier value (see type doc for unit semantics).
func (m Modifier) Value() int64 {
	return m.value
}

// SortOrder returns the catalog-declared application position.
func (m Modifier) SortOrder() int {
	return m.sortOrder
}

// AppliesTo reports whether the modifier may be applied to an item of the
// given service category.
func (m Modifier) AppliesTo(category ServiceCategory) bool {
	switch m.category {
	case ModifierGeneral:
		// applies to any category, subject to the explicit list below
	case ModifierTextile, ModifierLeather:
		if m.category != category.ModifierClass() {
			return false
		}
	default:
		return false
	}

	if len(m.applicableCategories) == 0 {
		return true
	}
	_, ok := m.applicableCategories[category.Code()]
	return ok
}

// sortModifiers orders modifiers stably by their declared sort order.
func sortModifiers(modifiers []Modifier) []Modifier {
	sorted := make([]Modifier, len(modifiers))
	copy(sorted, modifiers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].sortOrder < sorted[j].sortOrder
	})
	return sorted
}
