package kernel

import (
	"fmt"

	"drycleaning/internal/pkg/errs"
	"drycleaning/internal/pkg/guard"
)

// UnitOfMeasure distinguishes piece-based items (a coat, a pillow) from
// weight-based services (laundry by the kilogram). The catalog category
// dictates which unit applies.
type UnitOfMeasure int

const (
	// UnitUnknown catches uninitialized values.
	UnitUnknown UnitOfMeasure = iota

	// UnitPiece counts whole items.
	UnitPiece

	// UnitKilogram measures weight; fractional quantities are allowed.
	UnitKilogram
)

// String returns the human-readable unit name.
func (u UnitOfMeasure) String() string {
	switch u {
	case UnitPiece:
		return "piece"
	case UnitKilogram:
		return "kilogram"
	default:
		return "unknown"
	}
}

// Validate checks the unit is one of the defined values.
func (u UnitOfMeasure) Validate() error {
	if u != UnitPiece && u != UnitKilogram {
		return errs.NewValueIsInvalidErrorWithCause("unit of measure",
			fmt.Errorf("%d is not a valid unit", u))
	}
	return nil
}

// ErrQuantityIsNotConstructed is returned when validating a zero-value Quantity.
var ErrQuantityIsNotConstructed = errs.NewValueIsRequiredError(
	"quantity must be created via NewPieceQuantity or NewWeightQuantity")

// Quantity is a positive item quantity stored in thousandths of a unit.
// Piece-based quantities must be whole; weight-based quantities may carry up
// to three fractional digits (e.g. 2.500 kg is 2500 thousandths).
type Quantity struct { //nolint:recvcheck //using for validation
	thousandths int64
	unit        UnitOfMeasure

	guard guard.ConstructorGuard
}

// NewPieceQuantity creates a whole-piece quantity.
func NewPieceQuantity(pieces int64) (Quantity, error) {
	if pieces <= 0 {
		return Quantity{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d pieces is not greater than 0", pieces))
	}
	return Quantity{
		thousandths: pieces * 1000,
		unit:        UnitPiece,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// NewWeightQuantity creates a weight quantity from thousandths of a kilogram.
func NewWeightQuantity(thousandths int64) (Quantity, error) {
	if thousandths <= 0 {
		return Quantity{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d thousandths of a kilogram is not greater than 0", thousandths))
	}
	return Quantity{
		thousandths: thousandths,
		unit:        UnitKilogram,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the quantity was properly constructed and is positive.
func (q Quantity) Validate() error {
	if err := q.guard.Validate(ErrQuantityIsNotConstructed); err != nil {
		return err
	}
	if q.thousandths <= 0 {
		return errs.NewValueIsInvalidError("quantity")
	}
	return q.unit.Validate()
}

// Thousandths returns the quantity in thousandths of a unit.
func (q Quantity) Thousandths() int64 {
	return q.thousandths
}

// Unit returns the unit of measure the quantity was entered in.
func (q Quantity) Unit() UnitOfMeasure {
	return q.unit
}

// IsWhole reports whether the quantity has no fractional part.
func (q Quantity) IsWhole() bool {
	return q.thousandths%1000 == 0
}

// MatchesUnit re-validates the quantity against the unit implied by a catalog
// category. Piece-based categories reject fractional quantities; a quantity
// entered in one unit cannot be carried over to a category measured in the
// other.
func (q Quantity) MatchesUnit(unit UnitOfMeasure) error {
	if q.unit != unit {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("entered in %s but category is measured in %s", q.unit, unit))
	}
	if unit == UnitPiece && !q.IsWhole() {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("piece-based category requires a whole quantity"))
	}
	return nil
}

// String renders the quantity with its unit.
func (q Quantity) String() string {
	if q.IsWhole() {
		return fmt.Sprintf("%d %s", q.thousandths/1000, q.unit)
	}
	return fmt.Sprintf("%d.%03d %s", q.thousandths/1000, q.thousandths%1000, q.unit)
}

// IsEqual compares two quantities by value and unit.
func (q Quantity) IsEqual(other Quantity) bool {
	return q.thousandths == other.thousandths && q.unit == other.unit
}
