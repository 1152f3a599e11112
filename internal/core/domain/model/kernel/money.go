package kernel

import (
	"fmt"

	"drycleaning/internal/pkg/errs"
)

// Money is an immutable monetary amount expressed in integer minor units
// (kopecks). All price calculation is carried out on integers so that
// client-computed previews and server-persisted totals can never drift
// through floating-point rounding.
//
// Money amounts at rest are non-negative; signed price deltas produced by
// modifiers are plain int64 values until folded back into an amount.
type Money struct {
	minorUnits int64
}

// NewMoney creates a Money amount from integer minor units.
// Returns an error for negative amounts.
func NewMoney(minorUnits int64) (Money, error) {
	if minorUnits < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d minor units is negative", minorUnits))
	}
	return Money{minorUnits: minorUnits}, nil
}

// MoneyZero returns the zero amount.
func MoneyZero() Money {
	return Money{}
}

// MinorUnits returns the amount in integer minor units.
func (m Money) MinorUnits() int64 {
	return m.minorUnits
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.minorUnits == 0
}

// IsEqual compares two amounts.
func (m Money) IsEqual(other Money) bool {
	return m.minorUnits == other.minorUnits
}

// LessThan reports whether m is strictly smaller than other.
func (m Money) LessThan(other Money) bool {
	return m.minorUnits < other.minorUnits
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{minorUnits: m.minorUnits + other.minorUnits}
}

// AddDelta applies a signed delta in minor units, flooring the result at zero.
func (m Money) AddDelta(delta int64) Money {
	result := m.minorUnits + delta
	if result < 0 {
		result = 0
	}
	return Money{minorUnits: result}
}

// SubFloorZero subtracts other from m, flooring at zero. Totals are never
// negative regardless of discount and modifier combinations.
func (m Money) SubFloorZero(other Money) Money {
	result := m.minorUnits - other.minorUnits
	if result < 0 {
		result = 0
	}
	return Money{minorUnits: result}
}

// PercentHalfUp returns percent% of the amount, rounded half-up at the
// minor unit.
func (m Money) PercentHalfUp(percent int64) Money {
	return Money{minorUnits: RoundHalfUpDiv(m.minorUnits*percent, 100)}
}

// MulQuantityHalfUp multiplies the amount by a quantity expressed in
// thousandths, rounding half-up at the minor unit. Used to turn a unit price
// into a base total for both piece-based and weight-based items.
func (m Money) MulQuantityHalfUp(q Quantity) Money {
	return Money{minorUnits: RoundHalfUpDiv(m.minorUnits*q.Thousandths(), 1000)}
}

// String renders the amount as major.minor for logs and receipts.
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.minorUnits/100, m.minorUnits%100)
}

// RoundHalfUpDiv divides n by d (d > 0), rounding half away from zero.
// This is the rounding rule applied at every step of price composition.
func RoundHalfUpDiv(n, d int64) int64 {
	if n >= 0 {
		return (n + d/2) / d
	}
	return -((-n + d/2) / d)
}
