package pricing

import (
	"drycleaning/internal/core/domain/model/kernel"
	"drycleaning/internal/pkg/errs"
)

// StepKind labels a breakdown step for receipts and audit.
type StepKind int

const (
	// StepBase is the base total (unit price x quantity).
	StepBase StepKind = iota + 1

	// StepModifier is a single applied price modifier.
	StepModifier

	// StepUrgency is the expedited turnaround surcharge.
	StepUrgency

	// StepDiscount is the order-level discount (negative delta).
	StepDiscount
)

// String returns the step kind name.
func (k StepKind) String() string {
	switch k {
	case StepBase:
		return "Base"
	case StepModifier:
		return "Modifier"
	case StepUrgency:
		return "Urgency"
	case StepDiscount:
		return "Discount"
	default:
		return "Unknown"
	}
}

// BreakdownStep is one recorded step of the price composition. The sequence
// of steps fully reproduces the final total: each step's running total equals
// the previous step's running total plus this step's delta.
type BreakdownStep struct {
	Kind         StepKind
	Code         string
	Label        string
	Delta        int64
	RunningTotal kernel.Money
}

// Result is the itemized output of the price composition engine for one item.
type Result struct {
	BaseUnitPrice  kernel.Money
	Quantity       kernel.Quantity
	BaseTotal      kernel.Money
	Steps          []BreakdownStep
	Subtotal       kernel.Money
	UrgencyAmount  kernel.Money
	DiscountAmount kernel.Money
	FinalTotal     kernel.Money
}

// CalculationInput carries everything the engine needs for one item.
// Modifiers are the already-selected catalog rules; the engine filters them
// for applicability and orders them by their declared sort order.
type CalculationInput struct {
	Item        PriceListItem
	Color       ColorType
	Quantity    kernel.Quantity
	Modifiers   []Modifier
	Adjustments Adjustments
}

// Calculate composes the price for one item configuration. It is a pure
// function: the same input always produces the same result, and no shared
// state is read or written.
func Calculate(input CalculationInput) (Result, error) {
	if err := input.Item.Validate(); err != nil {
		return Result{}, err
	}
	if err := input.Color.Validate(); err != nil {
		return Result{}, err
	}
	if err := input.Quantity.Validate(); err != nil {
		return Result{}, err
	}
	if err := input.Adjustments.Validate(); err != nil {
		return Result{}, err
	}
	category := input.Item.Category()
	if err := input.Quantity.MatchesUnit(category.Unit()); err != nil {
		return Result{}, err
	}
	for _, m := range input.Modifiers {
		if err := m.Validate(); err != nil {
			return Result{}, err
		}
	}

	// Step 1-2: base resolution and base total.
	baseUnitPrice := input.Item.UnitPriceFor(input.Color)
	baseTotal := baseUnitPrice.MulQuantityHalfUp(input.Quantity)

	steps := make([]BreakdownStep, 0, len(input.Modifiers)+3)
	steps = append(steps, BreakdownStep{
		Kind:         StepBase,
		Code:         "BASE",
		Label:        input.Item.Name(),
		Delta:        baseTotal.MinorUnits(),
		RunningTotal: baseTotal,
	})

	// Steps 3-4: general modifiers first, then category-specific, each group
	// in its declared sort order. Every delta is computed against the
	// subtotal as accumulated so far.
	running := baseTotal
	for _, group := range [2][]Modifier{
		filterModifiers(input.Modifiers, category, ModifierGeneral),
		filterModifiers(input.Modifiers, category, category.ModifierClass()),
	} {
		for _, m := range sortModifiers(group) {
			delta := modifierDelta(m, running)
			running = running.AddDelta(delta)
			steps = append(steps, BreakdownStep{
				Kind:         StepModifier,
				Code:         m.Code(),
				Label:        m.Name(),
				Delta:        delta,
				RunningTotal: running,
			})
		}
	}

	// Step 5: subtotal after modifiers.
	subtotal := running

	// Step 6: urgency surcharge on the subtotal.
	urgencyAmount := subtotal.PercentHalfUp(input.Adjustments.UrgencyType().SurchargePercent())
	if !urgencyAmount.IsZero() {
		running = running.Add(urgencyAmount)
		steps = append(steps, BreakdownStep{
			Kind:         StepUrgency,
			Code:         "URGENCY",
			Label:        input.Adjustments.UrgencyType().String(),
			Delta:        urgencyAmount.MinorUnits(),
			RunningTotal: running,
		})
	}

	// Step 7: discount on subtotal plus urgency. Non-discountable categories
	// are skipped entirely, regardless of the selected type and percentage.
	discountAmount := kernel.MoneyZero()
	if category.Discountable() && input.Adjustments.DiscountType() != DiscountNone {
		discountAmount = subtotal.Add(urgencyAmount).PercentHalfUp(input.Adjustments.DiscountPercent())
		running = running.SubFloorZero(discountAmount)
		steps = append(steps, BreakdownStep{
			Kind:         StepDiscount,
			Code:         "DISCOUNT",
			Label:        input.Adjustments.DiscountType().String(),
			Delta:        -discountAmount.MinorUnits(),
			RunningTotal: running,
		})
	}

	// Step 8: final total, floored at zero by the running money arithmetic.
	return Result{
		BaseUnitPrice:  baseUnitPrice,
		Quantity:       input.Quantity,
		BaseTotal:      baseTotal,
		Steps:          steps,
		Subtotal:       subtotal,
		UrgencyAmount:  urgencyAmount,
		DiscountAmount: discountAmount,
		FinalTotal:     running,
	}, nil
}

// modifierDelta computes a single modifier's signed delta against the
// running subtotal.
func modifierDelta(m Modifier, running kernel.Money) int64 {
	switch m.Kind() {
	case Percentage:
		return kernel.RoundHalfUpDiv(running.MinorUnits()*m.Value(), 100)
	case FixedAmount:
		return m.Value()
	case Multiplier:
		return kernel.RoundHalfUpDiv(running.MinorUnits()*(m.Value()-100), 100)
	default:
		return 0
	}
}

// filterModifiers keeps the modifiers of one modifier category that apply to
// the item's service category.
func filterModifiers(modifiers []Modifier, category ServiceCategory, class ModifierCategory) []Modifier {
	filtered := make([]Modifier, 0, len(modifiers))
	for _, m := range modifiers {
		if m.Category() == class && m.AppliesTo(category) {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

// ErrPrepaymentExceedsTotal is raised at the adjustments stage when the
// operator enters a prepayment larger than the order total. The amount is a
// validation error, never silently clamped.
var ErrPrepaymentExceedsTotal = errs.NewValueIsInvalidError(
	"prepayment exceeds the order final amount")

// OrderTotal aggregates per-item results at order level.
type OrderTotal struct {
	TotalAmount    kernel.Money
	DiscountAmount kernel.Money
	UrgencyAmount  kernel.Money
	FinalAmount    kernel.Money
	BalanceAmount  kernel.Money
}

// Summarize sums per-item calculation results and resolves the order balance
// against the prepayment. A prepayment exceeding the final amount returns
// ErrPrepaymentExceedsTotal.
func Summarize(results []Result, adjustments Adjustments) (OrderTotal, error) {
	if err := adjustments.Validate(); err != nil {
		return OrderTotal{}, err
	}

	total := OrderTotal{
		TotalAmount:    kernel.MoneyZero(),
		DiscountAmount: kernel.MoneyZero(),
		UrgencyAmount:  kernel.MoneyZero(),
		FinalAmount:    kernel.MoneyZero(),
	}
	for _, r := range results {
		total.TotalAmount = total.TotalAmount.Add(r.Subtotal)
		total.DiscountAmount = total.DiscountAmount.Add(r.DiscountAmount)
		total.UrgencyAmount = total.UrgencyAmount.Add(r.UrgencyAmount)
		total.FinalAmount = total.FinalAmount.Add(r.FinalTotal)
	}

	prepayment := adjustments.Prepayment()
	if total.FinalAmount.LessThan(prepayment) {
		return OrderTotal{}, ErrPrepaymentExceedsTotal
	}
	total.BalanceAmount = total.FinalAmount.SubFloorZero(prepayment)

	return total, nil
}
