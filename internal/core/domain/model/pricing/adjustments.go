package pricing

import (
	"fmt"

	"drycleaning/internal/core/domain/model/kernel"
	"drycleaning/internal/pkg/errs"
	"drycleaning/internal/pkg/guard"
)

// DiscountType identifies an order-level discount program.
type DiscountType int

const (
	// DiscountUnknown catches uninitialized values.
	DiscountUnknown DiscountType = iota

	// DiscountNone applies no discount.
	DiscountNone

	// DiscountEvercard is the loyalty card discount (10%).
	DiscountEvercard

	// DiscountSocialMedia is the social media promo discount (5%).
	DiscountSocialMedia

	// DiscountMilitary is the military service discount (10%).
	DiscountMilitary

	// DiscountCustom is an administratively approved percentage (0-50%).
	DiscountCustom
)

// customDiscountMaxPercent caps administratively approved custom discounts.
const customDiscountMaxPercent = 50

// String returns the discount type name.
func (d DiscountType) String() string {
	switch d {
	case DiscountNone:
		return "None"
	case DiscountEvercard:
		return "Evercard"
	case DiscountSocialMedia:
		return "SocialMedia"
	case DiscountMilitary:
		return "Military"
	case DiscountCustom:
		return "Custom"
	default:
		return "Unknown"
	}
}

// Validate checks the discount type is one of the defined values.
func (d DiscountType) Validate() error {
	if d < DiscountNone || d > DiscountCustom {
		return errs.NewValueIsInvalidErrorWithCause("discount type",
			fmt.Errorf("%d is not a valid discount type", d))
	}
	return nil
}

// FixedPercent returns the program rate for non-custom discount types and
// whether the type carries a fixed rate at all.
func (d DiscountType) FixedPercent() (int64, bool) {
	switch d {
	case DiscountEvercard, DiscountMilitary:
		return 10, true
	case DiscountSocialMedia:
		return 5, true
	case DiscountNone:
		return 0, true
	default:
		return 0, false
	}
}

// UrgencyType is an order-level surcharge tier for expedited turnaround.
type UrgencyType int

const (
	// UrgencyUnknown catches uninitialized values.
	UrgencyUnknown UrgencyType = iota

	// UrgencyNormal is the standard turnaround, no surcharge.
	UrgencyNormal

	// UrgencyExpress48h is 48-hour turnaround, +50% on the subtotal.
	UrgencyExpress48h

	// UrgencyExpress24h is 24-hour turnaround, +100% on the subtotal.
	UrgencyExpress24h
)

// String returns the urgency type name.
func (u UrgencyType) String() string {
	switch u {
	case UrgencyNormal:
		return "Normal"
	case UrgencyExpress48h:
		return "Express48h"
	case UrgencyExpress24h:
		return "Express24h"
	default:
		return "Unknown"
	}
}

// Validate checks the urgency type is one of the defined values.
func (u UrgencyType) Validate() error {
	if u < UrgencyNormal || u > UrgencyExpress24h {
		return errs.NewValueIsInvalidErrorWithCause("urgency type",
			fmt.Errorf("%d is not a valid urgency type", u))
	}
	return nil
}

// SurchargePercent returns the percentage surcharge applied on the subtotal.
func (u UrgencyType) SurchargePercent() int64 {
	switch u {
	case UrgencyExpress48h:
		return 50
	case UrgencyExpress24h:
		return 100
	default:
		return 0
	}
}

// PaymentMethod identifies how the order will be paid.
type PaymentMethod int

const (
	// PaymentUnknown catches uninitialized values.
	PaymentUnknown PaymentMethod = iota

	// PaymentCash is payment in cash at the branch.
	PaymentCash

	// PaymentCard is payment by card at the terminal.
	PaymentCard

	// PaymentBankTransfer is a cashless bank transfer.
	PaymentBankTransfer
)

// String returns the payment method name.
func (p PaymentMethod) String() string {
	switch p {
	case PaymentCash:
		return "Cash"
	case PaymentCard:
		return "Card"
	case PaymentBankTransfer:
		return "BankTransfer"
	default:
		return "Unknown"
	}
}

// Validate checks the payment method is one of the defined values.
func (p PaymentMethod) Validate() error {
	if p != PaymentCash && p != PaymentCard && p != PaymentBankTransfer {
		return errs.NewValueIsInvalidErrorWithCause("payment method",
			fmt.Errorf("%d is not a valid payment method", p))
	}
	return nil
}

// ErrAdjustmentsAreNotConstructed is returned when validating zero-value
// Adjustments.
var ErrAdjustmentsAreNotConstructed = errs.NewValueIsRequiredError(
	"Adjustments must be created via NewAdjustments or DefaultAdjustments")

// Adjustments carries the order-level pricing parameters: discount selection,
// urgency tier, payment method and prepayment.
type Adjustments struct { //nolint:recvcheck //using for validation
	discountType  DiscountType
	customPercent int64
	urgencyType   UrgencyType
	paymentMethod PaymentMethod
	prepayment    kernel.Money

	guard guard.ConstructorGuard
}

// NewAdjustments creates order-level adjustments. customPercent is only
// meaningful for DiscountCustom and is bounded to the administrative cap;
// for fixed discount types the program rate applies and customPercent must
// be zero.
func NewAdjustments(
	discountType DiscountType,
	customPercent int64,
	urgencyType UrgencyType,
	paymentMethod PaymentMethod,
	prepayment kernel.Money,
) (Adjustments, error) {
	if err := discountType.Validate(); err != nil {
		return Adjustments{}, err
	}
	if err := urgencyType.Validate(); err != nil {
		return Adjustments{}, err
	}
	if err := paymentMethod.Validate(); err != nil {
		return Adjustments{}, err
	}

	if discountType == DiscountCustom {
		if customPercent < 0 || customPercent > customDiscountMaxPercent {
			return Adjustments{}, errs.NewValueIsOutOfRangeError(
				"discountPercentage", customPercent, 0, customDiscountMaxPercent)
		}
	} else if customPercent != 0 {
		return Adjustments{}, errs.NewValueIsInvalidErrorWithCause("discountPercentage",
			fmt.Errorf("%s discount carries a fixed rate", discountType))
	}

	return Adjustments{
		discountType:  discountType,
		customPercent: customPercent,
		urgencyType:   urgencyType,
		paymentMethod: paymentMethod,
		prepayment:    prepayment,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// DefaultAdjustments returns the neutral adjustments a new wizard session
// starts with: no discount, normal turnaround, cash, no prepayment.
func DefaultAdjustments() Adjustments {
	adjustments, err := NewAdjustments(DiscountNone, 0, UrgencyNormal, PaymentCash, kernel.MoneyZero())
	if err != nil {
		// The neutral combination is valid by construction.
		panic(err)
	}
	return adjustments
}

// Validate ensures the adjustments were created through a constructor.
func (a Adjustments) Validate() error {
	return a.guard.Validate(ErrAdjustmentsAreNotConstructed)
}

// DiscountType returns the selected discount program.
func (a Adjustments) DiscountType() DiscountType {
	return a.discountType
}

// DiscountPercent resolves the effective discount percentage: the program
// rate for fixed types, the approved custom percentage for DiscountCustom.
func (a Adjustments) DiscountPercent() int64 {
	if fixed, ok := a.discountType.FixedPercent(); ok {
		return fixed
	}
	return a.customPercent
}

// UrgencyType returns the selected turnaround tier.
func (a Adjustments) UrgencyType() UrgencyType {
	return a.urgencyType
}

// PaymentMethod returns the selected payment method.
func (a Adjustments) PaymentMethod() PaymentMethod {
	return a.paymentMethod
}

// Prepayment returns the amount paid up front.
func (a Adjustments) Prepayment() kernel.Money {
	return a.prepayment
}
