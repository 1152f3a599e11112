package itemdraft

import (
	"fmt"

	"drycleaning/internal/core/domain/model/pricing"
	"drycleaning/internal/pkg/errs"
	"drycleaning/internal/pkg/guard"
)

// ErrCharacteristicsAreNotConstructed is returned when validating
// zero-value Characteristics.
var ErrCharacteristicsAreNotConstructed = errs.NewValueIsRequiredError(
	"Characteristics must be created via NewCharacteristics")

// wearDegreeMaxPercent bounds the recorded wear degree.
const wearDegreeMaxPercent = 100

// Characteristics records the physical properties of the item entered at
// the Characteristics substep: material, coloring, filler and wear degree.
// The color type also determines which catalog price variant applies.
type Characteristics struct { //nolint:recvcheck //using for validation
	material    string
	color       pricing.ColorType
	customColor string
	hasFiller   bool
	fillerType  string
	wearDegree  int

	guard guard.ConstructorGuard
}

// NewCharacteristics creates validated item characteristics.
// A custom color requires the operator-entered color description; a filler
// requires its type. Wear degree is a percentage between 0 and 100.
func NewCharacteristics(
	material string,
	color pricing.ColorType,
	customColor string,
	hasFiller bool,
	fillerType string,
	wearDegree int,
) (Characteristics, error) {
	if material == "" {
		return Characteristics{}, errs.NewValueIsRequiredError("material")
	}
	if err := color.Validate(); err != nil {
		return Characteristics{}, err
	}
	if color == pricing.ColorCustom && customColor == "" {
		return Characteristics{}, errs.NewValueIsRequiredError("customColor")
	}
	if color != pricing.ColorCustom && customColor != "" {
		return Characteristics{}, errs.NewValueIsInvalidErrorWithCause("customColor",
			fmt.Errorf("custom color description is only allowed for the %s color type", pricing.ColorCustom))
	}
	if hasFiller && fillerType == "" {
		return Characteristics{}, errs.NewValueIsRequiredError("fillerType")
	}
	if !hasFiller && fillerType != "" {
		return Characteristics{}, errs.NewValueIsInvalidErrorWithCause("fillerType",
			fmt.Errorf("filler type %q given for an item without filler", fillerType))
	}
	if wearDegree < 0 || wearDegree > wearDegreeMaxPercent {
		return Characteristics{}, errs.NewValueIsOutOfRangeError("wearDegree", wearDegree, 0, wearDegreeMaxPercent)
	}

	return Characteristics{
		material:    material,
		color:       color,
		customColor: customColor,
		hasFiller:   hasFiller,
		fillerType:  fillerType,
		wearDegree:  wearDegree,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the characteristics were created through
// NewCharacteristics.
func (c Characteristics) Validate() error {
	return c.guard.Validate(ErrCharacteristicsAreNotConstructed)
}

// Material returns the item material.
func (c Characteristics) Material() string {
	return c.material
}

// Color returns the selected color type.
func (c Characteristics) Color() pricing.ColorType {
	return c.color
}

// CustomColor returns the operator-entered color description.
// Empty unless the color type is custom.
func (c Characteristics) CustomColor() string {
	return c.customColor
}

// HasFiller reports whether the item contains a filler.
func (c Characteristics) HasFiller() bool {
	return c.hasFiller
}

// FillerType returns the filler type. Empty when the item has no filler.
func (c Characteristics) FillerType() string {
	return c.fillerType
}

// WearDegree returns the recorded wear degree percentage.
func (c Characteristics) WearDegree() int {
	return c.wearDegree
}
