package itemdraft

import (
	"fmt"

	"drycleaning/internal/pkg/errs"
)

// Substep represents the position inside the item configuration sub-flow.
// The sub-flow is strictly ordered; each substep is unlocked by the
// completion of its predecessor.
//
// Substep transitions:
//
//	SelectItem -> Characteristics -> DefectsRisks -> PricePreview -> Photos -> Save
//
// Backward transitions go to the immediate predecessor. Cancelling is
// allowed at any substep and discards the draft without side effects.
type Substep int

const (
	// SubstepUnknown represents an invalid or undefined substep.
	// This value (0) helps catch uninitialized Substep values.
	SubstepUnknown Substep = iota

	// SubstepSelectItem is where the operator picks the catalog item and
	// enters the quantity.
	SubstepSelectItem

	// SubstepCharacteristics is where material, color, filler and wear
	// degree are recorded.
	SubstepCharacteristics

	// SubstepDefectsRisks is where stains, defects and risk notes are
	// recorded. All of them are optional.
	SubstepDefectsRisks

	// SubstepPricePreview shows the composed price breakdown. It is
	// read-only and never mutates the draft.
	SubstepPricePreview

	// SubstepPhotos is where item photos are attached. Photos are optional.
	SubstepPhotos

	// SubstepSave is the terminal substep: the draft is committed to the
	// order as a whole or not at all.
	SubstepSave
)

func getSubstepStrings() map[Substep]string {
	return map[Substep]string{
		SubstepUnknown:         "Unknown",
		SubstepSelectItem:      "SelectItem",
		SubstepCharacteristics: "Characteristics",
		SubstepDefectsRisks:    "DefectsRisks",
		SubstepPricePreview:    "PricePreview",
		SubstepPhotos:          "Photos",
		SubstepSave:            "Save",
	}
}

// Validate checks if the Substep value is one of the defined sub-flow
// positions. SubstepUnknown (0) and out-of-range values are invalid.
func (s Substep) Validate() error {
	if s < SubstepSelectItem || s > SubstepSave {
		return errs.NewValueIsInvalidErrorWithCause("substep is invalid",
			fmt.Errorf("%d is not a valid substep", s))
	}
	return nil
}

// String returns the human-readable name of the substep.
func (s Substep) String() string {
	if str, ok := getSubstepStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Next returns the substep that follows this one.
//
// Returns:
//   - (next, nil) for every substep before Save
//   - (0, error) for Save, which is terminal, and for invalid values
func (s Substep) Next() (Substep, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if s == SubstepSave {
		return 0, errs.NewValueIsInvalidErrorWithCause("substep is invalid",
			fmt.Errorf("%s is the terminal substep", s))
	}
	return s + 1, nil
}

// Prev returns the immediate predecessor of this substep.
//
// Returns:
//   - (previous, nil) for every substep after SelectItem
//   - (0, error) for SelectItem, which has no predecessor, and for
//     invalid values
func (s Substep) Prev() (Substep, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if s == SubstepSelectItem {
		return 0, errs.NewValueIsInvalidErrorWithCause("substep is invalid",
			fmt.Errorf("%s is the first substep", s))
	}
	return s - 1, nil
}
