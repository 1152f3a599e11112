package itemdraft

import (
	"errors"
	"fmt"

	"drycleaning/internal/core/domain/model/kernel"
	"drycleaning/internal/pkg/errs"
)

var (
	// ErrDraftIsNotConstructed is returned when a Draft instance was not
	// created through NewDraft or RestoreDraft.
	ErrDraftIsNotConstructed = errors.New("Draft must be created via NewDraft or RestoreDraft constructor")
)

// Draft is the in-progress configuration of one order item. It is an
// entity nested inside the wizard session aggregate and is committed as a
// whole at the Save substep or discarded entirely on cancel.
//
// Draft follows these invariants:
//   - The local id is stable across edits of the same item, which makes
//     duplicate save requests detectable
//   - Mutations are gated by the current substep
//   - Switching the item's category keeps the entered characteristics but
//     marks them unconfirmed; they must be re-confirmed before save
type Draft struct {
	// localID identifies the item within the order across edits
	localID kernel.UUID

	// substep is the current position in the item sub-flow
	substep Substep

	// categoryCode and itemName reference the catalog price list entry
	categoryCode string
	itemName     string

	// quantity is entered alongside the item selection
	quantity kernel.Quantity

	characteristics          *Characteristics
	characteristicsConfirmed bool

	stains        []string
	defects       []string
	riskNotes     string
	photoRefs     []string
	modifierCodes []string

	// isConstructed ensures the draft was created via a constructor
	isConstructed bool
}

// NewDraft creates an empty draft positioned at the SelectItem substep.
//
// The local id must be valid. For a brand-new item the caller generates a
// fresh id; for an edit of a committed item the caller passes the committed
// item's local id, so a save replaces the original.
func NewDraft(localID kernel.UUID) (*Draft, error) {
	if err := localID.Validate(); err != nil {
		return nil, err
	}

	return &Draft{
		localID:       localID,
		substep:       SubstepSelectItem,
		isConstructed: true,
	}, nil
}

// Validate ensures the Draft instance was properly constructed.
func (d *Draft) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDraftIsNotConstructed
	}
	return nil
}

// LocalID returns the item's stable local identifier.
func (d *Draft) LocalID() kernel.UUID {
	return d.localID
}

// Substep returns the current position in the item sub-flow.
func (d *Draft) Substep() Substep {
	return d.substep
}

// CategoryCode returns the selected catalog category code.
func (d *Draft) CategoryCode() string {
	return d.categoryCode
}

// ItemName returns the selected price list item name.
func (d *Draft) ItemName() string {
	return d.itemName
}

// Quantity returns the entered quantity.
func (d *Draft) Quantity() kernel.Quantity {
	return d.quantity
}

// Characteristics returns the entered characteristics and whether they
// were entered at all.
func (d *Draft) Characteristics() (Characteristics, bool) {
	if d.characteristics == nil {
		return Characteristics{}, false
	}
	return *d.characteristics, true
}

// CharacteristicsConfirmed reports whether the entered characteristics are
// confirmed for the currently selected category.
func (d *Draft) CharacteristicsConfirmed() bool {
	return d.characteristicsConfirmed
}

// Stains returns a copy of the recorded stain descriptions.
func (d *Draft) Stains() []string {
	return copyStrings(d.stains)
}

// Defects returns a copy of the recorded defect descriptions.
func (d *Draft) Defects() []string {
	return copyStrings(d.defects)
}

// RiskNotes returns the free-form risk notes.
func (d *Draft) RiskNotes() string {
	return d.riskNotes
}

// PhotoRefs returns a copy of the attached photo references.
func (d *Draft) PhotoRefs() []string {
	return copyStrings(d.photoRefs)
}

// ModifierCodes returns a copy of the selected modifier codes.
func (d *Draft) ModifierCodes() []string {
	return copyStrings(d.modifierCodes)
}

// SelectItem records the catalog item and quantity. It is only allowed at
// the SelectItem substep.
//
// Changing the category of a draft that already has characteristics keeps
// the entered values but marks them unconfirmed: the operator must
// re-confirm them for the new category before the draft can be saved.
func (d *Draft) SelectItem(categoryCode string, itemName string, quantity kernel.Quantity) error {
	if err := d.requireSubstep(SubstepSelectItem); err != nil {
		return err
	}
	if categoryCode == "" {
		return errs.NewValueIsRequiredError("categoryCode")
	}
	if itemName == "" {
		return errs.NewValueIsRequiredError("itemName")
	}
	if err := quantity.Validate(); err != nil {
		return err
	}

	if d.categoryCode != "" && d.categoryCode != categoryCode && d.characteristics != nil {
		d.characteristicsConfirmed = false
	}

	d.categoryCode = categoryCode
	d.itemName = itemName
	d.quantity = quantity
	return nil
}

// SetCharacteristics records the item characteristics and confirms them
// for the currently selected category. It is only allowed at the
// Characteristics substep.
func (d *Draft) SetCharacteristics(characteristics Characteristics) error {
	if err := d.requireSubstep(SubstepCharacteristics); err != nil {
		return err
	}
	if err := characteristics.Validate(); err != nil {
		return err
	}

	d.characteristics = &characteristics
	d.characteristicsConfirmed = true
	return nil
}

// ConfirmCharacteristics re-confirms the already entered characteristics
// after a category switch invalidated them. It is only allowed at the
// Characteristics substep and requires characteristics to be present.
func (d *Draft) ConfirmCharacteristics() error {
	if err := d.requireSubstep(SubstepCharacteristics); err != nil {
		return err
	}
	if d.characteristics == nil {
		return errs.NewValueIsRequiredError("characteristics")
	}

	d.characteristicsConfirmed = true
	return nil
}

// SetDefectsRisks records stains, defects and risk notes. All of them are
// optional; duplicates are dropped. It is only allowed at the DefectsRisks
// substep.
func (d *Draft) SetDefectsRisks(stains []string, defects []string, riskNotes string) error {
	if err := d.requireSubstep(SubstepDefectsRisks); err != nil {
		return err
	}

	d.stains = dedupeStrings(stains)
	d.defects = dedupeStrings(defects)
	d.riskNotes = riskNotes
	return nil
}

// SetPhotos records the attached photo references. Photos are optional.
// It is only allowed at the Photos substep.
func (d *Draft) SetPhotos(photoRefs []string) error {
	if err := d.requireSubstep(SubstepPhotos); err != nil {
		return err
	}

	d.photoRefs = dedupeStrings(photoRefs)
	return nil
}

// SelectModifiers records the selected catalog modifier codes. The
// selection may change until the price has been previewed; afterwards the
// operator has to navigate back.
func (d *Draft) SelectModifiers(codes []string) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if d.substep >= SubstepPricePreview {
		return errs.NewValueIsInvalidErrorWithCause("substep is invalid",
			fmt.Errorf("modifiers cannot change at the %s substep", d.substep))
	}

	d.modifierCodes = dedupeStrings(codes)
	return nil
}

// Advance moves the draft to the next substep. The current substep's
// completion predicate must hold.
func (d *Draft) Advance() error {
	if err := d.Validate(); err != nil {
		return err
	}
	if err := d.validateSubstepComplete(d.substep); err != nil {
		return err
	}

	next, err := d.substep.Next()
	if err != nil {
		return err
	}

	d.substep = next
	return nil
}

// Back moves the draft to the immediate predecessor substep. Entered data
// is kept.
func (d *Draft) Back() error {
	if err := d.Validate(); err != nil {
		return err
	}

	prev, err := d.substep.Prev()
	if err != nil {
		return err
	}

	d.substep = prev
	return nil
}

// ValidateReadyToSave checks the whole draft the way a save does: every
// substep's completion predicate must hold, independent of the current
// position. The save itself is performed by the owning session, which
// computes the price and commits the item atomically.
func (d *Draft) ValidateReadyToSave() error {
	if err := d.Validate(); err != nil {
		return err
	}

	return errors.Join(
		d.validateSubstepComplete(SubstepSelectItem),
		d.validateSubstepComplete(SubstepCharacteristics),
	)
}

// requireSubstep gates a mutation to one sub-flow position.
func (d *Draft) requireSubstep(substep Substep) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if d.substep != substep {
		return errs.NewValueIsInvalidErrorWithCause("substep is invalid",
			fmt.Errorf("operation belongs to the %s substep, draft is at %s", substep, d.substep))
	}
	return nil
}

// validateSubstepComplete checks a substep's completion predicate.
// DefectsRisks, PricePreview and Photos carry optional data and are always
// complete.
func (d *Draft) validateSubstepComplete(substep Substep) error {
	switch substep {
	case SubstepSelectItem:
		if d.categoryCode == "" || d.itemName == "" {
			return errs.NewValueIsRequiredError("item selection")
		}
		if err := d.quantity.Validate(); err != nil {
			return err
		}
	case SubstepCharacteristics:
		if d.characteristics == nil {
			return errs.NewValueIsRequiredError("characteristics")
		}
		if !d.characteristicsConfirmed {
			return errs.NewValueIsInvalidErrorWithCause("characteristics",
				errors.New("characteristics must be re-confirmed after the category change"))
		}
	case SubstepDefectsRisks, SubstepPricePreview, SubstepPhotos, SubstepSave:
	default:
		return substep.Validate()
	}
	return nil
}

func copyStrings(values []string) []string {
	if values == nil {
		return nil
	}
	copied := make([]string, len(values))
	copy(copied, values)
	return copied
}

func dedupeStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	deduped := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		deduped = append(deduped, v)
	}
	return deduped
}
