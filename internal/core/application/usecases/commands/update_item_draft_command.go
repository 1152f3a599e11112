package commands

import (
	"errors"
	"fmt"

	"drycleaning/internal/core/domain/model/itemdraft"
	"drycleaning/internal/core/domain/model/kernel"
	"drycleaning/internal/pkg/errs"
	"drycleaning/internal/pkg/guard"
)

var ErrUpdateItemDraftCommandIsNotConstructed = errors.New(
	"UpdateItemDraftCommand must be created via one of its constructors",
)

// DraftAction identifies which mutation of the open item draft the
// command carries.
type DraftAction int

const (
	// DraftActionUnknown catches uninitialized values.
	DraftActionUnknown DraftAction = iota

	// DraftSelectItem records the catalog item and quantity.
	DraftSelectItem

	// DraftSetCharacteristics records the item characteristics.
	DraftSetCharacteristics

	// DraftConfirmCharacteristics re-confirms characteristics after a
	// category switch.
	DraftConfirmCharacteristics

	// DraftSetDefectsRisks records stains, defects and risk notes.
	DraftSetDefectsRisks

	// DraftSetPhotos records attached photo references.
	DraftSetPhotos

	// DraftSelectModifiers records the selected modifier codes.
	DraftSelectModifiers

	// DraftAdvance moves the draft to its next substep.
	DraftAdvance

	// DraftBack moves the draft to its previous substep.
	DraftBack
)

// String returns the draft action name.
func (a DraftAction) String() string {
	switch a {
	case DraftSelectItem:
		return "SelectItem"
	case DraftSetCharacteristics:
		return "SetCharacteristics"
	case DraftConfirmCharacteristics:
		return "ConfirmCharacteristics"
	case DraftSetDefectsRisks:
		return "SetDefectsRisks"
	case DraftSetPhotos:
		return "SetPhotos"
	case DraftSelectModifiers:
		return "SelectModifiers"
	case DraftAdvance:
		return "Advance"
	case DraftBack:
		return "Back"
	default:
		return "Unknown"
	}
}

// Validate checks the action is one of the defined values.
func (a DraftAction) Validate() error {
	if a < DraftSelectItem || a > DraftBack {
		return errs.NewValueIsInvalidErrorWithCause("draft action",
			fmt.Errorf("%d is not a valid draft action", a))
	}
	return nil
}

// UpdateItemDraftCommand carries one mutation of the open item draft.
// The action discriminates which payload fields are meaningful; use the
// per-action constructors.
type UpdateItemDraftCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID
	action    DraftAction

	categoryCode    string
	itemName        string
	quantity        kernel.Quantity
	characteristics itemdraft.Characteristics
	stains          []string
	defects         []string
	riskNotes       string
	photoRefs       []string
	modifierCodes   []string

	guard guard.ConstructorGuard
}

// NewSelectDraftItemCommand creates a command recording the catalog item
// and quantity on the open draft.
func NewSelectDraftItemCommand(
	sessionID kernel.UUID, categoryCode string, itemName string, quantity kernel.Quantity,
) (UpdateItemDraftCommand, error) {
	if err := errors.Join(sessionID.Validate(), quantity.Validate()); err != nil {
		return UpdateItemDraftCommand{}, err
	}
	if categoryCode == "" {
		return UpdateItemDraftCommand{}, errs.NewValueIsRequiredError("categoryCode")
	}
	if itemName == "" {
		return UpdateItemDraftCommand{}, errs.NewValueIsRequiredError("itemName")
	}

	return UpdateItemDraftCommand{
		sessionID:    sessionID,
		action:       DraftSelectItem,
		categoryCode: categoryCode,
		itemName:     itemName,
		quantity:     quantity,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// NewSetDraftCharacteristicsCommand creates a command recording the item
// characteristics on the open draft.
func NewSetDraftCharacteristicsCommand(
	sessionID kernel.UUID, characteristics itemdraft.Characteristics,
) (UpdateItemDraftCommand, error) {
	if err := errors.Join(sessionID.Validate(), characteristics.Validate()); err != nil {
		return UpdateItemDraftCommand{}, err
	}

	return UpdateItemDraftCommand{
		sessionID:       sessionID,
		action:          DraftSetCharacteristics,
		characteristics: characteristics,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// NewConfirmDraftCharacteristicsCommand creates a command re-confirming
// the draft characteristics after a category switch.
func NewConfirmDraftCharacteristicsCommand(sessionID kernel.UUID) (UpdateItemDraftCommand, error) {
	return newPayloadFreeCommand(sessionID, DraftConfirmCharacteristics)
}

// NewSetDraftDefectsRisksCommand creates a command recording stains,
// defects and risk notes on the open draft.
func NewSetDraftDefectsRisksCommand(
	sessionID kernel.UUID, stains []string, defects []string, riskNotes string,
) (UpdateItemDraftCommand, error) {
	if err := sessionID.Validate(); err != nil {
		return UpdateItemDraftCommand{}, err
	}

	return UpdateItemDraftCommand{
		sessionID: sessionID,
		action:    DraftSetDefectsRisks,
		stains:    stains,
		defects:   defects,
		riskNotes: riskNotes,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// NewSetDraftPhotosCommand creates a command recording photo references
// on the open draft.
func NewSetDraftPhotosCommand(sessionID kernel.UUID, photoRefs []string) (UpdateItemDraftCommand, error) {
	if err := sessionID.Validate(); err != nil {
		return UpdateItemDraftCommand{}, err
	}

	return UpdateItemDraftCommand{
		sessionID: sessionID,
		action:    DraftSetPhotos,
		photoRefs: photoRefs,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// NewSelectDraftModifiersCommand creates a command recording the selected
// modifier codes on the open draft.
func NewSelectDraftModifiersCommand(sessionID kernel.UUID, codes []string) (UpdateItemDraftCommand, error) {
	if err := sessionID.Validate(); err != nil {
		return UpdateItemDraftCommand{}, err
	}

	return UpdateItemDraftCommand{
		sessionID:     sessionID,
		action:        DraftSelectModifiers,
		modifierCodes: codes,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// NewAdvanceDraftCommand creates a command moving the open draft to its
// next substep.
func NewAdvanceDraftCommand(sessionID kernel.UUID) (UpdateItemDraftCommand, error) {
	return newPayloadFreeCommand(sessionID, DraftAdvance)
}

// NewBackDraftCommand creates a command moving the open draft to its
// previous substep.
func NewBackDraftCommand(sessionID kernel.UUID) (UpdateItemDraftCommand, error) {
	return newPayloadFreeCommand(sessionID, DraftBack)
}

func newPayloadFreeCommand(sessionID kernel.UUID, action DraftAction) (UpdateItemDraftCommand, error) {
	if err := sessionID.Validate(); err != nil {
		return UpdateItemDraftCommand{}, err
	}

	return UpdateItemDraftCommand{
		sessionID: sessionID,
		action:    action,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through a constructor.
func (c UpdateItemDraftCommand) Validate() error {
	if err := c.guard.Validate(ErrUpdateItemDraftCommandIsNotConstructed); err != nil {
		return err
	}
	return c.action.Validate()
}

// SessionID returns the wizard session identifier.
func (c UpdateItemDraftCommand) SessionID() kernel.UUID {
	return c.sessionID
}

// Action returns the carried draft mutation.
func (c UpdateItemDraftCommand) Action() DraftAction {
	return c.action
}

// CategoryCode returns the selected category code for DraftSelectItem.
func (c UpdateItemDraftCommand) CategoryCode() string {
	return c.categoryCode
}

// ItemName returns the selected item name for DraftSelectItem.
func (c UpdateItemDraftCommand) ItemName() string {
	return c.itemName
}

// Quantity returns the entered quantity for DraftSelectItem.
func (c UpdateItemDraftCommand) Quantity() kernel.Quantity {
	return c.quantity
}

// Characteristics returns the payload for DraftSetCharacteristics.
func (c UpdateItemDraftCommand) Characteristics() itemdraft.Characteristics {
	return c.characteristics
}

// Stains returns the payload for DraftSetDefectsRisks.
func (c UpdateItemDraftCommand) Stains() []string {
	return c.stains
}

// Defects returns the payload for DraftSetDefectsRisks.
func (c UpdateItemDraftCommand) Defects() []string {
	return c.defects
}

// RiskNotes returns the payload for DraftSetDefectsRisks.
func (c UpdateItemDraftCommand) RiskNotes() string {
	return c.riskNotes
}

// PhotoRefs returns the payload for DraftSetPhotos.
func (c UpdateItemDraftCommand) PhotoRefs() []string {
	return c.photoRefs
}

// ModifierCodes returns the payload for DraftSelectModifiers.
func (c UpdateItemDraftCommand) ModifierCodes() []string {
	return c.modifierCodes
}
