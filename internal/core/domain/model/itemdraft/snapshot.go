package itemdraft

import "drycleaning/internal/core/domain/model/kernel"

// Snapshot is an immutable copy of a draft's state. The synchronization
// layer takes a snapshot before adopting an authoritative server state and
// restores it afterwards, so operator input survives a resync. Repositories
// use it to rehydrate drafts from storage.
type Snapshot struct {
	LocalID                  kernel.UUID
	Substep                  Substep
	CategoryCode             string
	ItemName                 string
	Quantity                 kernel.Quantity
	Characteristics          *Characteristics
	CharacteristicsConfirmed bool
	Stains                   []string
	Defects                  []string
	RiskNotes                string
	PhotoRefs                []string
	ModifierCodes            []string
}

// Snapshot captures the draft's current state.
func (d *Draft) Snapshot() Snapshot {
	var characteristics *Characteristics
	if d.characteristics != nil {
		c := *d.characteristics
		characteristics = &c
	}

	return Snapshot{
		LocalID:                  d.localID,
		Substep:                  d.substep,
		CategoryCode:             d.categoryCode,
		ItemName:                 d.itemName,
		Quantity:                 d.quantity,
		Characteristics:          characteristics,
		CharacteristicsConfirmed: d.characteristicsConfirmed,
		Stains:                   copyStrings(d.stains),
		Defects:                  copyStrings(d.defects),
		RiskNotes:                d.riskNotes,
		PhotoRefs:                copyStrings(d.photoRefs),
		ModifierCodes:            copyStrings(d.modifierCodes),
	}
}

// RestoreDraft rehydrates a draft from a snapshot, re-validating the
// restored state. Quantity is only required once an item has been
// selected; characteristics are validated when present.
func RestoreDraft(snapshot Snapshot) (*Draft, error) {
	if err := snapshot.LocalID.Validate(); err != nil {
		return nil, err
	}
	if err := snapshot.Substep.Validate(); err != nil {
		return nil, err
	}
	if snapshot.CategoryCode != "" {
		if err := snapshot.Quantity.Validate(); err != nil {
			return nil, err
		}
	}
	if snapshot.Characteristics != nil {
		if err := snapshot.Characteristics.Validate(); err != nil {
			return nil, err
		}
	}

	var characteristics *Characteristics
	if snapshot.Characteristics != nil {
		c := *snapshot.Characteristics
		characteristics = &c
	}

	return &Draft{
		localID:                  snapshot.LocalID,
		substep:                  snapshot.Substep,
		categoryCode:             snapshot.CategoryCode,
		itemName:                 snapshot.ItemName,
		quantity:                 snapshot.Quantity,
		characteristics:          characteristics,
		characteristicsConfirmed: snapshot.CharacteristicsConfirmed,
		stains:                   copyStrings(snapshot.Stains),
		defects:                  copyStrings(snapshot.Defects),
		riskNotes:                snapshot.RiskNotes,
		photoRefs:                copyStrings(snapshot.PhotoRefs),
		modifierCodes:            copyStrings(snapshot.ModifierCodes),
		isConstructed:            true,
	}, nil
}
