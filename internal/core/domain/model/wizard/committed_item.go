package wizard

import (
	"drycleaning/internal/core/domain/model/itemdraft"
	"drycleaning/internal/core/domain/model/kernel"
	"drycleaning/internal/core/domain/model/pricing"
	"drycleaning/internal/pkg/errs"
	"drycleaning/internal/pkg/guard"
)

// ErrCommittedItemIsNotConstructed is returned when validating a
// zero-value CommittedItem.
var ErrCommittedItemIsNotConstructed = errs.NewValueIsRequiredError(
	"CommittedItem must be created via NewCommittedItem")

// CommittedItem is one fully configured order item with its composed
// price. Items are committed atomically from a draft at the end of the
// item sub-flow; editing re-opens a draft with the same local id, and
// saving the edit replaces the committed item in place.
type CommittedItem struct { //nolint:recvcheck //using for validation
	draft itemdraft.Snapshot
	price pricing.Result

	guard guard.ConstructorGuard
}

// NewCommittedItem creates a committed item from a draft snapshot and its
// calculated price. The snapshot must describe a complete draft: the
// caller (the session aggregate) validates the draft before committing.
func NewCommittedItem(draft itemdraft.Snapshot, price pricing.Result) (CommittedItem, error) {
	if err := draft.LocalID.Validate(); err != nil {
		return CommittedItem{}, err
	}

	return CommittedItem{
		draft: draft,
		price: price,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the item was created through NewCommittedItem.
func (i CommittedItem) Validate() error {
	return i.guard.Validate(ErrCommittedItemIsNotConstructed)
}

// LocalID returns the item's stable local identifier.
func (i CommittedItem) LocalID() kernel.UUID {
	return i.draft.LocalID
}

// Draft returns the committed item configuration.
func (i CommittedItem) Draft() itemdraft.Snapshot {
	return i.draft
}

// Price returns the itemized price composition result.
func (i CommittedItem) Price() pricing.Result {
	return i.price
}
