package queries

import (
	"errors"

	"drycleaning/internal/core/domain/model/kernel"
	"drycleaning/internal/core/domain/model/pricing"
	"drycleaning/internal/pkg/guard"
)

var (
	ErrPreviewItemPriceQueryIsNotConstructed = errors.New(
		"PreviewItemPriceQuery must be created via NewPreviewItemPriceQuery constructor",
	)
)

// PreviewItemPriceQuery composes the price of the open item draft without
// touching the session. The preview runs the same composition engine as
// saving the item, so the displayed breakdown is exactly what gets
// committed when the operator confirms.
type PreviewItemPriceQuery struct {
	sessionID kernel.UUID

	guard guard.ConstructorGuard
}

// NewPreviewItemPriceQuery creates a price preview query for the open
// draft of the given session.
func NewPreviewItemPriceQuery(sessionID kernel.UUID) (PreviewItemPriceQuery, error) {
	if err := sessionID.Validate(); err != nil {
		return PreviewItemPriceQuery{}, err
	}

	return PreviewItemPriceQuery{
		sessionID: sessionID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q PreviewItemPriceQuery) Validate() error {
	return q.guard.Validate(ErrPreviewItemPriceQueryIsNotConstructed)
}

// SessionID returns the identifier of the session holding the draft.
func (q PreviewItemPriceQuery) SessionID() kernel.UUID {
	return q.sessionID
}

// PreviewItemPriceQueryResponse carries the itemized price composition
// for the open draft.
type PreviewItemPriceQueryResponse struct {
	LocalID      kernel.UUID
	CategoryCode string
	ItemName     string
	Price        pricing.Result
}
