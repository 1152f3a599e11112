package queries

import (
	"errors"

	"drycleaning/internal/core/domain/model/itemdraft"
	"drycleaning/internal/core/domain/model/kernel"
	"drycleaning/internal/core/domain/model/pricing"
	"drycleaning/internal/core/domain/model/wizard"
	"drycleaning/internal/pkg/guard"
)

var (
	ErrGetSessionQueryIsNotConstructed = errors.New(
		"GetSessionQuery must be created via NewGetSessionQuery constructor",
	)
)

// GetSessionQuery retrieves the full state of one wizard session for
// rendering: the current stage, the committed items with their price
// breakdowns, the open item draft and the running order totals.
//
// Example:
//
//	query, err := NewGetSessionQuery(sessionID)
//	if err != nil {
//	    return err
//	}
//
//	session, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get session: %w", err)
//	}
//
//	fmt.Printf("Session at %s with %d items\n", session.Stage, len(session.Items))
type GetSessionQuery struct {
	sessionID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetSessionQuery creates a query for the given session.
func NewGetSessionQuery(sessionID kernel.UUID) (GetSessionQuery, error) {
	if err := sessionID.Validate(); err != nil {
		return GetSessionQuery{}, err
	}

	return GetSessionQuery{
		sessionID: sessionID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetSessionQuery) Validate() error {
	return q.guard.Validate(ErrGetSessionQueryIsNotConstructed)
}

// SessionID returns the identifier of the session to load.
func (q GetSessionQuery) SessionID() kernel.UUID {
	return q.sessionID
}

// SessionItemResponse is one committed order item in the session view.
type SessionItemResponse struct {
	LocalID      kernel.UUID
	CategoryCode string
	ItemName     string
	Quantity     kernel.Quantity
	Price        pricing.Result
}

// GetSessionQueryResponse is the session state as the order wizard UI
// consumes it. OpenDraft is nil when no item sub-flow is in progress.
type GetSessionQueryResponse struct {
	ID          kernel.UUID
	Version     int
	Stage       wizard.Stage
	Status      wizard.Status
	ClientID    *kernel.UUID
	BranchID    *kernel.UUID
	Adjustments pricing.Adjustments
	Items       []SessionItemResponse
	OpenDraft   *itemdraft.Snapshot
	Totals      pricing.OrderTotal
}
