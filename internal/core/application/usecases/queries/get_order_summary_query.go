package queries

import (
	"errors"

	"drycleaning/internal/core/domain/model/kernel"
	"drycleaning/internal/pkg/guard"
)

var (
	ErrGetOrderSummaryQueryIsNotConstructed = errors.New(
		"GetOrderSummaryQuery must be created via NewGetOrderSummaryQuery constructor",
	)
)

// GetOrderSummaryQuery aggregates the active wizard workload: how many
// order sessions are open, how many items they have committed so far and
// the money involved. Used for branch monitoring dashboards.
//
// Example:
//
//	query := NewGetOrderSummaryQuery()
//	handler := NewGetOrderSummaryQueryHandler(db)
//
//	summary, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get order summary: %w", err)
//	}
//
//	fmt.Printf("%d active sessions, %d items\n",
//	    summary.ActiveSessions, summary.CommittedItems)
type GetOrderSummaryQuery struct {
	guard guard.ConstructorGuard
}

// NewGetOrderSummaryQuery creates a query over all active sessions.
// This is a parameterless query.
func NewGetOrderSummaryQuery() GetOrderSummaryQuery {
	return GetOrderSummaryQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetOrderSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderSummaryQueryIsNotConstructed)
}

// GetOrderSummaryQueryResponse is the aggregated view over active
// sessions. ItemsTotal sums the final composed price of every committed
// item; PrepaymentTotal sums the prepayments already taken.
type GetOrderSummaryQueryResponse struct {
	ActiveSessions  int
	CommittedItems  int
	ItemsTotal      kernel.Money
	PrepaymentTotal kernel.Money
}
