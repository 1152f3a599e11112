package queries

import (
	"context"

	"drycleaning/internal/core/domain/model/kernel"
	"drycleaning/internal/core/domain/model/wizard"

	"gorm.io/gorm"
)

// GetOrderSummaryQueryHandler aggregates active sessions straight from
// the database. Committed items live inside the JSONB session payload, so
// the item figures come from unnesting payload->'items' rather than from
// rehydrating every aggregate.
type GetOrderSummaryQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderSummaryQueryHandler creates a handler for order summary queries.
// Requires a GORM database connection for query execution.
func NewGetOrderSummaryQueryHandler(db *gorm.DB) GetOrderSummaryQueryHandler {
	return GetOrderSummaryQueryHandler{db: db}
}

// Handle executes the aggregation over all active sessions.
func (h GetOrderSummaryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderSummaryQuery,
) (GetOrderSummaryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderSummaryQueryResponse{}, err
	}

	var (
		activeSessions  int
		committedItems  int
		itemsTotal      int64
		prepaymentTotal int64
	)

	active := int(wizard.StatusActive)
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM sessions WHERE status = ?),
			(SELECT COALESCE(SUM((payload->'adjustments'->>'prepayment')::bigint), 0)
			 FROM sessions WHERE status = ?),
			COUNT(i.item),
			COALESCE(SUM((i.item->'price'->>'final_total')::bigint), 0)
		FROM sessions s
		CROSS JOIN LATERAL jsonb_array_elements(s.payload->'items') AS i(item)
		WHERE s.status = ?
	`, active, active, active).Row()

	if err := row.Scan(&activeSessions, &prepaymentTotal, &committedItems, &itemsTotal); err != nil {
		return GetOrderSummaryQueryResponse{}, err
	}

	total, err := kernel.NewMoney(itemsTotal)
	if err != nil {
		return GetOrderSummaryQueryResponse{}, err
	}
	prepayment, err := kernel.NewMoney(prepaymentTotal)
	if err != nil {
		return GetOrderSummaryQueryResponse{}, err
	}

	return GetOrderSummaryQueryResponse{
		ActiveSessions:  activeSessions,
		CommittedItems:  committedItems,
		ItemsTotal:      total,
		PrepaymentTotal: prepayment,
	}, nil
}
