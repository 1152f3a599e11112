package queries

import (
	"context"

	"drycleaning/internal/core/domain/model/itemdraft"
	"drycleaning/internal/core/domain/model/kernel"
	"drycleaning/internal/core/domain/model/wizard"
)

// SessionReader provides read-only access to session aggregates for the
// query side. Satisfied by the session repository.
type SessionReader interface {
	Get(ctx context.Context, id kernel.UUID) (*wizard.Session, error)
}

// GetSessionQueryHandler loads a wizard session and maps it into the
// view the UI renders. Unlike the command side it runs outside a unit of
// work: nothing is mutated.
type GetSessionQueryHandler struct {
	sessions SessionReader
}

// NewGetSessionQueryHandler creates a handler for session view queries.
func NewGetSessionQueryHandler(sessions SessionReader) GetSessionQueryHandler {
	return GetSessionQueryHandler{sessions: sessions}
}

// Handle loads the session and maps it into the response, including the
// order totals summarized from the committed item breakdowns.
func (h GetSessionQueryHandler) Handle(
	ctx context.Context,
	query GetSessionQuery,
) (GetSessionQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetSessionQueryResponse{}, err
	}

	session, err := h.sessions.Get(ctx, query.SessionID())
	if err != nil {
		return GetSessionQueryResponse{}, err
	}

	items := make([]SessionItemResponse, 0, len(session.Items()))
	for _, item := range session.Items() {
		draft := item.Draft()
		items = append(items, SessionItemResponse{
			LocalID:      item.LocalID(),
			CategoryCode: draft.CategoryCode,
			ItemName:     draft.ItemName,
			Quantity:     draft.Quantity,
			Price:        item.Price(),
		})
	}

	var openDraft *itemdraft.Snapshot
	if draft, ok := session.OpenDraft(); ok {
		openDraft = &draft
	}

	totals, err := session.Totals()
	if err != nil {
		return GetSessionQueryResponse{}, err
	}

	return GetSessionQueryResponse{
		ID:          session.ID(),
		Version:     session.Version(),
		Stage:       session.Stage(),
		Status:      session.Status(),
		ClientID:    session.ClientID(),
		BranchID:    session.BranchID(),
		Adjustments: session.Adjustments(),
		Items:       items,
		OpenDraft:   openDraft,
		Totals:      totals,
	}, nil
}
