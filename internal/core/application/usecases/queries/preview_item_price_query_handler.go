package queries

import (
	"context"
	"errors"

	"drycleaning/internal/core/domain/services"
	"drycleaning/internal/core/ports"
	"drycleaning/internal/pkg/errs"
)

// PreviewItemPriceQueryHandler resolves the open draft's catalog data and
// runs the price composition engine read-only. The session is loaded but
// never written back.
type PreviewItemPriceQueryHandler struct {
	sessions SessionReader
	catalog  ports.Catalog
	composer services.PriceComposer
}

// NewPreviewItemPriceQueryHandler creates a handler for price previews.
func NewPreviewItemPriceQueryHandler(
	sessions SessionReader,
	catalog ports.Catalog,
	composer services.PriceComposer,
) PreviewItemPriceQueryHandler {
	return PreviewItemPriceQueryHandler{
		sessions: sessions,
		catalog:  catalog,
		composer: composer,
	}
}

// Handle composes the open draft's price against the current catalog and
// the session's order adjustments.
//
// Returns errs.ObjectNotFoundError when the session has no open draft and
// errs.ValueIsInvalidError when the draft has no item selected yet.
func (h PreviewItemPriceQueryHandler) Handle(
	ctx context.Context,
	query PreviewItemPriceQuery,
) (PreviewItemPriceQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return PreviewItemPriceQueryResponse{}, err
	}

	session, err := h.sessions.Get(ctx, query.SessionID())
	if err != nil {
		return PreviewItemPriceQueryResponse{}, err
	}

	draft, ok := session.OpenDraft()
	if !ok {
		return PreviewItemPriceQueryResponse{},
			errs.NewObjectNotFoundError("open item draft", query.SessionID().String())
	}
	if draft.CategoryCode == "" {
		return PreviewItemPriceQueryResponse{}, errs.NewValueIsInvalidErrorWithCause(
			"draft", errors.New("no item selected yet"))
	}

	item, err := h.catalog.ResolveItem(ctx, draft.CategoryCode, draft.ItemName)
	if err != nil {
		return PreviewItemPriceQueryResponse{}, err
	}

	modifiers, err := h.catalog.ListModifiers(ctx, item.Category())
	if err != nil {
		return PreviewItemPriceQueryResponse{}, err
	}

	price, err := h.composer.ComposeItemPrice(draft, item, modifiers, session.Adjustments())
	if err != nil {
		return PreviewItemPriceQueryResponse{}, err
	}

	return PreviewItemPriceQueryResponse{
		LocalID:      draft.LocalID,
		CategoryCode: draft.CategoryCode,
		ItemName:     draft.ItemName,
		Price:        price,
	}, nil
}
