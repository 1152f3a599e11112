package queries_test

import (
	"testing"

	"drycleaning/internal/core/application/usecases/queries"
	"drycleaning/internal/core/domain/model/kernel"
	"drycleaning/internal/core/domain/model/pricing"
	"drycleaning/internal/core/domain/services"
	"drycleaning/internal/pkg/errs"

	"github.com/stretchr/testify/require"
)

func TestPreviewItemPriceQueryHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	sessionID := kernel.NewUUID()
	localID := kernel.NewUUID()
	query, err := queries.NewPreviewItemPriceQuery(sessionID)
	require.NoError(t, err)

	session := sessionWithDraft(t, sessionID, localID)
	versionBefore := session.Version()

	reader := new(MockSessionReader)
	reader.On("Get", ctx, sessionID).Return(session, nil).Once()

	catalog := new(MockCatalog)
	catalog.On("ResolveItem", ctx, "CLOTHING", "Coat").Return(coatEntry(t), nil).Once()
	catalog.On("ListModifiers", ctx, clothingCategory(t)).Return([]pricing.Modifier{}, nil).Once()

	h := queries.NewPreviewItemPriceQueryHandler(reader, catalog, services.NewPriceComposer())
	response, err := h.Handle(ctx, query)
	require.NoError(t, err)

	require.True(t, response.LocalID.IsEqual(localID))
	require.Equal(t, "Coat", response.ItemName)
	require.Equal(t, int64(1000), response.Price.FinalTotal.MinorUnits())
	require.NotEmpty(t, response.Price.Steps)

	// A preview never mutates the session.
	require.Equal(t, versionBefore, session.Version())
	catalog.AssertExpectations(t)
}

func TestPreviewItemPriceQueryHandler_Handle_NoOpenDraft_ReturnsNotFoundError(t *testing.T) {
	ctx := t.Context()
	sessionID := kernel.NewUUID()
	query, err := queries.NewPreviewItemPriceQuery(sessionID)
	require.NoError(t, err)

	session := sessionAtItems(t, sessionID)

	reader := new(MockSessionReader)
	reader.On("Get", ctx, sessionID).Return(session, nil).Once()

	catalog := new(MockCatalog)
	h := queries.NewPreviewItemPriceQueryHandler(reader, catalog, services.NewPriceComposer())
	_, err = h.Handle(ctx, query)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	catalog.AssertNotCalled(t, "ResolveItem")
}

func TestPreviewItemPriceQueryHandler_Handle_NoItemSelected_ReturnsInvalidError(t *testing.T) {
	ctx := t.Context()
	sessionID := kernel.NewUUID()
	query, err := queries.NewPreviewItemPriceQuery(sessionID)
	require.NoError(t, err)

	session := sessionAtItems(t, sessionID)
	require.NoError(t, session.StartNewItemDraft(kernel.NewUUID()))

	reader := new(MockSessionReader)
	reader.On("Get", ctx, sessionID).Return(session, nil).Once()

	catalog := new(MockCatalog)
	h := queries.NewPreviewItemPriceQueryHandler(reader, catalog, services.NewPriceComposer())
	_, err = h.Handle(ctx, query)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	catalog.AssertNotCalled(t, "ResolveItem")
}

func TestPreviewItemPriceQueryHandler_Handle_UnknownCatalogItem_ReturnsError(t *testing.T) {
	ctx := t.Context()
	sessionID := kernel.NewUUID()
	query, err := queries.NewPreviewItemPriceQuery(sessionID)
	require.NoError(t, err)

	session := sessionWithDraft(t, sessionID, kernel.NewUUID())

	reader := new(MockSessionReader)
	reader.On("Get", ctx, sessionID).Return(session, nil).Once()

	catalog := new(MockCatalog)
	catalog.On("ResolveItem", ctx, "CLOTHING", "Coat").
		Return(pricing.PriceListItem{}, errs.NewObjectNotFoundError("price list item", "Coat")).Once()

	h := queries.NewPreviewItemPriceQueryHandler(reader, catalog, services.NewPriceComposer())
	_, err = h.Handle(ctx, query)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	catalog.AssertNotCalled(t, "ListModifiers")
}
