package queries_test

import (
	"testing"

	"drycleaning/internal/core/application/usecases/queries"
	"drycleaning/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPreviewItemPriceQuery_Valid(t *testing.T) {
	query, err := queries.NewPreviewItemPriceQuery(kernel.NewUUID())
	require.NoError(t, err)
	require.NoError(t, query.Validate())
}

func TestNewPreviewItemPriceQuery_EmptySessionID_ReturnsError(t *testing.T) {
	_, err := queries.NewPreviewItemPriceQuery(kernel.UUID{})
	require.Error(t, err)
}

func TestPreviewItemPriceQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.PreviewItemPriceQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrPreviewItemPriceQueryIsNotConstructed)
}
