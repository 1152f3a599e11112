package queries_test

import (
	"testing"

	"drycleaning/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderSummaryQuery_Valid(t *testing.T) {
	query := queries.NewGetOrderSummaryQuery()
	require.NoError(t, query.Validate())
}

func TestGetOrderSummaryQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetOrderSummaryQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetOrderSummaryQueryIsNotConstructed)
}
