package queries_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop/internal/core/application/usecases/queries"
	"shop/internal/core/domain/model/kernel"
)

func TestNewGetCartQuery_ValidInput(t *testing.T) {
	customerID := kernel.NewUUID()
	query, err := queries.NewGetCartQuery(customerID)
	require.NoError(t, err)
	assert.Equal(t, customerID, query.CustomerID())
	require.NoError(t, query.Validate())
}

func TestNewGetCartQuery_InvalidCustomerID(t *testing.T) {
	_, err := queries.NewGetCartQuery(kernel.UUID{})
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestGetCartQuery_ZeroValueFailsValidation(t *testing.T) {
	var query queries.GetCartQuery
	require.Error(t, query.Validate())
}
