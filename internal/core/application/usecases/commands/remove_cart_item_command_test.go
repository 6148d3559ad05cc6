package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop/internal/core/application/usecases/commands"
	"shop/internal/core/domain/model/kernel"
)

func TestNewRemoveCartItemCommand_ValidInput(t *testing.T) {
	customerID := kernel.NewUUID()
	itemID := kernel.NewUUID()

	cmd, err := commands.NewRemoveCartItemCommand(customerID, itemID)
	require.NoError(t, err)
	assert.Equal(t, customerID, cmd.CustomerID())
	assert.Equal(t, itemID, cmd.ItemID())
}

func TestNewRemoveCartItemCommand_InvalidItemID(t *testing.T) {
	_, err := commands.NewRemoveCartItemCommand(kernel.NewUUID(), kernel.UUID{})
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}
