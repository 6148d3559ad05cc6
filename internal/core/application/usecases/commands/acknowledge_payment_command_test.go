package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop/internal/core/application/usecases/commands"
	"shop/internal/core/domain/model/kernel"
)

func TestNewAcknowledgePaymentCommand_ValidInput(t *testing.T) {
	orderID := kernel.NewUUID()
	amount, err := kernel.MoneyFromString("49.99", "EUR")
	require.NoError(t, err)
	receivedAt := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	cmd, err := commands.NewAcknowledgePaymentCommand(orderID, amount, "tx-123", "pay-in-advance", receivedAt)
	require.NoError(t, err)
	assert.Equal(t, orderID, cmd.OrderID())
	assert.True(t, cmd.Amount().IsEqual(amount))
	assert.Equal(t, "tx-123", cmd.TransactionID())
	assert.Equal(t, "pay-in-advance", cmd.Method())
	assert.Equal(t, receivedAt, cmd.ReceivedAt())
}

func TestNewAcknowledgePaymentCommand_ZeroAmount(t *testing.T) {
	_, err := commands.NewAcknowledgePaymentCommand(
		kernel.NewUUID(), kernel.ZeroMoney("EUR"), "tx-123", "pay-in-advance", time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrAmountIsNotPositive)
}

func TestNewAcknowledgePaymentCommand_MissingTransactionID(t *testing.T) {
	amount, err := kernel.MoneyFromString("10.00", "EUR")
	require.NoError(t, err)

	_, err = commands.NewAcknowledgePaymentCommand(kernel.NewUUID(), amount, "", "pay-in-advance", time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrTransactionIDIsRequired)
}

func TestNewAcknowledgePaymentCommand_MissingMethod(t *testing.T) {
	amount, err := kernel.MoneyFromString("10.00", "EUR")
	require.NoError(t, err)

	_, err = commands.NewAcknowledgePaymentCommand(kernel.NewUUID(), amount, "tx-123", "", time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrPaymentMethodIsRequired)
}
