package commands

import (
	"errors"
	"time"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/guard"
)

var (
	ErrAcknowledgePaymentCommandIsNotConstructed = errors.New(
		"AcknowledgePaymentCommand must be created via NewAcknowledgePaymentCommand constructor",
	)
	ErrAmountIsNotPositive     = errors.New("payment amount must be positive")
	ErrTransactionIDIsRequired = errors.New("transaction identifier is required")
	ErrPaymentMethodIsRequired = errors.New("payment method is required")
)

// AcknowledgePaymentCommand records a payment received for an order, as
// reported by a payment provider callback.
type AcknowledgePaymentCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	amount        kernel.Money
	transactionID string
	method        string
	receivedAt    time.Time

	guard guard.ConstructorGuard
}

// NewAcknowledgePaymentCommand creates a command to record a received payment.
func NewAcknowledgePaymentCommand(
	orderID kernel.UUID,
	amount kernel.Money,
	transactionID, method string,
	receivedAt time.Time,
) (AcknowledgePaymentCommand, error) {
	cmd := AcknowledgePaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setAmount(amount),
		cmd.setTransactionID(transactionID),
		cmd.setMethod(method),
	); err != nil {
		return AcknowledgePaymentCommand{}, err
	}
	cmd.receivedAt = receivedAt

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AcknowledgePaymentCommand) Validate() error {
	return c.guard.Validate(ErrAcknowledgePaymentCommandIsNotConstructed)
}

// OrderID returns the order the payment belongs to.
func (c AcknowledgePaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Amount returns the received amount.
func (c AcknowledgePaymentCommand) Amount() kernel.Money {
	return c.amount
}

// TransactionID returns the provider's transaction reference.
func (c AcknowledgePaymentCommand) TransactionID() string {
	return c.transactionID
}

// Method returns the payment method namespace.
func (c AcknowledgePaymentCommand) Method() string {
	return c.method
}

// ReceivedAt returns when the provider reported the payment.
func (c AcknowledgePaymentCommand) ReceivedAt() time.Time {
	return c.receivedAt
}

func (c *AcknowledgePaymentCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.orderID = id
	return nil
}

func (c *AcknowledgePaymentCommand) setAmount(amount kernel.Money) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	if !amount.Amount().IsPositive() {
		return ErrAmountIsNotPositive
	}

	c.amount = amount
	return nil
}

func (c *AcknowledgePaymentCommand) setTransactionID(transactionID string) error {
	if transactionID == "" {
		return ErrTransactionIDIsRequired
	}

	c.transactionID = transactionID
	return nil
}

func (c *AcknowledgePaymentCommand) setMethod(method string) error {
	if method == "" {
		return ErrPaymentMethodIsRequired
	}

	c.method = method
	return nil
}
