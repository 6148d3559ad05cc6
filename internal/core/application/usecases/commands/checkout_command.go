package commands

import (
	"errors"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/guard"
)

var (
	ErrCheckoutCommandIsNotConstructed = errors.New(
		"CheckoutCommand must be created via NewCheckoutCommand constructor",
	)
	ErrShippingAddressIsRequired = errors.New("shipping or billing address is required")
)

// CheckoutCommand represents a request to convert a customer's cart into an
// order. The order identifier is generated by the caller so the operation can
// be retried idempotently.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCheckoutCommand(orderID, customerID, shippingText, billingText)
//	if err != nil {
//	    return fmt.Errorf("invalid checkout data: %w", err)
//	}
//
//	handler := NewCheckoutCommandHandler(uowFactory, pool, availability)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("checkout failed: %w", err)
//	}
type CheckoutCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	customerID      kernel.UUID
	shippingAddress string
	billingAddress  string

	guard guard.ConstructorGuard
}

// NewCheckoutCommand creates a command to convert a cart into an order.
// At least one of the two address texts must be given; the missing one is
// copied from the other during conversion.
func NewCheckoutCommand(
	orderID, customerID kernel.UUID,
	shippingAddress, billingAddress string,
) (CheckoutCommand, error) {
	cmd := CheckoutCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setAddresses(shippingAddress, billingAddress),
	); err != nil {
		return CheckoutCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CheckoutCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutCommandIsNotConstructed)
}

// OrderID returns the caller-generated identifier for the new order.
func (c CheckoutCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the customer checking out.
func (c CheckoutCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// ShippingAddress returns the shipping address text.
func (c CheckoutCommand) ShippingAddress() string {
	return c.shippingAddress
}

// BillingAddress returns the billing address text.
func (c CheckoutCommand) BillingAddress() string {
	return c.billingAddress
}

func (c *CheckoutCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.orderID = id
	return nil
}

func (c *CheckoutCommand) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.customerID = id
	return nil
}

func (c *CheckoutCommand) setAddresses(shipping, billing string) error {
	if shipping == "" && billing == "" {
		return ErrShippingAddressIsRequired
	}

	c.shippingAddress = shipping
	c.billingAddress = billing
	return nil
}
