package commands

import (
	"errors"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/guard"
)

var (
	ErrAddCartItemCommandIsNotConstructed = errors.New(
		"AddCartItemCommand must be created via NewAddCartItemCommand constructor",
	)
	ErrQuantityIsNegative = errors.New("quantity must not be negative")
)

// AddCartItemCommand represents a request to put a product into a customer's
// cart. A zero quantity adds the product to the watch list instead of the
// purchasing lines.
//
// Example:
//
//	cmd, err := NewAddCartItemCommand(customerID, storeID, productID, 2, nil)
//	if err != nil {
//	    return fmt.Errorf("invalid cart item data: %w", err)
//	}
//
//	handler := NewAddCartItemCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to add cart item: %w", err)
//	}
type AddCartItemCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID
	storeID    kernel.UUID
	productID  kernel.UUID
	quantity   int
	extra      map[string]string

	guard guard.ConstructorGuard
}

// NewAddCartItemCommand creates a command to add a product to a cart.
// The extra map carries product variant discriminators and may be nil.
// Returns an error if any identifier is invalid or the quantity is negative.
func NewAddCartItemCommand(
	customerID, storeID, productID kernel.UUID,
	quantity int,
	extra map[string]string,
) (AddCartItemCommand, error) {
	cmd := AddCartItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setStoreID(storeID),
		cmd.setProductID(productID),
		cmd.setQuantity(quantity),
	); err != nil {
		return AddCartItemCommand{}, err
	}
	cmd.extra = extra

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddCartItemCommand) Validate() error {
	return c.guard.Validate(ErrAddCartItemCommandIsNotConstructed)
}

// CustomerID returns the cart owner's identifier.
func (c AddCartItemCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// StoreID returns the store the cart trades in.
func (c AddCartItemCommand) StoreID() kernel.UUID {
	return c.storeID
}

// ProductID returns the identifier of the product being added.
func (c AddCartItemCommand) ProductID() kernel.UUID {
	return c.productID
}

// Quantity returns the requested quantity. Zero marks a watch-list entry.
func (c AddCartItemCommand) Quantity() int {
	return c.quantity
}

// Extra returns the product variant discriminators.
func (c AddCartItemCommand) Extra() map[string]string {
	return c.extra
}

func (c *AddCartItemCommand) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.customerID = id
	return nil
}

func (c *AddCartItemCommand) setStoreID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.storeID = id
	return nil
}

func (c *AddCartItemCommand) setProductID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.productID = id
	return nil
}

func (c *AddCartItemCommand) setQuantity(quantity int) error {
	if quantity < 0 {
		return ErrQuantityIsNegative
	}

	c.quantity = quantity
	return nil
}
