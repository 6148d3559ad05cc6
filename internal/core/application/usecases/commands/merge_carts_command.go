package commands

import (
	"errors"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/guard"
)

var (
	ErrMergeCartsCommandIsNotConstructed = errors.New(
		"MergeCartsCommand must be created via NewMergeCartsCommand constructor",
	)
	ErrSameCustomer = errors.New("source and target customers must differ")
)

// MergeCartsCommand represents a request to fold one customer's cart into
// another's. Used when an anonymous visitor logs in and the session cart has
// to follow the account.
type MergeCartsCommand struct { //nolint:recvcheck //using for validation
	sourceCustomerID kernel.UUID
	targetCustomerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMergeCartsCommand creates a command to merge the source customer's cart
// into the target customer's cart.
func NewMergeCartsCommand(sourceCustomerID, targetCustomerID kernel.UUID) (MergeCartsCommand, error) {
	cmd := MergeCartsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSourceCustomerID(sourceCustomerID),
		cmd.setTargetCustomerID(targetCustomerID),
	); err != nil {
		return MergeCartsCommand{}, err
	}

	if sourceCustomerID.IsEqual(targetCustomerID) {
		return MergeCartsCommand{}, ErrSameCustomer
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MergeCartsCommand) Validate() error {
	return c.guard.Validate(ErrMergeCartsCommandIsNotConstructed)
}

// SourceCustomerID returns the customer whose cart is absorbed and deleted.
func (c MergeCartsCommand) SourceCustomerID() kernel.UUID {
	return c.sourceCustomerID
}

// TargetCustomerID returns the customer whose cart receives the merged lines.
func (c MergeCartsCommand) TargetCustomerID() kernel.UUID {
	return c.targetCustomerID
}

func (c *MergeCartsCommand) setSourceCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.sourceCustomerID = id
	return nil
}

func (c *MergeCartsCommand) setTargetCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.targetCustomerID = id
	return nil
}
