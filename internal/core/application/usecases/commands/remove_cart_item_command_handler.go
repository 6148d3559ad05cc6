package commands

import (
	"context"
)

// RemoveCartItemCommandHandler handles removing lines from a customer's cart.
type RemoveCartItemCommandHandler struct {
	uowFactory CartUoWFactory
}

// NewRemoveCartItemCommandHandler creates a handler for cart line removal.
func NewRemoveCartItemCommandHandler(uowFactory CartUoWFactory) RemoveCartItemCommandHandler {
	return RemoveCartItemCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the remove cart item command.
// Returns errs.ErrObjectNotFound when the customer has no cart or the cart
// holds no line with the given identifier.
func (h *RemoveCartItemCommandHandler) Handle(ctx context.Context, cmd RemoveCartItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	c, err := uow.CartRepository().GetByCustomer(ctx, cmd.CustomerID())
	if err != nil {
		return err
	}

	if err = c.RemoveItem(cmd.ItemID()); err != nil {
		return err
	}

	if err = uow.CartRepository().Update(ctx, c); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
