package commands

import (
	"context"
)

// AddCartItemCommandHandler handles the business logic for adding products to
// carts. Creates the cart on first use and merges quantities into existing
// lines with matching variant discriminators.
type AddCartItemCommandHandler struct {
	uowFactory CartUoWFactory
}

// NewAddCartItemCommandHandler creates a handler for cart item additions.
func NewAddCartItemCommandHandler(uowFactory CartUoWFactory) AddCartItemCommandHandler {
	return AddCartItemCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the add cart item command.
// Loads or creates the customer's cart, resolves the product, and records the
// new line. Pricing is not recomputed here; the cart is persisted dirty and
// swept on the next read.
func (h *AddCartItemCommandHandler) Handle(ctx context.Context, cmd AddCartItemCommand) error {
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

	c, err := getOrCreateCart(ctx, uow, cmd.CustomerID(), cmd.StoreID())
	if err != nil {
		return err
	}

	p, err := uow.ProductRepository().Get(ctx, cmd.ProductID())
	if err != nil {
		return err
	}

	if _, _, err = c.GetOrCreateItem(p, cmd.Quantity(), cmd.Extra()); err != nil {
		return err
	}

	if err = uow.CartRepository().Update(ctx, c); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
