package commands

import (
	"context"
	"errors"
	"time"

	"shop/internal/core/domain/model/cart"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
	"shop/internal/core/domain/model/product"
	"shop/internal/core/domain/services/pricing"
)

var ErrCartIsEmpty = errors.New("cart has no purchasable items")

// CheckoutCommandHandler converts a customer's cart into an order.
//
// The conversion runs in two transactions. The first draws the customer and
// order numbers and persists the empty order shell; the second prices the
// cart strictly, freezes it into the order and deducts stock. A crash between
// the two leaves a recoverable shell in state new, never a half-converted
// cart.
type CheckoutCommandHandler struct {
	uowFactory   CheckoutUoWFactory
	pool         *pricing.Pool
	availability pricing.AvailabilityProvider
}

// NewCheckoutCommandHandler creates a handler for cart to order conversion.
func NewCheckoutCommandHandler(
	uowFactory CheckoutUoWFactory,
	pool *pricing.Pool,
	availability pricing.AvailabilityProvider,
) CheckoutCommandHandler {
	return CheckoutCommandHandler{
		uowFactory:   uowFactory,
		pool:         pool,
		availability: availability,
	}
}

// Handle processes the checkout command.
func (h *CheckoutCommandHandler) Handle(ctx context.Context, cmd CheckoutCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	o, c, err := h.createShell(ctx, cmd)
	if err != nil {
		return err
	}

	return h.populate(ctx, o.ID(), c.ID())
}

// createShell runs the first transaction: assigns the customer number on
// first order, draws the year-scoped order number and persists the shell
// together with the cart's address texts.
func (h *CheckoutCommandHandler) createShell(
	ctx context.Context,
	cmd CheckoutCommand,
) (*order.Order, *cart.Cart, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	c, err := uow.CartRepository().GetByCustomer(ctx, cmd.CustomerID())
	if err != nil {
		return nil, nil, err
	}
	if c.IsEmpty() {
		return nil, nil, ErrCartIsEmpty
	}

	cust, err := uow.CustomerRepository().Get(ctx, cmd.CustomerID())
	if err != nil {
		return nil, nil, err
	}
	if _, err = cust.GetOrAssignNumber(func() (int, error) {
		return uow.CustomerRepository().NextNumber(ctx)
	}); err != nil {
		return nil, nil, err
	}
	if err = uow.CustomerRepository().Update(ctx, cust); err != nil {
		return nil, nil, err
	}

	st, err := uow.StoreRepository().Get(ctx, c.StoreID())
	if err != nil {
		return nil, nil, err
	}

	year := time.Now().Year()
	sequence, err := uow.OrderRepository().NextNumber(ctx, year)
	if err != nil {
		return nil, nil, err
	}

	o, err := order.NewOrder(cmd.OrderID(), cust.ID(), st.ID(), st.Currency(), year, sequence)
	if err != nil {
		return nil, nil, err
	}
	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, nil, err
	}

	c.SetShippingAddressText(cmd.ShippingAddress())
	c.SetBillingAddressText(cmd.BillingAddress())
	if err = uow.CartRepository().Update(ctx, c); err != nil {
		return nil, nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, nil, err
	}

	return o, c, nil
}

// populate runs the second transaction: strict final pricing, freezing the
// cart into the order and deducting stock, all atomically.
func (h *CheckoutCommandHandler) populate(ctx context.Context, orderID, cartID kernel.UUID) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return err
	}
	c, err := uow.CartRepository().Get(ctx, cartID)
	if err != nil {
		return err
	}
	cust, err := uow.CustomerRepository().Get(ctx, c.CustomerID())
	if err != nil {
		return err
	}
	st, err := uow.StoreRepository().Get(ctx, c.StoreID())
	if err != nil {
		return err
	}

	pipeline, err := h.pool.Get(st)
	if err != nil {
		return err
	}

	// Capture the products backing purchasing lines before conversion empties
	// the cart; their deducted stock has to be persisted below.
	touched := make([]*product.Product, 0, len(c.Items()))
	for _, item := range c.Items() {
		if !item.IsWatch() {
			touched = append(touched, item.Product())
		}
	}

	pctx := pricing.NewContext(ctx, cust, st, h.availability)
	if err = o.PopulateFromCart(ctx, c, pctx, pipeline, nil); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}
	if err = uow.CartRepository().Update(ctx, c); err != nil {
		return err
	}
	for _, p := range touched {
		if err = uow.ProductRepository().Update(ctx, p); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
