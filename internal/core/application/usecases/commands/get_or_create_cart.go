package commands

import (
	"context"
	"errors"

	"shop/internal/core/domain/model/cart"
	"shop/internal/core/domain/model/customer"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"
)

// getOrCreateCart returns the customer's cart, creating an empty one on first
// use. The new cart trades in the store's currency.
func getOrCreateCart(ctx context.Context, uow CartUoW, customerID, storeID kernel.UUID) (*cart.Cart, error) {
	existing, err := uow.CartRepository().GetByCustomer(ctx, customerID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	cust, err := uow.CustomerRepository().Get(ctx, customerID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		// Authenticated sessions always carry a linked customer profile, so
		// this should never occur. Recover with a visitor profile instead of
		// failing the request.
		cust, err = customer.NewCustomer(customerID, storeID, customer.Visitor, "")
		if err != nil {
			return nil, err
		}
		if err := uow.CustomerRepository().Add(ctx, cust); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	st, err := uow.StoreRepository().Get(ctx, storeID)
	if err != nil {
		return nil, err
	}

	fresh, err := cart.NewCart(kernel.NewUUID(), cust.ID(), st.ID(), st.Currency())
	if err != nil {
		return nil, err
	}
	if err := uow.CartRepository().Add(ctx, fresh); err != nil {
		return nil, err
	}

	return fresh, nil
}
