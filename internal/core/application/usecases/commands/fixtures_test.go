package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"shop/internal/core/domain/model/cart"
	"shop/internal/core/domain/model/customer"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/product"
	"shop/internal/core/domain/model/store"
	"shop/internal/core/domain/services/pricing"
)

const euro = kernel.Currency("EUR")

func money(t *testing.T, amount string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(amount, euro)
	require.NoError(t, err)
	return m
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewStore(kernel.NewUUID(), "Demo Store", "shop@example.com", euro,
		decimal.Zero, []string{pricing.DefaultModifierID})
	require.NoError(t, err)
	return s
}

func newTestProduct(t *testing.T, storeID kernel.UUID, price string, stock int) *product.Product {
	t.Helper()
	p, err := product.NewProduct(kernel.NewUUID(), storeID, "Ceramic Mug", "mug-01",
		money(t, price), stock)
	require.NoError(t, err)
	return p
}

func newTestCustomer(t *testing.T, storeID kernel.UUID) *customer.Customer {
	t.Helper()
	c, err := customer.NewCustomer(kernel.NewUUID(), storeID, customer.Guest, "guest@example.com")
	require.NoError(t, err)
	return c
}

func newTestCart(t *testing.T, customerID kernel.UUID, s *store.Store) *cart.Cart {
	t.Helper()
	c, err := cart.NewCart(kernel.NewUUID(), customerID, s.ID(), s.Currency())
	require.NoError(t, err)
	return c
}

// defaultPool resolves every store to a pipeline holding only the default
// price modifier.
func defaultPool(t *testing.T) *pricing.Pool {
	t.Helper()
	registry := pricing.NewRegistry()
	err := registry.Register(pricing.DefaultModifierID, func(_ *store.Store) (pricing.Modifier, error) {
		return pricing.NewDefaultModifier(), nil
	})
	require.NoError(t, err)
	return pricing.NewPool(registry)
}

func newPricingContext(t *testing.T, cust *customer.Customer, s *store.Store) *pricing.Context {
	t.Helper()
	return pricing.NewContext(t.Context(), cust, s, stockAvailability{})
}

// stockAvailability reports availability straight from the product backing a
// cart line.
type stockAvailability struct{}

func (stockAvailability) Availability(_ context.Context, item *cart.Item) (product.Availability, error) {
	return item.Product().GetAvailability(time.Now()), nil
}
