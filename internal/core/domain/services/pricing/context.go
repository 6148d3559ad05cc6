package pricing

import (
	"context"

	"shop/internal/core/domain/model/cart"
	"shop/internal/core/domain/model/customer"
	"shop/internal/core/domain/model/product"
	"shop/internal/core/domain/model/store"
)

// AvailabilityProvider reports how many units of a line's product can currently
// be sold to this customer. Implementations may subtract quantities reserved in
// other carts.
type AvailabilityProvider interface {
	Availability(ctx context.Context, item *cart.Item) (product.Availability, error)
}

// ItemReloader refreshes a line from its authoritative source before pricing,
// e.g. re-reading the product row inside the running transaction.
type ItemReloader interface {
	ReloadItem(ctx context.Context, item *cart.Item) error
}

// Context carries one pricing pass: who buys from which store, how strictly to
// treat shortages, and the collaborators the modifiers consult. Notices collect
// advisory messages such as lenient-mode clamps.
type Context struct {
	Ctx          context.Context
	Customer     *customer.Customer
	Store        *store.Store
	Strict       bool
	Availability AvailabilityProvider

	// Reload is optional; when set, every line is refreshed before pricing.
	Reload ItemReloader

	notices []string
}

// NewContext builds a pricing context for one recompute pass.
func NewContext(
	ctx context.Context,
	cust *customer.Customer,
	st *store.Store,
	availability AvailabilityProvider,
) *Context {
	return &Context{
		Ctx:          ctx,
		Customer:     cust,
		Store:        st,
		Availability: availability,
	}
}

// AddNotice records an advisory message for presentation to the customer.
func (p *Context) AddNotice(notice string) {
	p.notices = append(p.notices, notice)
}

// Notices returns the advisory messages collected during the pass.
func (p *Context) Notices() []string {
	return append([]string(nil), p.notices...)
}
