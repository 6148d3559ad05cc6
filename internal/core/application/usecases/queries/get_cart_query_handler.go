package queries

import (
	"context"

	"shop/internal/core/domain/services/pricing"
)

// GetCartQueryHandler reads a customer's cart. A cart whose contents changed
// since the last pricing pass is swept through the store's modifier pipeline
// first and the refreshed totals are persisted, so the response never shows
// stale amounts.
type GetCartQueryHandler struct {
	uowFactory   CartUoWFactory
	pool         *pricing.Pool
	availability pricing.AvailabilityProvider
}

// NewGetCartQueryHandler creates a handler for cart reads.
func NewGetCartQueryHandler(
	uowFactory CartUoWFactory,
	pool *pricing.Pool,
	availability pricing.AvailabilityProvider,
) GetCartQueryHandler {
	return GetCartQueryHandler{
		uowFactory:   uowFactory,
		pool:         pool,
		availability: availability,
	}
}

// Handle executes the cart read.
func (h GetCartQueryHandler) Handle(ctx context.Context, query GetCartQuery) (GetCartQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCartQueryResponse{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return GetCartQueryResponse{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	c, err := uow.CartRepository().GetByCustomer(ctx, query.CustomerID())
	if err != nil {
		return GetCartQueryResponse{}, err
	}

	var notices []string
	if c.IsDirty() {
		cust, err := uow.CustomerRepository().Get(ctx, c.CustomerID())
		if err != nil {
			return GetCartQueryResponse{}, err
		}
		st, err := uow.StoreRepository().Get(ctx, c.StoreID())
		if err != nil {
			return GetCartQueryResponse{}, err
		}
		pipeline, err := h.pool.Get(st)
		if err != nil {
			return GetCartQueryResponse{}, err
		}

		pctx := pricing.NewContext(ctx, cust, st, h.availability)
		if err = pipeline.RecomputeCart(pctx, c); err != nil {
			return GetCartQueryResponse{}, err
		}
		notices = pctx.Notices()

		if err = uow.CartRepository().Update(ctx, c); err != nil {
			return GetCartQueryResponse{}, err
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return GetCartQueryResponse{}, err
	}

	resp := GetCartQueryResponse{
		ID:        c.ID(),
		Items:     make([]GetCartItemResponse, 0, len(c.Items())),
		ExtraRows: c.ExtraRows(),
		Subtotal:  c.Subtotal(),
		Total:     c.Total(),
		Notices:   notices,
	}
	for _, item := range c.Items() {
		resp.Items = append(resp.Items, GetCartItemResponse{
			ID:          item.ID(),
			ProductCode: item.ProductCode(),
			ProductName: item.Product().Name(),
			Quantity:    item.Quantity(),
			IsWatch:     item.IsWatch(),
			UnitPrice:   item.UnitPrice(),
			LineTotal:   item.LineTotal(),
			ExtraRows:   item.ExtraRows(),
		})
	}

	return resp, nil
}
