package queries

import (
	"errors"

	"shop/internal/core/domain/model/cart"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/guard"
)

var ErrGetCartQueryIsNotConstructed = errors.New(
	"GetCartQuery must be created via NewGetCartQuery constructor",
)

// GetCartQuery retrieves a customer's cart with up to date totals.
type GetCartQuery struct {
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCartQuery creates a query for the given customer's cart.
func NewGetCartQuery(customerID kernel.UUID) (GetCartQuery, error) {
	if err := customerID.Validate(); err != nil {
		return GetCartQuery{}, err
	}

	return GetCartQuery{
		customerID: customerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCartQuery) Validate() error {
	return q.guard.Validate(ErrGetCartQueryIsNotConstructed)
}

// CustomerID returns the cart owner's identifier.
func (q GetCartQuery) CustomerID() kernel.UUID {
	return q.customerID
}

// GetCartItemResponse describes one cart line with its priced amounts.
type GetCartItemResponse struct {
	ID          kernel.UUID
	ProductCode string
	ProductName string
	Quantity    int
	IsWatch     bool
	UnitPrice   kernel.Money
	LineTotal   kernel.Money
	ExtraRows   []cart.ExtraRow
}

// GetCartQueryResponse carries the priced cart: its lines, the cart level
// extra rows and the totals, plus any advisory notices the pricing sweep
// produced (quantity clamps and the like).
type GetCartQueryResponse struct {
	ID        kernel.UUID
	Items     []GetCartItemResponse
	ExtraRows []cart.ExtraRow
	Subtotal  kernel.Money
	Total     kernel.Money
	Notices   []string
}
