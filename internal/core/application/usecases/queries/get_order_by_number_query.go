package queries

import (
	"errors"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
	"shop/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderByNumberQueryIsNotConstructed = errors.New(
	"GetOrderByNumberQuery must be created via NewGetOrderByNumberQuery constructor",
)

// GetOrderByNumberQuery retrieves an order by its printable number, the form
// customers quote in support requests.
//
// Example:
//
//	query, err := queries.NewGetOrderByNumberQuery("2026-00042")
//	if err != nil {
//	    return err
//	}
//
//	handler := queries.NewGetOrderByNumberQueryHandler(db)
//	resp, err := handler.Handle(ctx, query)
type GetOrderByNumberQuery struct {
	number int

	guard guard.ConstructorGuard
}

// NewGetOrderByNumberQuery creates a query from a printable order number such
// as "2026-00042".
func NewGetOrderByNumberQuery(formatted string) (GetOrderByNumberQuery, error) {
	number, err := order.ResolveNumber(formatted)
	if err != nil {
		return GetOrderByNumberQuery{}, err
	}

	return GetOrderByNumberQuery{
		number: number,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderByNumberQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderByNumberQueryIsNotConstructed)
}

// Number returns the resolved database form of the order number.
func (q GetOrderByNumberQuery) Number() int {
	return q.number
}

// GetOrderByNumberQueryResponse represents the order as shown on a status
// page: amounts are reported as decimal strings ready for display.
type GetOrderByNumberQueryResponse struct {
	ID         kernel.UUID
	Number     string
	Status     string
	StatusName string
	Currency   string
	Subtotal   decimal.Decimal
	Total      decimal.Decimal
	AmountPaid decimal.Decimal
}
