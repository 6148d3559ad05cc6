package queries

import (
	"context"
	"database/sql"
	"errors"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
	"shop/internal/pkg/errs"
	"shop/internal/pkg/fsm"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderByNumberQueryHandler retrieves order status information from the
// database without loading the full aggregate.
type GetOrderByNumberQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderByNumberQueryHandler creates a handler for order number lookups.
// Requires a GORM database connection for query execution.
func NewGetOrderByNumberQueryHandler(db *gorm.DB) GetOrderByNumberQueryHandler {
	return GetOrderByNumberQueryHandler{db: db}
}

// Handle executes the order lookup. The paid amount is summed over the
// recorded payments in the same statement.
func (h GetOrderByNumberQueryHandler) Handle(
	ctx context.Context,
	query GetOrderByNumberQuery,
) (GetOrderByNumberQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderByNumberQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.number,
			o.status,
			o.currency,
			o.subtotal,
			o.total,
			COALESCE(SUM(p.amount), 0) AS amount_paid
		FROM orders o
		LEFT JOIN order_payments p ON p.order_id = o.id
		WHERE o.number = ?
		GROUP BY o.id, o.number, o.status, o.currency, o.subtotal, o.total
	`, query.Number()).Row()

	var (
		id         uuid.UUID
		number     int
		status     string
		currency   string
		subtotal   decimal.Decimal
		total      decimal.Decimal
		amountPaid decimal.Decimal
	)
	err := row.Scan(&id, &number, &status, &currency, &subtotal, &total, &amountPaid)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderByNumberQueryResponse{}, errs.NewObjectNotFoundError("order", query.Number())
	}
	if err != nil {
		return GetOrderByNumberQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderByNumberQueryResponse{}, err
	}

	return GetOrderByNumberQueryResponse{
		ID:         orderID,
		Number:     order.FormatNumber(number),
		Status:     status,
		StatusName: order.StatusMachine.TargetName(fsm.State(status)),
		Currency:   currency,
		Subtotal:   subtotal,
		Total:      total,
		AmountPaid: amountPaid,
	}, nil
}
