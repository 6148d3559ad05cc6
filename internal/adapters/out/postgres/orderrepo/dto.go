// Package orderrepo provides data transfer objects and mapping functions for
// order persistence, including the year-scoped order number sequence.
package orderrepo

import (
	"time"

	"shop/internal/core/domain/model/cart"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
	"shop/internal/pkg/fsm"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Amounts are stored in the order's currency; items and payments live in
// their own tables.
type OrderDTO struct {
	ID                  uuid.UUID         `gorm:"type:uuid;primaryKey"`
	CustomerID          uuid.UUID         `gorm:"type:uuid;index"`
	StoreID             uuid.UUID         `gorm:"type:uuid;index"`
	Number              int               `gorm:"uniqueIndex;not null"`
	Status              string            `gorm:"type:varchar(32);index;not null"`
	Currency            string            `gorm:"type:varchar(3);not null"`
	Subtotal            decimal.Decimal   `gorm:"type:numeric(12,2);not null"`
	Total               decimal.Decimal   `gorm:"type:numeric(12,2);not null"`
	Secret              string            `gorm:"type:varchar(64);not null"`
	ShippingAddressText string            `gorm:"type:text"`
	BillingAddressText  string            `gorm:"type:text"`
	ExtraRows           []ExtraRowDTO     `gorm:"serializer:json"`
	ExtraAddenda        map[string]string `gorm:"serializer:json"`
	Items               []OrderItemDTO    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Payments            []PaymentDTO      `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one frozen order line. Unlike cart lines it carries no
// product reference: the name, code and prices were copied at conversion time
// and stay as they were.
type OrderItemDTO struct {
	ID          int64           `gorm:"primaryKey;autoIncrement"`
	OrderID     uuid.UUID       `gorm:"type:uuid;index"`
	ProductName string          `gorm:"not null"`
	ProductCode string          `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,3);not null"`
	LineTotal   decimal.Decimal `gorm:"type:numeric(12,3);not null"`
	Quantity    int             `gorm:"not null"`
}

// TableName specifies the database table name for order line entities.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// PaymentDTO is one payment recorded against an order.
type PaymentDTO struct {
	ID            int64           `gorm:"primaryKey;autoIncrement"`
	OrderID       uuid.UUID       `gorm:"type:uuid;index"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TransactionID string          `gorm:"not null"`
	Method        string          `gorm:"not null"`
	ReceivedAt    time.Time       `gorm:"not null"`
}

// TableName specifies the database table name for order payment entities.
func (PaymentDTO) TableName() string {
	return "order_payments"
}

// ExtraRowDTO is the persisted form of one price adjustment row snapshot.
type ExtraRowDTO struct {
	ModifierID string          `json:"modifier_id"`
	Label      string          `json:"label"`
	Amount     decimal.Decimal `json:"amount"`
}

// OrderSequenceDTO is one counter row per calendar year backing order number
// assignment.
type OrderSequenceDTO struct {
	Year      int `gorm:"primaryKey"`
	LastValue int `gorm:"not null"`
}

// TableName specifies the database table name for the order number counters.
func (OrderSequenceDTO) TableName() string {
	return "order_sequences"
}

func fromDomain(o *order.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, OrderItemDTO{
			OrderID:     o.ID().Bytes(),
			ProductName: item.ProductName(),
			ProductCode: item.ProductCode(),
			UnitPrice:   item.UnitPrice().Amount(),
			LineTotal:   item.LineTotal().Amount(),
			Quantity:    item.Quantity(),
		})
	}

	payments := make([]PaymentDTO, 0, len(o.Payments()))
	for _, p := range o.Payments() {
		payments = append(payments, PaymentDTO{
			OrderID:       o.ID().Bytes(),
			Amount:        p.Amount.Amount(),
			TransactionID: p.TransactionID,
			Method:        p.Method,
			ReceivedAt:    p.ReceivedAt,
		})
	}

	extra := o.Extra()
	rows := make([]ExtraRowDTO, 0, len(extra.Rows))
	for _, row := range extra.Rows {
		rows = append(rows, ExtraRowDTO{
			ModifierID: row.ModifierID,
			Label:      row.Label,
			Amount:     row.Amount.Amount(),
		})
	}

	return OrderDTO{
		ID:                  o.ID().Bytes(),
		CustomerID:          o.CustomerID().Bytes(),
		StoreID:             o.StoreID().Bytes(),
		Number:              o.Number(),
		Status:              string(o.Status()),
		Currency:            string(o.Currency()),
		Subtotal:            o.Subtotal().Amount(),
		Total:               o.Total().Amount(),
		Secret:              o.Secret(),
		ShippingAddressText: o.ShippingAddressText(),
		BillingAddressText:  o.BillingAddressText(),
		ExtraRows:           rows,
		ExtraAddenda:        extra.Addenda,
		Items:               items,
		Payments:            payments,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	storeID, err := kernel.UUIDFromBytes(dto.StoreID[:])
	if err != nil {
		return nil, err
	}

	currency := kernel.Currency(dto.Currency)
	subtotal, err := kernel.NewMoney(dto.Subtotal, currency)
	if err != nil {
		return nil, err
	}
	total, err := kernel.NewMoney(dto.Total, currency)
	if err != nil {
		return nil, err
	}

	items := make([]*order.OrderItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		unitPrice, itemErr := kernel.NewMoney(itemDTO.UnitPrice, currency)
		if itemErr != nil {
			return nil, itemErr
		}
		lineTotal, itemErr := kernel.NewMoney(itemDTO.LineTotal, currency)
		if itemErr != nil {
			return nil, itemErr
		}
		item, itemErr := order.NewOrderItem(itemDTO.ProductName, itemDTO.ProductCode,
			unitPrice, lineTotal, itemDTO.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	payments := make([]order.Payment, 0, len(dto.Payments))
	for _, paymentDTO := range dto.Payments {
		amount, paymentErr := kernel.NewMoney(paymentDTO.Amount, currency)
		if paymentErr != nil {
			return nil, paymentErr
		}
		payments = append(payments, order.Payment{
			Amount:        amount,
			TransactionID: paymentDTO.TransactionID,
			Method:        paymentDTO.Method,
			ReceivedAt:    paymentDTO.ReceivedAt,
		})
	}

	rows := make([]cart.ExtraRow, 0, len(dto.ExtraRows))
	for _, rowDTO := range dto.ExtraRows {
		amount, rowErr := kernel.NewMoney(rowDTO.Amount, currency)
		if rowErr != nil {
			return nil, rowErr
		}
		rows = append(rows, cart.ExtraRow{
			ModifierID: rowDTO.ModifierID,
			Label:      rowDTO.Label,
			Amount:     amount,
		})
	}

	return order.RestoreOrder(id, customerID, storeID, currency,
		dto.Number, fsm.State(dto.Status), subtotal, total,
		items, payments, dto.Secret,
		dto.ShippingAddressText, dto.BillingAddressText,
		order.Extra{Rows: rows, Addenda: dto.ExtraAddenda})
}
