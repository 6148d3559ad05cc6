// Package cartrepo provides data transfer objects and mapping functions for
// cart persistence. Cart lines are stored in their own table and carry the
// referenced product row along when loaded, so a restored cart can be priced
// without further lookups.
package cartrepo

import (
	"time"

	"shop/internal/adapters/out/postgres/productrepo"
	"shop/internal/core/domain/model/cart"
	"shop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartDTO represents the database structure for persisting cart aggregates.
// UpdatedAt feeds the stale cart purge.
type CartDTO struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID          uuid.UUID       `gorm:"type:uuid;uniqueIndex"`
	StoreID             uuid.UUID       `gorm:"type:uuid;index"`
	Currency            string          `gorm:"type:varchar(3);not null"`
	ShippingAddressText string          `gorm:"type:text"`
	BillingAddressText  string          `gorm:"type:text"`
	Subtotal            decimal.Decimal `gorm:"type:numeric(12,3);not null"`
	Total               decimal.Decimal `gorm:"type:numeric(12,3);not null"`
	Dirty               bool            `gorm:"not null"`
	ExtraRows           []ExtraRowDTO   `gorm:"serializer:json"`
	Items               []CartItemDTO   `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt           time.Time
	UpdatedAt           time.Time `gorm:"index"`
}

// TableName specifies the database table name for cart entities.
func (CartDTO) TableName() string {
	return "carts"
}

// CartItemDTO represents one cart line. A zero quantity marks a watch-list
// line.
type CartItemDTO struct {
	ID        uuid.UUID              `gorm:"type:uuid;primaryKey"`
	CartID    uuid.UUID              `gorm:"type:uuid;index"`
	ProductID uuid.UUID              `gorm:"type:uuid;index"`
	Product   productrepo.ProductDTO `gorm:"foreignKey:ProductID"`
	Quantity  int                    `gorm:"not null"`
	Extra     map[string]string      `gorm:"serializer:json"`
	UnitPrice decimal.Decimal        `gorm:"type:numeric(12,3);not null"`
	LineTotal decimal.Decimal        `gorm:"type:numeric(12,3);not null"`
	Dirty     bool                   `gorm:"not null"`
	ExtraRows []ExtraRowDTO          `gorm:"serializer:json"`
}

// TableName specifies the database table name for cart line entities.
func (CartItemDTO) TableName() string {
	return "cart_items"
}

// ExtraRowDTO is the persisted form of one price adjustment row.
type ExtraRowDTO struct {
	ModifierID string          `json:"modifier_id"`
	Label      string          `json:"label"`
	Amount     decimal.Decimal `json:"amount"`
}

func extraRowsFromDomain(rows []cart.ExtraRow) []ExtraRowDTO {
	dtos := make([]ExtraRowDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, ExtraRowDTO{
			ModifierID: row.ModifierID,
			Label:      row.Label,
			Amount:     row.Amount.Amount(),
		})
	}
	return dtos
}

func extraRowsToDomain(dtos []ExtraRowDTO, currency kernel.Currency) ([]cart.ExtraRow, error) {
	rows := make([]cart.ExtraRow, 0, len(dtos))
	for _, dto := range dtos {
		amount, err := kernel.NewMoney(dto.Amount, currency)
		if err != nil {
			return nil, err
		}
		rows = append(rows, cart.ExtraRow{
			ModifierID: dto.ModifierID,
			Label:      dto.Label,
			Amount:     amount,
		})
	}
	return rows, nil
}

func fromDomain(c *cart.Cart) CartDTO {
	items := make([]CartItemDTO, 0, len(c.Items()))
	for _, item := range c.Items() {
		items = append(items, CartItemDTO{
			ID:        item.ID().Bytes(),
			CartID:    c.ID().Bytes(),
			ProductID: item.Product().ID().Bytes(),
			Quantity:  item.Quantity(),
			Extra:     item.Extra(),
			UnitPrice: item.UnitPrice().Amount(),
			LineTotal: item.LineTotal().Amount(),
			Dirty:     item.IsDirty(),
			ExtraRows: extraRowsFromDomain(item.ExtraRows()),
		})
	}

	return CartDTO{
		ID:                  c.ID().Bytes(),
		CustomerID:          c.CustomerID().Bytes(),
		StoreID:             c.StoreID().Bytes(),
		Currency:            string(c.Currency()),
		ShippingAddressText: c.ShippingAddressText(),
		BillingAddressText:  c.BillingAddressText(),
		Subtotal:            c.Subtotal().Amount(),
		Total:               c.Total().Amount(),
		Dirty:               c.IsDirty(),
		ExtraRows:           extraRowsFromDomain(c.ExtraRows()),
		Items:               items,
	}
}

func toDomain(dto CartDTO) (*cart.Cart, error) {
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
	items := make([]*cart.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO, currency)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	extraRows, err := extraRowsToDomain(dto.ExtraRows, currency)
	if err != nil {
		return nil, err
	}
	subtotal, err := kernel.NewMoney(dto.Subtotal, currency)
	if err != nil {
		return nil, err
	}
	total, err := kernel.NewMoney(dto.Total, currency)
	if err != nil {
		return nil, err
	}

	return cart.RestoreCart(id, customerID, storeID, currency,
		dto.ShippingAddressText, dto.BillingAddressText,
		items, extraRows, subtotal, total, dto.Dirty)
}

func itemToDomain(dto CartItemDTO, currency kernel.Currency) (*cart.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	p, err := productrepo.ToDomain(dto.Product)
	if err != nil {
		return nil, err
	}
	unitPrice, err := kernel.NewMoney(dto.UnitPrice, currency)
	if err != nil {
		return nil, err
	}
	lineTotal, err := kernel.NewMoney(dto.LineTotal, currency)
	if err != nil {
		return nil, err
	}
	extraRows, err := extraRowsToDomain(dto.ExtraRows, currency)
	if err != nil {
		return nil, err
	}

	return cart.RestoreItem(id, p, dto.Quantity, dto.Extra, unitPrice, lineTotal, extraRows, dto.Dirty)
}
