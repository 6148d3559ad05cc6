// Package productrepo provides data transfer objects and mapping functions for
// product persistence.
package productrepo

import (
	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/product"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductDTO represents the database structure for persisting product
// aggregates. The store and code pair is unique: article codes are stable
// identifiers inside one catalog.
type ProductDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	StoreID       uuid.UUID       `gorm:"type:uuid;index;uniqueIndex:idx_products_store_code"`
	Name          string          `gorm:"not null"`
	Code          string          `gorm:"not null;uniqueIndex:idx_products_store_code"`
	UnitPrice     decimal.Decimal `gorm:"type:numeric(12,3);not null"`
	Currency      string          `gorm:"type:varchar(3);not null"`
	StockQuantity int             `gorm:"not null"`
	Active        bool            `gorm:"not null;default:true"`
}

// TableName specifies the database table name for product entities.
func (ProductDTO) TableName() string {
	return "products"
}

// FromDomain converts a product domain aggregate to its database
// representation. Exported because the cart repository embeds product rows
// when loading cart lines.
func FromDomain(p *product.Product) ProductDTO {
	return ProductDTO{
		ID:            p.ID().Bytes(),
		StoreID:       p.StoreID().Bytes(),
		Name:          p.Name(),
		Code:          p.Code(),
		UnitPrice:     p.GetPrice().Amount(),
		Currency:      string(p.GetPrice().Currency()),
		StockQuantity: p.StockQuantity(),
		Active:        p.IsActive(),
	}
}

// ToDomain converts a database DTO to a product domain aggregate.
func ToDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	storeID, err := kernel.UUIDFromBytes(dto.StoreID[:])
	if err != nil {
		return nil, err
	}
	price, err := kernel.NewMoney(dto.UnitPrice, kernel.Currency(dto.Currency))
	if err != nil {
		return nil, err
	}

	return product.RestoreProduct(id, storeID, dto.Name, dto.Code, price, dto.StockQuantity, dto.Active)
}
