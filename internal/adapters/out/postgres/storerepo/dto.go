// Package storerepo provides data transfer objects and mapping functions for
// store persistence.
package storerepo

import (
	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/store"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StoreDTO represents the database structure for persisting store aggregates.
type StoreDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name          string          `gorm:"not null"`
	Email         string          `gorm:"not null"`
	Currency      string          `gorm:"type:varchar(3);not null"`
	TaxRate       decimal.Decimal `gorm:"type:numeric(6,3);not null"`
	ModifierNames []string        `gorm:"serializer:json"`
}

// TableName specifies the database table name for store entities.
func (StoreDTO) TableName() string {
	return "stores"
}

func fromDomain(s *store.Store) StoreDTO {
	return StoreDTO{
		ID:            s.ID().Bytes(),
		Name:          s.Name(),
		Email:         s.Email(),
		Currency:      string(s.Currency()),
		TaxRate:       s.TaxRate(),
		ModifierNames: s.ModifierNames(),
	}
}

func toDomain(dto StoreDTO) (*store.Store, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return store.RestoreStore(id, dto.Name, dto.Email,
		kernel.Currency(dto.Currency), dto.TaxRate, dto.ModifierNames)
}
