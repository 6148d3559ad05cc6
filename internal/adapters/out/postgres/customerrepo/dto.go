// Package customerrepo provides data transfer objects and mapping functions
// for customer persistence, including the customer number sequence.
package customerrepo

import (
	"shop/internal/core/domain/model/customer"
	"shop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CustomerDTO represents the database structure for persisting customer
// aggregates. The number column is unique and stays NULL until the first
// checkout assigns one.
type CustomerDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	StoreID     uuid.UUID  `gorm:"type:uuid;index"`
	Recognition string     `gorm:"type:varchar(16);not null"`
	Email       string     `gorm:"index"`
	Number      *int       `gorm:"uniqueIndex"`
	Shipping    AddressDTO `gorm:"embedded;embeddedPrefix:shipping_"`
	Billing     AddressDTO `gorm:"embedded;embeddedPrefix:billing_"`
}

// TableName specifies the database table name for customer entities.
func (CustomerDTO) TableName() string {
	return "customers"
}

// AddressDTO represents an embedded postal address.
type AddressDTO struct {
	Name    string
	Street  string
	ZipCode string
	City    string
	Country string
}

// CustomerSequenceDTO is the singleton counter row backing customer number
// assignment.
type CustomerSequenceDTO struct {
	ID        int `gorm:"primaryKey"`
	LastValue int `gorm:"not null"`
}

// TableName specifies the database table name for the customer number counter.
func (CustomerSequenceDTO) TableName() string {
	return "customer_sequences"
}

func addressFromDomain(a customer.Address) AddressDTO {
	return AddressDTO{
		Name:    a.Name,
		Street:  a.Street,
		ZipCode: a.ZipCode,
		City:    a.City,
		Country: a.Country,
	}
}

func addressToDomain(dto AddressDTO) customer.Address {
	return customer.Address{
		Name:    dto.Name,
		Street:  dto.Street,
		ZipCode: dto.ZipCode,
		City:    dto.City,
		Country: dto.Country,
	}
}

func fromDomain(c *customer.Customer) CustomerDTO {
	var number *int
	if n, ok := c.Number(); ok {
		number = &n
	}

	return CustomerDTO{
		ID:          c.ID().Bytes(),
		StoreID:     c.StoreID().Bytes(),
		Recognition: string(c.Recognition()),
		Email:       c.Email(),
		Number:      number,
		Shipping:    addressFromDomain(c.ShippingAddress()),
		Billing:     addressFromDomain(c.BillingAddress()),
	}
}

func toDomain(dto CustomerDTO) (*customer.Customer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	storeID, err := kernel.UUIDFromBytes(dto.StoreID[:])
	if err != nil {
		return nil, err
	}

	return customer.RestoreCustomer(id, storeID,
		customer.Recognition(dto.Recognition), dto.Email, dto.Number,
		addressToDomain(dto.Shipping), addressToDomain(dto.Billing))
}
