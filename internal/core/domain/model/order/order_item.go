package order

import (
	"errors"
	"fmt"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"
)

var (
	// ErrOrderItemIsNotConstructed is returned when an OrderItem instance was not
	// created through the NewOrderItem factory method.
	ErrOrderItemIsNotConstructed = errors.New("OrderItem must be created via NewOrderItem constructor")
)

// OrderItem is the immutable per-line snapshot frozen from a cart line at
// conversion time. Whatever happens to the product afterwards, the order keeps
// the name, code and prices the customer bought at.
type OrderItem struct {
	productName string
	productCode string
	unitPrice   kernel.Money
	lineTotal   kernel.Money
	quantity    int

	isConstructed bool
}

// NewOrderItem freezes one cart line into an order line.
func NewOrderItem(productName, productCode string, unitPrice, lineTotal kernel.Money, quantity int) (*OrderItem, error) {
	item := &OrderItem{isConstructed: true}

	if err := errors.Join(
		item.setProductName(productName),
		item.setProductCode(productCode),
		item.setUnitPrice(unitPrice),
		item.setLineTotal(lineTotal),
		item.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// Validate ensures the OrderItem was properly constructed through NewOrderItem.
func (i *OrderItem) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrOrderItemIsNotConstructed
	}

	return nil
}

// ProductName returns the product name at conversion time.
func (i *OrderItem) ProductName() string {
	return i.productName
}

// ProductCode returns the article code at conversion time.
func (i *OrderItem) ProductCode() string {
	return i.productCode
}

// UnitPrice returns the per-unit price at conversion time.
func (i *OrderItem) UnitPrice() kernel.Money {
	return i.unitPrice
}

// LineTotal returns the extended line price at conversion time.
func (i *OrderItem) LineTotal() kernel.Money {
	return i.lineTotal
}

// Quantity returns the purchased quantity.
func (i *OrderItem) Quantity() int {
	return i.quantity
}

func (i *OrderItem) setProductName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("productName")
	}
	i.productName = name
	return nil
}

func (i *OrderItem) setProductCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("productCode")
	}
	i.productCode = code
	return nil
}

func (i *OrderItem) setUnitPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	i.unitPrice = price
	return nil
}

func (i *OrderItem) setLineTotal(total kernel.Money) error {
	if err := total.Validate(); err != nil {
		return err
	}
	i.lineTotal = total
	return nil
}

func (i *OrderItem) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}
