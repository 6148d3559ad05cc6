package product

import (
	"errors"
	"fmt"
	"time"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"
)

var (
	// ErrProductIsNotConstructed is returned when a Product instance was not created
	// through the NewProduct factory method.
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")

	// ErrProductNotAvailable is the sentinel wrapped by ProductNotAvailableError.
	ErrProductNotAvailable = errors.New("product not available in requested quantity")
)

// ProductNotAvailableError reports a stock shortage: the requested quantity exceeds
// what is currently available for sale.
type ProductNotAvailableError struct {
	ProductCode string
	Requested   int
	Available   int
}

func NewProductNotAvailableError(productCode string, requested, available int) *ProductNotAvailableError {
	return &ProductNotAvailableError{ProductCode: productCode, Requested: requested, Available: available}
}

func (e *ProductNotAvailableError) Error() string {
	return fmt.Sprintf("product '%s' not available: requested %d, available %d",
		e.ProductCode, e.Requested, e.Available)
}

func (e *ProductNotAvailableError) Unwrap() error {
	return ErrProductNotAvailable
}

// Availability describes how many units of a product can be sold and in which period.
// Quantity is what remains sellable right now; SellShort marks products that may be
// sold before their stock arrived, LimitedOffer marks offers bounded by Latest.
type Availability struct {
	Quantity     int
	Earliest     time.Time
	Latest       time.Time
	SellShort    bool
	LimitedOffer bool
}

// IsAvailable reports whether any quantity can currently be sold.
func (a Availability) IsAvailable() bool {
	return a.Quantity > 0
}

// Product represents one sellable article of a store's catalog. It carries the
// commercial attributes the cart needs: a stable product code, the current unit price
// and the stock on hand.
//
// Product follows these invariants:
//   - Must have a valid unique identifier and store reference
//   - Must have a non-empty name and product code
//   - Stock quantity is never negative
//   - Can only be created through NewProduct constructor
type Product struct {
	// id is the unique identifier for the product
	id kernel.UUID

	// storeID references the store whose catalog this product belongs to
	storeID kernel.UUID

	// name is the customer-facing product name
	name string

	// code is the stable article code printed on order items
	code string

	// unitPrice is the current price of one unit
	unitPrice kernel.Money

	// stockQuantity is the number of units on hand
	stockQuantity int

	// active marks whether the product is currently offered for sale
	active bool

	// isConstructed ensures the product was created via NewProduct
	isConstructed bool
}

// NewProduct creates a new Product instance with validation. This is the only way to
// create a valid Product.
func NewProduct(
	id kernel.UUID,
	storeID kernel.UUID,
	name string,
	code string,
	unitPrice kernel.Money,
	stockQuantity int,
) (*Product, error) {
	p := &Product{
		active:        true,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setStoreID(storeID),
		p.setName(name),
		p.setCode(code),
		p.setUnitPrice(unitPrice),
		p.setStockQuantity(stockQuantity),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreProduct reconstructs a Product aggregate from persistent storage,
// including its active flag.
func RestoreProduct(
	id kernel.UUID,
	storeID kernel.UUID,
	name string,
	code string,
	unitPrice kernel.Money,
	stockQuantity int,
	active bool,
) (*Product, error) {
	p := &Product{
		active:        active,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setStoreID(storeID),
		p.setName(name),
		p.setCode(code),
		p.setUnitPrice(unitPrice),
		p.setStockQuantity(stockQuantity),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate ensures the Product instance was properly constructed through NewProduct.
func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}

	return nil
}

// IsEqual compares two products by their unique identifiers.
func (p *Product) IsEqual(other *Product) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the product's unique identifier.
func (p *Product) ID() kernel.UUID {
	return p.id
}

// StoreID returns the identifier of the owning store.
func (p *Product) StoreID() kernel.UUID {
	return p.storeID
}

// Name returns the customer-facing product name.
func (p *Product) Name() string {
	return p.name
}

// Code returns the stable article code.
func (p *Product) Code() string {
	return p.code
}

// StockQuantity returns the number of units on hand.
func (p *Product) StockQuantity() int {
	return p.stockQuantity
}

// IsActive reports whether the product is currently offered for sale.
func (p *Product) IsActive() bool {
	return p.active
}

// Deactivate withdraws the product from sale. Existing cart lines referencing it
// clamp to zero on the next recompute.
func (p *Product) Deactivate() {
	p.active = false
}

// GetPrice returns the current price of one unit.
func (p *Product) GetPrice() kernel.Money {
	return p.unitPrice
}

// SetPrice updates the unit price. Cart lines keep their stale price until the next
// recompute marks them dirty.
func (p *Product) SetPrice(price kernel.Money) error {
	return p.setUnitPrice(price)
}

// GetAvailability reports how many units can currently be sold. An inactive product
// is never available. The window is open-ended for regular stock items.
func (p *Product) GetAvailability(now time.Time) Availability {
	if !p.active {
		return Availability{Earliest: now, Latest: now}
	}

	return Availability{
		Quantity: p.stockQuantity,
		Earliest: now,
		Latest:   maxTime,
	}
}

// DeductFromStock removes quantity units from stock. It fails with a
// ProductNotAvailableError when fewer units are on hand than requested; stock is
// never driven negative.
func (p *Product) DeductFromStock(quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is negative", quantity))
	}
	if quantity > p.stockQuantity {
		return NewProductNotAvailableError(p.code, quantity, p.stockQuantity)
	}

	p.stockQuantity -= quantity
	return nil
}

// Replenish adds quantity units to stock.
func (p *Product) Replenish(quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is negative", quantity))
	}

	p.stockQuantity += quantity
	return nil
}

// maxTime is the open upper bound of an availability window.
var maxTime = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setStoreID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.storeID = id
	return nil
}

func (p *Product) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

func (p *Product) setCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}
	p.code = code
	return nil
}

func (p *Product) setUnitPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	p.unitPrice = price
	return nil
}

func (p *Product) setStockQuantity(quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsOutOfRangeError("stockQuantity", quantity, 0, "unbounded")
	}
	p.stockQuantity = quantity
	return nil
}
