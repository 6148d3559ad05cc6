package cart

import (
	"errors"
	"fmt"
	"maps"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/product"
	"shop/internal/pkg/errs"
)

var (
	// ErrItemIsNotConstructed is returned when an Item instance was not created
	// through the cart's GetOrCreateItem method.
	ErrItemIsNotConstructed = errors.New("Item must be created via Cart.GetOrCreateItem")
)

// Item is one line of a cart: a product in a requested quantity, possibly
// narrowed by a discriminator set (size, color, engraving text). A quantity of
// zero marks a watch-list line, excluded from totals and from order conversion.
//
// Unit price and line total are pricing pipeline results, valid only while the
// item is clean. Any mutation dirties the item and its owning cart.
type Item struct {
	// id is the unique identifier for the cart line
	id kernel.UUID

	// owner is the cart this line belongs to
	owner *Cart

	// product is the referenced catalog article
	product *product.Product

	// productCode is the article code captured at add time
	productCode string

	// quantity requested; 0 marks a watch-list line
	quantity int

	// extra is the discriminator set distinguishing lines of the same product
	extra map[string]string

	// extraRows are per-line adjustments from the last pricing pass
	extraRows ExtraRows

	// unitPrice is the price of one unit from the last pricing pass
	unitPrice kernel.Money

	// lineTotal is the extended line price from the last pricing pass
	lineTotal kernel.Money

	// dirty marks pricing results as stale
	dirty bool

	// isConstructed ensures the line was created through the owning cart
	isConstructed bool
}

func newItem(owner *Cart, p *product.Product, quantity int, extra map[string]string) (*Item, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if quantity < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is negative", quantity))
	}

	return &Item{
		id:            kernel.NewUUID(),
		owner:         owner,
		product:       p,
		productCode:   p.Code(),
		quantity:      quantity,
		extra:         maps.Clone(extra),
		unitPrice:     kernel.ZeroMoney(owner.currency),
		lineTotal:     kernel.ZeroMoney(owner.currency),
		dirty:         true,
		isConstructed: true,
	}, nil
}

// RestoreItem reconstructs a cart line from persistent storage. The owning
// cart is attached by RestoreCart.
func RestoreItem(
	id kernel.UUID,
	p *product.Product,
	quantity int,
	extra map[string]string,
	unitPrice kernel.Money,
	lineTotal kernel.Money,
	extraRows []ExtraRow,
	dirty bool,
) (*Item, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if quantity < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is negative", quantity))
	}

	return &Item{
		id:            id,
		product:       p,
		productCode:   p.Code(),
		quantity:      quantity,
		extra:         maps.Clone(extra),
		extraRows:     restoreExtraRows(extraRows),
		unitPrice:     unitPrice,
		lineTotal:     lineTotal,
		dirty:         dirty,
		isConstructed: true,
	}, nil
}

// Validate ensures the Item was created through its owning cart.
func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}

	return nil
}

// ID returns the cart line's unique identifier.
func (i *Item) ID() kernel.UUID {
	return i.id
}

// Product returns the referenced catalog article.
func (i *Item) Product() *product.Product {
	return i.product
}

// ProductCode returns the article code captured when the line was added.
func (i *Item) ProductCode() string {
	return i.productCode
}

// Quantity returns the requested quantity.
func (i *Item) Quantity() int {
	return i.quantity
}

// IsWatch reports whether this is a watch-list line.
func (i *Item) IsWatch() bool {
	return i.quantity == 0
}

// Extra returns a copy of the discriminator set.
func (i *Item) Extra() map[string]string {
	return maps.Clone(i.extra)
}

// SetQuantity changes the requested quantity and dirties the line and its cart.
func (i *Item) SetQuantity(quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is negative", quantity))
	}

	i.quantity = quantity
	i.markDirty()
	return nil
}

// UnitPrice returns the per-unit price from the last pricing pass.
func (i *Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// LineTotal returns the extended line price from the last pricing pass.
func (i *Item) LineTotal() kernel.Money {
	return i.lineTotal
}

// IsDirty reports whether the pricing results are stale.
func (i *Item) IsDirty() bool {
	return i.dirty
}

// ExtraRows returns the per-line adjustments of the last pricing pass.
func (i *Item) ExtraRows() []ExtraRow {
	return i.extraRows.Rows()
}

// SetUnitPrice stores a pricing pass result. Intended for cart modifiers; it does
// not dirty the line.
func (i *Item) SetUnitPrice(price kernel.Money) {
	i.unitPrice = price
}

// SetLineTotal stores a pricing pass result. Intended for cart modifiers; it does
// not dirty the line.
func (i *Item) SetLineTotal(total kernel.Money) {
	i.lineTotal = total
}

// PutExtraRow records a per-line adjustment of the running pricing pass.
func (i *Item) PutExtraRow(modifierID, label string, amount kernel.Money) {
	i.extraRows.Put(modifierID, label, amount)
}

// ResetExtraRows drops the adjustments of the previous pricing pass.
func (i *Item) ResetExtraRows() {
	i.extraRows.Reset()
}

// FinishRecompute marks the line clean after it was repriced. Intended for the
// pricing pipeline.
func (i *Item) FinishRecompute() {
	i.markClean()
}

// matches reports whether the line refers to the same product with the same
// discriminator set.
func (i *Item) matches(p *product.Product, extra map[string]string) bool {
	return i.product.IsEqual(p) && maps.Equal(i.extra, extra)
}

func (i *Item) markDirty() {
	i.dirty = true
	if i.owner != nil {
		i.owner.markDirty()
	}
}

func (i *Item) markClean() {
	i.dirty = false
}
