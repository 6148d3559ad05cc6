package cart

import (
	"errors"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/product"
	"shop/internal/pkg/errs"
)

var (
	// ErrCartIsNotConstructed is returned when a Cart instance was not created
	// through the NewCart factory method.
	ErrCartIsNotConstructed = errors.New("Cart must be created via NewCart constructor")

	// ErrCannotMergeWithSelf is returned when a cart is merged into itself.
	ErrCannotMergeWithSelf = errors.New("a cart cannot be merged with itself")

	// ErrCartStoreMismatch is returned when two carts of different stores are merged.
	ErrCartStoreMismatch = errors.New("carts of different stores cannot be merged")
)

// Cart is the mutable shopping basket of one customer. It exclusively owns its
// lines; subtotal and total are pricing pipeline results, valid only while the
// dirty flag is clear. Each customer has at most one cart.
type Cart struct {
	// id is the unique identifier for the cart
	id kernel.UUID

	// customerID references the owning customer, one cart per customer
	customerID kernel.UUID

	// storeID references the store whose pipeline prices this cart
	storeID kernel.UUID

	// currency all amounts of this cart are expressed in
	currency kernel.Currency

	// shippingAddressText and billingAddressText are the captured checkout
	// addresses; either may be empty until checkout
	shippingAddressText string
	billingAddressText  string

	// items are the owned cart lines, watch-list lines included
	items []*Item

	// extraRows are cart-level adjustments from the last pricing pass
	extraRows ExtraRows

	// subtotal and total are results of the last pricing pass
	subtotal kernel.Money
	total    kernel.Money

	// dirty marks pricing results as stale
	dirty bool

	// cachedActive is the active line snapshot taken by the last pricing pass
	cachedActive []*Item

	// isConstructed ensures the cart was created via NewCart
	isConstructed bool
}

// NewCart creates an empty cart for the given customer and store. A fresh cart is
// dirty: no pricing pass has run yet.
func NewCart(id, customerID, storeID kernel.UUID, currency kernel.Currency) (*Cart, error) {
	c := &Cart{
		dirty:         true,
		isConstructed: true,
	}

	if err := errors.Join(
		c.setID(id),
		c.setCustomerID(customerID),
		c.setStoreID(storeID),
		c.setCurrency(currency),
	); err != nil {
		return nil, err
	}

	c.subtotal = kernel.ZeroMoney(currency)
	c.total = kernel.ZeroMoney(currency)
	return c, nil
}

// RestoreCart reconstructs a cart aggregate from persistent storage, adopting
// the restored lines as its own.
func RestoreCart(
	id, customerID, storeID kernel.UUID,
	currency kernel.Currency,
	shippingAddressText string,
	billingAddressText string,
	items []*Item,
	extraRows []ExtraRow,
	subtotal kernel.Money,
	total kernel.Money,
	dirty bool,
) (*Cart, error) {
	c := &Cart{
		shippingAddressText: shippingAddressText,
		billingAddressText:  billingAddressText,
		items:               append([]*Item(nil), items...),
		extraRows:           restoreExtraRows(extraRows),
		subtotal:            subtotal,
		total:               total,
		dirty:               dirty,
		isConstructed:       true,
	}

	if err := errors.Join(
		c.setID(id),
		c.setCustomerID(customerID),
		c.setStoreID(storeID),
		c.setCurrency(currency),
	); err != nil {
		return nil, err
	}

	for _, item := range c.items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
		item.owner = c
	}

	return c, nil
}

// Validate ensures the Cart instance was properly constructed through NewCart.
func (c *Cart) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCartIsNotConstructed
	}

	return nil
}

// IsEqual compares two carts by their unique identifiers.
func (c *Cart) IsEqual(other *Cart) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the cart's unique identifier.
func (c *Cart) ID() kernel.UUID {
	return c.id
}

// CustomerID returns the identifier of the owning customer.
func (c *Cart) CustomerID() kernel.UUID {
	return c.customerID
}

// StoreID returns the identifier of the pricing store.
func (c *Cart) StoreID() kernel.UUID {
	return c.storeID
}

// Currency returns the currency all amounts of this cart are expressed in.
func (c *Cart) Currency() kernel.Currency {
	return c.currency
}

// GetOrCreateItem returns the cart line for the given product and discriminator
// set, creating one when none exists. Adding a positive quantity to an existing
// purchasing line increments that line instead of creating a second row. A
// quantity of zero is a watch-list add: it never merges with a purchasing line,
// and repeating it returns the existing watch line untouched.
func (c *Cart) GetOrCreateItem(p *product.Product, quantity int, extra map[string]string) (*Item, bool, error) {
	if err := p.Validate(); err != nil {
		return nil, false, err
	}
	if quantity < 0 {
		return nil, false, errs.NewValueIsOutOfRangeError("quantity", quantity, 0, "unbounded")
	}

	for _, item := range c.items {
		if !item.matches(p, extra) || item.IsWatch() != (quantity == 0) {
			continue
		}
		if quantity > 0 {
			if err := item.SetQuantity(item.Quantity() + quantity); err != nil {
				return nil, false, err
			}
		}
		return item, false, nil
	}

	item, err := newItem(c, p, quantity, extra)
	if err != nil {
		return nil, false, err
	}

	c.items = append(c.items, item)
	c.markDirty()
	return item, true, nil
}

// RemoveItem deletes the cart line with the given identifier.
func (c *Cart) RemoveItem(itemID kernel.UUID) error {
	for idx, item := range c.items {
		if item.ID().IsEqual(itemID) {
			c.items = append(c.items[:idx], c.items[idx+1:]...)
			c.markDirty()
			return nil
		}
	}

	return errs.NewObjectNotFoundError("itemID", itemID)
}

// Merge absorbs the lines of another cart: lines matching an own line (same
// product, discriminator set and watch status) are folded into it, the rest are
// adopted. The other cart ends up empty. Merging a cart with itself is an error,
// as is merging across stores.
func (c *Cart) Merge(other *Cart) error {
	if err := other.Validate(); err != nil {
		return err
	}
	if c.IsEqual(other) {
		return ErrCannotMergeWithSelf
	}
	if !c.storeID.IsEqual(other.storeID) {
		return ErrCartStoreMismatch
	}

	for _, item := range other.items {
		if _, _, err := c.GetOrCreateItem(item.Product(), item.Quantity(), item.Extra()); err != nil {
			return err
		}
	}

	other.items = nil
	other.markDirty()
	c.markDirty()
	return nil
}

// IsEmpty reports whether the cart holds no purchasing lines. Watch-list lines
// do not count.
func (c *Cart) IsEmpty() bool {
	for _, item := range c.items {
		if !item.IsWatch() {
			return false
		}
	}
	return true
}

// Items returns all cart lines, watch-list lines included.
func (c *Cart) Items() []*Item {
	return append([]*Item(nil), c.items...)
}

// ActiveItems returns the purchasing lines. While the cart is clean the snapshot
// cached by the last pricing pass is served; otherwise the set is resolved fresh.
func (c *Cart) ActiveItems() []*Item {
	if !c.dirty && c.cachedActive != nil {
		return append([]*Item(nil), c.cachedActive...)
	}

	var active []*Item
	for _, item := range c.items {
		if !item.IsWatch() {
			active = append(active, item)
		}
	}
	return active
}

// WatchItems returns the watch-list lines.
func (c *Cart) WatchItems() []*Item {
	var watched []*Item
	for _, item := range c.items {
		if item.IsWatch() {
			watched = append(watched, item)
		}
	}
	return watched
}

// ShippingAddressText returns the captured delivery address block.
func (c *Cart) ShippingAddressText() string {
	return c.shippingAddressText
}

// BillingAddressText returns the captured invoice address block.
func (c *Cart) BillingAddressText() string {
	return c.billingAddressText
}

// SetShippingAddressText captures the delivery address block.
func (c *Cart) SetShippingAddressText(text string) {
	c.shippingAddressText = text
}

// SetBillingAddressText captures the invoice address block.
func (c *Cart) SetBillingAddressText(text string) {
	c.billingAddressText = text
}

// IsDirty reports whether the pricing results are stale.
func (c *Cart) IsDirty() bool {
	return c.dirty
}

// MarkDirty invalidates the pricing results, forcing the next read to recompute.
func (c *Cart) MarkDirty() {
	c.markDirty()
}

// Subtotal returns the sum of all line totals from the last pricing pass.
func (c *Cart) Subtotal() kernel.Money {
	return c.subtotal
}

// Total returns the final amount from the last pricing pass.
func (c *Cart) Total() kernel.Money {
	return c.total
}

// ExtraRows returns the cart-level adjustments of the last pricing pass.
func (c *Cart) ExtraRows() []ExtraRow {
	return c.extraRows.Rows()
}

// ResetForRecompute clears extra rows and zeroes the subtotal at the start of a
// pricing pass. Intended for the pricing pipeline.
func (c *Cart) ResetForRecompute() {
	c.extraRows.Reset()
	c.subtotal = kernel.ZeroMoney(c.currency)
	c.total = kernel.ZeroMoney(c.currency)
}

// SetSubtotal stores a pricing pass result. Intended for cart modifiers.
func (c *Cart) SetSubtotal(subtotal kernel.Money) {
	c.subtotal = subtotal
}

// SetTotal stores a pricing pass result. Intended for cart modifiers.
func (c *Cart) SetTotal(total kernel.Money) {
	c.total = total
}

// PutExtraRow records a cart-level adjustment of the running pricing pass.
func (c *Cart) PutExtraRow(modifierID, label string, amount kernel.Money) {
	c.extraRows.Put(modifierID, label, amount)
}

// FinishRecompute caches the processed active line snapshot and marks the cart
// and every line clean. Intended for the pricing pipeline.
func (c *Cart) FinishRecompute(active []*Item) {
	c.cachedActive = append([]*Item(nil), active...)
	for _, item := range c.items {
		item.markClean()
	}
	c.dirty = false
}

func (c *Cart) markDirty() {
	c.dirty = true
	c.cachedActive = nil
}

func (c *Cart) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Cart) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.customerID = id
	return nil
}

func (c *Cart) setStoreID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.storeID = id
	return nil
}

func (c *Cart) setCurrency(currency kernel.Currency) error {
	if err := currency.Validate(); err != nil {
		return err
	}
	c.currency = currency
	return nil
}
