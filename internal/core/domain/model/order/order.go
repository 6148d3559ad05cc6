package order

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"shop/internal/core/domain/model/cart"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/services/pricing"
	"shop/internal/pkg/fsm"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Extra is the free-form payload frozen onto an order at conversion time: the
// extra-row snapshot of the final pricing pass plus ad-hoc addenda.
type Extra struct {
	Rows    []cart.ExtraRow
	Addenda map[string]string
}

// Order is the immutable counterpart of a cart. It is created as an empty shell
// in state new, populated from a cart in one atomic step, and from then on its
// amounts are never recomputed from live prices. The status changes only through
// declared transitions on the shared StatusMachine.
//
// Order follows these invariants:
//   - Must have a valid unique identifier, customer and store reference
//   - The order number is assigned exactly once and never changes
//   - Subtotal and total are decimal-rounded snapshots, frozen at population
//   - Status changes only via declared transitions
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// customerID references the buying customer
	customerID kernel.UUID

	// storeID references the selling store
	storeID kernel.UUID

	// number is the year-scoped order number in stored form
	number int

	// status is the governed lifecycle state
	status fsm.StateField

	// currency all amounts of this order are expressed in
	currency kernel.Currency

	// subtotal and total are rounded snapshots taken at population
	subtotal kernel.Money
	total    kernel.Money

	// items are the frozen order lines
	items []*OrderItem

	// payments are the recorded payments against this order
	payments []Payment

	// secret authorizes anonymous access to the order, e.g. in emails
	secret string

	// shippingAddressText and billingAddressText are frozen at population
	shippingAddressText string
	billingAddressText  string

	// extra is the frozen extra payload
	extra Extra

	// capability is the active behavior variant of the current status
	capability Capability

	// isConstructed ensures the order was created via a factory method
	isConstructed bool
}

// NewOrder creates an empty order shell in state new with zero totals. The
// year-scoped number is drawn by the caller from the order number sequence; the
// access secret is generated here.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	storeID kernel.UUID,
	currency kernel.Currency,
	year int,
	sequence int,
) (*Order, error) {
	number, err := ComposeNumber(year, sequence)
	if err != nil {
		return nil, err
	}

	o := &Order{
		number:        number,
		status:        fsm.NewStateField(StatusNew),
		secret:        newSecret(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setStoreID(storeID),
		o.setCurrency(currency),
	); err != nil {
		return nil, err
	}

	o.subtotal = kernel.ZeroMoney(currency)
	o.total = kernel.ZeroMoney(currency)
	o.applyCapability(StatusNew)
	return o, nil
}

// RestoreOrder reconstructs an Order aggregate from persistent storage. The
// restored order behaves identically to one that went through its transitions
// in this process, including the capability of its current status.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	storeID kernel.UUID,
	currency kernel.Currency,
	number int,
	status fsm.State,
	subtotal kernel.Money,
	total kernel.Money,
	items []*OrderItem,
	payments []Payment,
	secret string,
	shippingAddressText string,
	billingAddressText string,
	extra Extra,
) (*Order, error) {
	o := &Order{
		number:              number,
		status:              fsm.NewStateField(status),
		subtotal:            subtotal,
		total:               total,
		items:               append([]*OrderItem(nil), items...),
		payments:            append([]Payment(nil), payments...),
		secret:              secret,
		shippingAddressText: shippingAddressText,
		billingAddressText:  billingAddressText,
		extra:               extra,
		isConstructed:       true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setStoreID(storeID),
		o.setCurrency(currency),
	); err != nil {
		return nil, err
	}

	o.applyCapability(status)
	return o, nil
}

// Validate ensures the Order was properly constructed through a factory method.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the identifier of the buying customer.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// StoreID returns the identifier of the selling store.
func (o *Order) StoreID() kernel.UUID {
	return o.storeID
}

// Number returns the order number in stored form, e.g. 202600042.
func (o *Order) Number() int {
	return o.number
}

// GetNumber returns the order number in printed form, e.g. "2026-00042".
func (o *Order) GetNumber() string {
	return FormatNumber(o.number)
}

// Status returns the current lifecycle state.
func (o *Order) Status() fsm.State {
	return o.status.State()
}

// StatusName returns the verbose name of the current lifecycle state.
func (o *Order) StatusName() string {
	return StatusMachine.TargetName(o.status.State())
}

// Currency returns the currency all amounts of this order are expressed in.
func (o *Order) Currency() kernel.Currency {
	return o.currency
}

// Subtotal returns the rounded subtotal frozen at population.
func (o *Order) Subtotal() kernel.Money {
	return o.subtotal
}

// Total returns the rounded total frozen at population.
func (o *Order) Total() kernel.Money {
	return o.total
}

// Items returns the frozen order lines.
func (o *Order) Items() []*OrderItem {
	return append([]*OrderItem(nil), o.items...)
}

// Payments returns the recorded payments.
func (o *Order) Payments() []Payment {
	return append([]Payment(nil), o.payments...)
}

// Secret returns the anonymous access secret.
func (o *Order) Secret() string {
	return o.secret
}

// ShippingAddressText returns the delivery address frozen at population.
func (o *Order) ShippingAddressText() string {
	return o.shippingAddressText
}

// BillingAddressText returns the invoice address frozen at population.
func (o *Order) BillingAddressText() string {
	return o.billingAddressText
}

// Extra returns the frozen extra payload.
func (o *Order) Extra() Extra {
	return o.extra
}

// Cancelable reports whether the current status permits cancellation.
func (o *Order) Cancelable() bool {
	return o.capability.CanCancel
}

// AvailableTransitions returns the transition methods the given actor may
// execute from the current status.
func (o *Order) AvailableTransitions(actor fsm.Actor) []string {
	return StatusMachine.AvailableTransitionsFor(o, &o.status, actor)
}

// SwitchVariant installs the capability of a newly assigned status. It is
// called by the status machine, never directly.
func (o *Order) SwitchVariant(_ fsm.State, capability any) {
	o.capability = capability.(Capability)
}

// AddPayment records a payment reported by a provider. The amount must be in
// the order's currency.
func (o *Order) AddPayment(payment Payment) error {
	if err := payment.validate(o.currency); err != nil {
		return err
	}

	o.payments = append(o.payments, payment)
	return nil
}

// AmountPaid returns the sum of all recorded payments.
func (o *Order) AmountPaid() kernel.Money {
	paid := kernel.ZeroMoney(o.currency)
	for _, p := range o.payments {
		sum, err := paid.Add(p.Amount)
		if err != nil {
			// AddPayment enforces the currency; this cannot happen.
			continue
		}
		paid = sum
	}
	return paid
}

// OutstandingAmount returns what remains to be paid. An overpaid order
// reports a negative amount.
func (o *Order) OutstandingAmount() kernel.Money {
	outstanding, err := o.total.Sub(o.AmountPaid())
	if err != nil {
		return kernel.ZeroMoney(o.currency)
	}
	return outstanding
}

// IsFullyPaid reports whether the recorded payments cover the total.
func (o *Order) IsFullyPaid() bool {
	return o.AmountPaid().GreaterOrEqual(o.total)
}

// PopulateFromCart converts the cart into this order through the guarded
// new to created transition. The pass runs strictly: a stock shortage fails the
// conversion instead of clamping.
//
// Watch-list lines are skipped and stay in the cart; every purchasing line has
// its stock deducted, is frozen into an OrderItem and removed from the cart.
// The rounded totals and an extra-row snapshot are frozen last. The surrounding
// unit of work makes the whole conversion atomic; on any failure the order
// stays new with zero items.
func (o *Order) PopulateFromCart(
	ctx context.Context,
	c *cart.Cart,
	pctx *pricing.Context,
	pipeline *pricing.Pipeline,
	actor fsm.Actor,
) error {
	return StatusMachine.Execute(ctx, o, &o.status, MethodPopulateFromCart, actor,
		func(ctx context.Context) (fsm.State, error) {
			if err := c.Validate(); err != nil {
				return fsm.NoState, err
			}

			pctx.Strict = true
			c.MarkDirty()
			if err := pipeline.RecomputeCart(pctx, c); err != nil {
				return fsm.NoState, err
			}

			frozen := make([]*OrderItem, 0, len(c.Items()))
			var converted []kernel.UUID
			for _, item := range c.Items() {
				if item.IsWatch() {
					continue
				}

				if err := item.Product().DeductFromStock(item.Quantity()); err != nil {
					return fsm.NoState, err
				}

				orderItem, err := NewOrderItem(
					item.Product().Name(),
					item.ProductCode(),
					item.UnitPrice(),
					item.LineTotal(),
					item.Quantity(),
				)
				if err != nil {
					return fsm.NoState, err
				}

				frozen = append(frozen, orderItem)
				converted = append(converted, item.ID())
			}

			for _, itemID := range converted {
				if err := c.RemoveItem(itemID); err != nil {
					return fsm.NoState, err
				}
			}

			shipping, billing := c.ShippingAddressText(), c.BillingAddressText()
			if shipping == "" {
				shipping = billing
			}
			if billing == "" {
				billing = shipping
			}

			o.items = frozen
			o.shippingAddressText = shipping
			o.billingAddressText = billing
			o.subtotal = c.Subtotal().Round()
			o.total = c.Total().Round()
			o.extra = Extra{Rows: c.ExtraRows()}
			return fsm.NoState, nil
		})
}

// AcknowledgePayment moves the order to payment_confirmed from any state,
// guarded by the recorded payments covering the total.
func (o *Order) AcknowledgePayment(ctx context.Context, by fsm.Actor) error {
	return StatusMachine.Execute(ctx, o, &o.status, MethodAcknowledgePayment, by,
		func(context.Context) (fsm.State, error) {
			return fsm.NoState, nil
		})
}

// DeclinePayment moves the order to payment_declined from any state. The
// provider-declared decline condition is checked by the caller.
func (o *Order) DeclinePayment(ctx context.Context, by fsm.Actor) error {
	return StatusMachine.Execute(ctx, o, &o.status, MethodDeclinePayment, by,
		func(context.Context) (fsm.State, error) {
			return fsm.NoState, nil
		})
}

// Cancel revokes the order. When money was already taken the order ends in
// refund_required instead of canceled.
func (o *Order) Cancel(ctx context.Context, by fsm.Actor) error {
	return StatusMachine.Execute(ctx, o, &o.status, MethodCancel, by,
		func(context.Context) (fsm.State, error) {
			if o.AmountPaid().IsZero() {
				return StatusCanceled, nil
			}
			return StatusRefundRequired, nil
		})
}

// Ship hands the order to fulfilment through dispatch. A failing dispatch
// leaves the order in ship_failed and the dispatch error propagates.
func (o *Order) Ship(ctx context.Context, by fsm.Actor, dispatch func(ctx context.Context) error) error {
	return StatusMachine.Execute(ctx, o, &o.status, MethodShip, by,
		func(ctx context.Context) (fsm.State, error) {
			if err := dispatch(ctx); err != nil {
				return fsm.NoState, err
			}
			return fsm.NoState, nil
		})
}

// newSecret draws the anonymous access secret.
func newSecret() string {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms; fall back to a
		// time-derived value rather than aborting order creation.
		return hex.EncodeToString([]byte(time.Now().String()))[:40]
	}
	return hex.EncodeToString(buf)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.customerID = id
	return nil
}

func (o *Order) setStoreID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.storeID = id
	return nil
}

func (o *Order) setCurrency(currency kernel.Currency) error {
	if err := currency.Validate(); err != nil {
		return err
	}
	o.currency = currency
	return nil
}

func (o *Order) applyCapability(status fsm.State) {
	if capability, ok := StatusMachine.Variant(status); ok {
		o.capability = capability.(Capability)
		return
	}
	o.capability = Capability{}
}
