package pricing

import (
	"fmt"

	"shop/internal/core/domain/model/cart"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/product"
	"shop/internal/core/domain/model/store"

	"github.com/shopspring/decimal"
)

const (
	// DefaultModifierID is the identifier of the mandatory first pipeline stage.
	DefaultModifierID = "default"

	IncludedTaxModifierID    = "included-tax"
	ExcludedTaxModifierID    = "excluded-tax"
	SelfCollectionModifierID = "self-collection"
)

// DefaultModifier is the mandatory first stage: it clamps requested quantities
// to live availability, prices each line as unit price times quantity, and
// carries the subtotal into the total for later stages to adjust.
type DefaultModifier struct {
	Base
}

// NewDefaultModifier creates the mandatory first pipeline stage.
func NewDefaultModifier() *DefaultModifier {
	return &DefaultModifier{Base: Base{ID: DefaultModifierID}}
}

// PreProcessCartItem clamps the requested quantity to what can currently be
// sold. In strict mode a shortage fails the pass instead of clamping.
func (m *DefaultModifier) PreProcessCartItem(pctx *Context, _ *cart.Cart, item *cart.Item) error {
	if item.IsWatch() {
		return nil
	}

	availability, err := pctx.Availability.Availability(pctx.Ctx, item)
	if err != nil {
		return err
	}
	if item.Quantity() <= availability.Quantity {
		return nil
	}

	if pctx.Strict {
		return product.NewProductNotAvailableError(item.ProductCode(), item.Quantity(), availability.Quantity)
	}

	requested := item.Quantity()
	if err := item.SetQuantity(availability.Quantity); err != nil {
		return err
	}
	pctx.AddNotice(fmt.Sprintf("quantity of '%s' reduced from %d to %d due to availability",
		item.ProductCode(), requested, availability.Quantity))
	return nil
}

// ProcessCartItem sets the unit price and the extended line total.
func (m *DefaultModifier) ProcessCartItem(_ *Context, item *cart.Item) error {
	unit := item.Product().GetPrice()
	item.SetUnitPrice(unit)
	item.SetLineTotal(unit.MulInt(item.Quantity()))
	return nil
}

// ProcessCart initializes the total from the subtotal.
func (m *DefaultModifier) ProcessCart(_ *Context, c *cart.Cart) error {
	c.SetTotal(c.Subtotal())
	return nil
}

// IncludedTaxModifier works on net prices: it computes tax over the subtotal,
// declares it as an extra row and adds it on top of the total.
type IncludedTaxModifier struct {
	Base
	rate decimal.Decimal
}

// NewIncludedTaxModifier creates a tax stage charging the store's rate on top of
// net prices.
func NewIncludedTaxModifier(s *store.Store) *IncludedTaxModifier {
	return &IncludedTaxModifier{
		Base: Base{ID: IncludedTaxModifierID},
		rate: s.TaxRate(),
	}
}

// ProcessCart adds the tax row and raises the total by its amount.
func (m *IncludedTaxModifier) ProcessCart(_ *Context, c *cart.Cart) error {
	tax := c.Subtotal().MulRate(m.rate.Div(decimal.NewFromInt(100)))
	c.PutExtraRow(m.ID, fmt.Sprintf("%s%% VAT", m.rate), tax)

	total, err := c.Total().Add(tax)
	if err != nil {
		return err
	}
	c.SetTotal(total)
	return nil
}

// ExcludedTaxModifier works on gross prices: the tax is already contained in
// every amount, so it only declares informational rows and never changes the
// total.
type ExcludedTaxModifier struct {
	Base
	rate decimal.Decimal
}

// NewExcludedTaxModifier creates a tax stage reporting the tax share contained
// in gross prices.
func NewExcludedTaxModifier(s *store.Store) *ExcludedTaxModifier {
	return &ExcludedTaxModifier{
		Base: Base{ID: ExcludedTaxModifierID},
		rate: s.TaxRate(),
	}
}

// PostProcessCartItem declares the tax share contained in the line total.
func (m *ExcludedTaxModifier) PostProcessCartItem(_ *Context, item *cart.Item) error {
	item.PutExtraRow(m.ID, m.label(), m.contained(item.LineTotal()))
	return nil
}

// ProcessCart declares the tax share contained in the cart total.
func (m *ExcludedTaxModifier) ProcessCart(_ *Context, c *cart.Cart) error {
	c.PutExtraRow(m.ID, m.label(), m.contained(c.Total()))
	return nil
}

func (m *ExcludedTaxModifier) label() string {
	return fmt.Sprintf("incl. %s%% VAT", m.rate)
}

// contained extracts the tax share from a gross amount: gross * rate / (100 + rate).
func (m *ExcludedTaxModifier) contained(gross kernel.Money) kernel.Money {
	divisor := decimal.NewFromInt(100).Add(m.rate)
	return gross.MulRate(m.rate.Div(divisor))
}

// SelfCollectionModifier is the shipping stage for customers picking their order
// up themselves: it declares the choice with a zero surcharge.
type SelfCollectionModifier struct {
	Base
	currency kernel.Currency
}

// NewSelfCollectionModifier creates the pickup shipping stage.
func NewSelfCollectionModifier(s *store.Store) *SelfCollectionModifier {
	return &SelfCollectionModifier{
		Base:     Base{ID: SelfCollectionModifierID},
		currency: s.Currency(),
	}
}

// ProcessCart declares the free pickup row.
func (m *SelfCollectionModifier) ProcessCart(_ *Context, c *cart.Cart) error {
	c.PutExtraRow(m.ID, "Self collection", kernel.ZeroMoney(m.currency))
	return nil
}

// PaymentProvider is the gateway behind a payment stage. Surcharge returns the
// fee the provider charges for a cart; a zero amount means none.
type PaymentProvider interface {
	Namespace() string
	Surcharge(pctx *Context, c *cart.Cart) (kernel.Money, error)
}

// PaymentModifier is the payment stage: it asks its provider for a surcharge
// and, when one applies, declares it and raises the total.
type PaymentModifier struct {
	Base
	provider PaymentProvider
}

// NewPaymentModifier creates a payment stage for the given provider. The
// modifier identifier is the provider's namespace.
func NewPaymentModifier(provider PaymentProvider) *PaymentModifier {
	return &PaymentModifier{
		Base:     Base{ID: provider.Namespace()},
		provider: provider,
	}
}

// ProcessCart applies the provider's surcharge, if any.
func (m *PaymentModifier) ProcessCart(pctx *Context, c *cart.Cart) error {
	surcharge, err := m.provider.Surcharge(pctx, c)
	if err != nil {
		return err
	}
	if surcharge.IsZero() {
		return nil
	}

	c.PutExtraRow(m.ID, fmt.Sprintf("Payment fee (%s)", m.provider.Namespace()), surcharge)
	total, err := c.Total().Add(surcharge)
	if err != nil {
		return err
	}
	c.SetTotal(total)
	return nil
}

// PayInAdvanceProvider is the built-in bank transfer provider: payment arrives
// before shipping, no fee applies.
type PayInAdvanceProvider struct {
	currency kernel.Currency
}

// NewPayInAdvanceProvider creates the bank transfer provider for a store.
func NewPayInAdvanceProvider(s *store.Store) *PayInAdvanceProvider {
	return &PayInAdvanceProvider{currency: s.Currency()}
}

// Namespace returns the provider key.
func (p *PayInAdvanceProvider) Namespace() string {
	return "pay-in-advance"
}

// Surcharge is always zero for bank transfers.
func (p *PayInAdvanceProvider) Surcharge(_ *Context, _ *cart.Cart) (kernel.Money, error) {
	return kernel.ZeroMoney(p.currency), nil
}
