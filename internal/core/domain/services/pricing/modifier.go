package pricing

import (
	"shop/internal/core/domain/model/cart"
)

// Modifier is one stage of a store's pricing pipeline. The pipeline drives each
// recompute through the hook sequence; most modifiers implement one or two hooks
// and embed Base for the rest.
//
// Hook order per recompute: ArrangeCartItems, then PreProcessCart and
// PreProcessCartItem for validation and clamping, then ProcessCartItem per active
// line, then PostProcessCartItem and ProcessCart in pipeline order, and finally
// PostProcessCart in reverse pipeline order.
type Modifier interface {
	// Identifier is the stable key of this modifier, unique within a pipeline.
	// Extra rows contributed by the modifier are stored under this key.
	Identifier() string

	// ArrangeCartItems may reorder the active lines before processing.
	ArrangeCartItems(pctx *Context, items []*cart.Item) []*cart.Item

	// PreProcessCart runs once before any line is processed.
	PreProcessCart(pctx *Context, c *cart.Cart) error

	// PreProcessCartItem validates or clamps one line before totals exist.
	PreProcessCartItem(pctx *Context, c *cart.Cart, item *cart.Item) error

	// ProcessCartItem prices one line. The first pipeline stage is expected to
	// set the unit price and the extended line total.
	ProcessCartItem(pctx *Context, item *cart.Item) error

	// PostProcessCartItem adjusts one priced line, e.g. with informational rows.
	PostProcessCartItem(pctx *Context, item *cart.Item) error

	// ProcessCart contributes to the cart summary: extra rows and the total.
	ProcessCart(pctx *Context, c *cart.Cart) error

	// PostProcessCart finalizes the summary. These hooks run in reverse pipeline
	// order so the innermost stage sees every other stage's contribution.
	PostProcessCart(pctx *Context, c *cart.Cart) error
}

// Base provides no-op defaults for all hooks except Identifier. Concrete
// modifiers embed it and override what they need.
type Base struct {
	ID string
}

// Identifier returns the modifier's stable key.
func (b Base) Identifier() string {
	return b.ID
}

// ArrangeCartItems keeps the given order.
func (b Base) ArrangeCartItems(_ *Context, items []*cart.Item) []*cart.Item {
	return items
}

// PreProcessCart does nothing.
func (b Base) PreProcessCart(_ *Context, _ *cart.Cart) error {
	return nil
}

// PreProcessCartItem does nothing.
func (b Base) PreProcessCartItem(_ *Context, _ *cart.Cart, _ *cart.Item) error {
	return nil
}

// ProcessCartItem does nothing.
func (b Base) ProcessCartItem(_ *Context, _ *cart.Item) error {
	return nil
}

// PostProcessCartItem does nothing.
func (b Base) PostProcessCartItem(_ *Context, _ *cart.Item) error {
	return nil
}

// ProcessCart does nothing.
func (b Base) ProcessCart(_ *Context, _ *cart.Cart) error {
	return nil
}

// PostProcessCart does nothing.
func (b Base) PostProcessCart(_ *Context, _ *cart.Cart) error {
	return nil
}
