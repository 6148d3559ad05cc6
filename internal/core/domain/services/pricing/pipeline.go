package pricing

import (
	"fmt"

	"shop/internal/core/domain/model/cart"
	"shop/internal/pkg/errs"
)

// Pipeline is the ordered modifier chain resolved for one store. It owns the
// recompute sweep turning a dirty cart back into one with valid totals.
type Pipeline struct {
	modifiers []Modifier
}

// NewPipeline builds a pipeline from ordered modifiers. Two modifiers sharing an
// identifier is a fatal configuration error.
func NewPipeline(modifiers ...Modifier) (*Pipeline, error) {
	seen := make(map[string]bool, len(modifiers))
	for _, m := range modifiers {
		id := m.Identifier()
		if id == "" {
			return nil, errs.NewConfigurationError("cart modifier with empty identifier")
		}
		if seen[id] {
			return nil, errs.NewConfigurationError(fmt.Sprintf(
				"duplicate cart modifier identifier '%s'", id))
		}
		seen[id] = true
	}

	return &Pipeline{modifiers: append([]Modifier(nil), modifiers...)}, nil
}

// Modifiers returns the stages in pipeline order.
func (p *Pipeline) Modifiers() []Modifier {
	return append([]Modifier(nil), p.modifiers...)
}

// RecomputeCart reprices a dirty cart. A clean cart returns immediately without
// running any hook, which makes repeated reads cheap.
//
// The sweep: arrange the active lines, run the pre-phase (cart hook, then the
// per-line hook over every line, per modifier), reset rows and totals, price each
// active line and accumulate the subtotal, run the summary phase forward
// (per-line post hook, then the cart hook), finalize in reverse pipeline order,
// and cache the processed line snapshot while clearing the dirty flags.
func (p *Pipeline) RecomputeCart(pctx *Context, c *cart.Cart) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if !c.IsDirty() {
		return nil
	}

	active := c.ActiveItems()
	for _, m := range p.modifiers {
		active = m.ArrangeCartItems(pctx, active)
	}

	for _, m := range p.modifiers {
		if err := m.PreProcessCart(pctx, c); err != nil {
			return err
		}
		for _, item := range active {
			if err := m.PreProcessCartItem(pctx, c, item); err != nil {
				return err
			}
		}
	}

	c.ResetForRecompute()

	subtotal := c.Subtotal()
	for _, item := range active {
		// A pre-phase clamp may have zeroed the line; it then counts as a
		// watch-list line and contributes nothing.
		if item.IsWatch() {
			continue
		}
		if err := p.RecomputeItem(pctx, item); err != nil {
			return err
		}
		sum, err := subtotal.Add(item.LineTotal())
		if err != nil {
			return err
		}
		subtotal = sum
	}
	c.SetSubtotal(subtotal)

	for _, m := range p.modifiers {
		for _, item := range active {
			if item.IsWatch() {
				continue
			}
			if err := m.PostProcessCartItem(pctx, item); err != nil {
				return err
			}
		}
		if err := m.ProcessCart(pctx, c); err != nil {
			return err
		}
	}

	for i := len(p.modifiers) - 1; i >= 0; i-- {
		if err := p.modifiers[i].PostProcessCart(pctx, c); err != nil {
			return err
		}
	}

	c.FinishRecompute(active)
	return nil
}

// RecomputeItem reprices one dirty line: previous adjustments are dropped, the
// line is optionally refreshed from its authoritative source, and every stage's
// line hook runs in pipeline order. A clean line is a no-op and keeps its
// cached totals.
func (p *Pipeline) RecomputeItem(pctx *Context, item *cart.Item) error {
	if !item.IsDirty() {
		return nil
	}

	item.ResetExtraRows()

	if pctx.Reload != nil {
		if err := pctx.Reload.ReloadItem(pctx.Ctx, item); err != nil {
			return err
		}
	}

	for _, m := range p.modifiers {
		if err := m.ProcessCartItem(pctx, item); err != nil {
			return err
		}
	}

	item.FinishRecompute()
	return nil
}
