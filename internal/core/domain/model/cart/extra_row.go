package cart

import "shop/internal/core/domain/model/kernel"

// ExtraRow is one price adjustment contributed by a cart modifier: a tax line,
// a shipping surcharge, a discount. Rows are keyed by the contributing modifier's
// identifier and keep the order in which modifiers appended them.
type ExtraRow struct {
	ModifierID string
	Label      string
	Amount     kernel.Money
}

// ExtraRows is an ordered collection of price adjustment rows, at most one per
// modifier. Rows live for one pricing pass only; every recompute starts from an
// empty collection.
type ExtraRows struct {
	rows []ExtraRow
}

// Put stores a row under the modifier's identifier, replacing an earlier row from
// the same modifier while keeping its position.
func (r *ExtraRows) Put(modifierID, label string, amount kernel.Money) {
	for i := range r.rows {
		if r.rows[i].ModifierID == modifierID {
			r.rows[i].Label = label
			r.rows[i].Amount = amount
			return
		}
	}
	r.rows = append(r.rows, ExtraRow{ModifierID: modifierID, Label: label, Amount: amount})
}

// Get returns the row contributed by the given modifier, if any.
func (r *ExtraRows) Get(modifierID string) (ExtraRow, bool) {
	for _, row := range r.rows {
		if row.ModifierID == modifierID {
			return row, true
		}
	}
	return ExtraRow{}, false
}

// Rows returns the rows in contribution order.
func (r *ExtraRows) Rows() []ExtraRow {
	return append([]ExtraRow(nil), r.rows...)
}

// Reset drops all rows.
func (r *ExtraRows) Reset() {
	r.rows = nil
}

// Len returns the number of rows.
func (r *ExtraRows) Len() int {
	return len(r.rows)
}

// restoreExtraRows rebuilds a collection from persisted rows.
func restoreExtraRows(rows []ExtraRow) ExtraRows {
	return ExtraRows{rows: append([]ExtraRow(nil), rows...)}
}
