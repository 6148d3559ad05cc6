// Package order provides domain entities and business logic for the immutable
// side of a purchase. It implements the Order aggregate root with its frozen
// line items, payments and the status machine governing the lifecycle.
//
// The package includes:
//   - Order: The aggregate root created as an empty shell and populated from a cart
//   - OrderItem: An immutable per-line snapshot taken at conversion time
//   - Payment: One recorded payment against an order
//   - StatusMachine: The shared transition table built from workflow extensions
//
// Key business rules:
//   - Order numbers are year-scoped, assigned exactly once and immutable
//   - Amounts are decimal-rounded snapshots, never recomputed from live prices
//   - Status changes only through declared transitions; payment confirmation is
//     guarded by the recorded payments covering the total
//   - Population from a cart deducts stock strictly and is atomic within the
//     caller's unit of work
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
