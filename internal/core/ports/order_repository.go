package ports

import (
	"context"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates,
// including the year-scoped order number sequence.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByNumber retrieves an order by its stored number, e.g. 202600042.
	GetByNumber(ctx context.Context, number int) (*order.Order, error)

	// NextNumber draws the next sequence value for the given calendar year.
	// The sequence starts at 1 each year and increments monotonically.
	// Implementations must make the draw race-free, e.g. by aggregating and
	// incrementing under a row lock, so concurrent double-submission cannot
	// produce duplicate numbers.
	NextNumber(ctx context.Context, year int) (int, error)
}
