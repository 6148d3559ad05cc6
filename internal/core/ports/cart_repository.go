package ports

import (
	"context"
	"time"

	"shop/internal/core/domain/model/cart"
	"shop/internal/core/domain/model/kernel"
)

// CartRepository defines the persistence contract for cart aggregates. A cart
// is stored together with its lines; removing a cart removes its lines.
type CartRepository interface {
	// Add persists a new cart aggregate to storage.
	Add(ctx context.Context, aggregate *cart.Cart) error

	// Update persists changes to an existing cart aggregate, lines included.
	Update(ctx context.Context, aggregate *cart.Cart) error

	// Get retrieves a cart aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*cart.Cart, error)

	// GetByCustomer retrieves the customer's cart. Each customer has at most one.
	GetByCustomer(ctx context.Context, customerID kernel.UUID) (*cart.Cart, error)

	// Delete removes a cart and its lines.
	Delete(ctx context.Context, id kernel.UUID) error

	// DeleteStale removes carts untouched since the given cutoff and returns
	// how many were removed.
	DeleteStale(ctx context.Context, cutoff time.Time) (int64, error)
}
