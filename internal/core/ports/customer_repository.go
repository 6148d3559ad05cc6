package ports

import (
	"context"

	"shop/internal/core/domain/model/customer"
	"shop/internal/core/domain/model/kernel"
)

// CustomerRepository defines the persistence contract for customer aggregates,
// including the customer number sequence.
type CustomerRepository interface {
	// Add persists a new customer aggregate to storage.
	Add(ctx context.Context, aggregate *customer.Customer) error

	// Update persists changes to an existing customer aggregate.
	Update(ctx context.Context, aggregate *customer.Customer) error

	// Get retrieves a customer aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error)

	// NextNumber draws the next customer number. Implementations must make the
	// draw race-free so two concurrent registrations cannot share a number.
	NextNumber(ctx context.Context) (int, error)
}
