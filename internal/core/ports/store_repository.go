package ports

import (
	"context"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/store"
)

// StoreRepository defines the persistence contract for store aggregates.
type StoreRepository interface {
	// Add persists a new store aggregate to storage.
	Add(ctx context.Context, aggregate *store.Store) error

	// Update persists changes to an existing store aggregate. Callers must
	// invalidate the store's cached pricing pipeline afterwards.
	Update(ctx context.Context, aggregate *store.Store) error

	// Get retrieves a store aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*store.Store, error)
}
