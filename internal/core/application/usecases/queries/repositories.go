// Package queries contains read operations in the CQRS architecture. Simple
// lookups go straight to the database; the cart read is special in that it
// sweeps stale pricing before reporting totals.
package queries

import (
	"context"

	"shop/internal/core/ports"
)

type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// CartUoW provides the repositories the cart read path touches. Reading a
	// dirty cart recomputes and persists its totals, so the read still runs
	// in a transaction.
	CartUoW interface {
		TxManager
		CartRepository() ports.CartRepository
		CustomerRepository() ports.CustomerRepository
		StoreRepository() ports.StoreRepository
	}

	// CartUoWFactory creates new cart unit of work instances.
	CartUoWFactory interface {
		Create() CartUoW
	}
)
