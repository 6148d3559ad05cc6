package commands

import (
	"context"
	"time"
)

// PurgeStaleCartsCommandHandler deletes abandoned carts in bulk.
type PurgeStaleCartsCommandHandler struct {
	uowFactory CartUoWFactory
}

// NewPurgeStaleCartsCommandHandler creates a handler for stale cart purges.
func NewPurgeStaleCartsCommandHandler(uowFactory CartUoWFactory) PurgeStaleCartsCommandHandler {
	return PurgeStaleCartsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the purge command and returns the number of carts removed.
func (h *PurgeStaleCartsCommandHandler) Handle(ctx context.Context, cmd PurgeStaleCartsCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cutoff := time.Now().Add(-cmd.MaxAge())
	purged, err := uow.CartRepository().DeleteStale(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return purged, nil
}
