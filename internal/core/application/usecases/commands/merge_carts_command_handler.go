package commands

import (
	"context"
	"errors"

	"shop/internal/pkg/errs"
)

// MergeCartsCommandHandler folds one customer's cart into another's.
type MergeCartsCommandHandler struct {
	uowFactory CartUoWFactory
}

// NewMergeCartsCommandHandler creates a handler for cart merges.
func NewMergeCartsCommandHandler(uowFactory CartUoWFactory) MergeCartsCommandHandler {
	return MergeCartsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the merge carts command.
// A missing source cart is a no-op: the visitor never put anything in it.
// When the target has no cart yet, the source cart is simply reassigned by
// merging into a freshly created one. The absorbed cart is deleted in the
// same transaction as the updated target.
func (h *MergeCartsCommandHandler) Handle(ctx context.Context, cmd MergeCartsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	source, err := uow.CartRepository().GetByCustomer(ctx, cmd.SourceCustomerID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	target, err := getOrCreateCart(ctx, uow, cmd.TargetCustomerID(), source.StoreID())
	if err != nil {
		return err
	}

	if err = target.Merge(source); err != nil {
		return err
	}

	if err = uow.CartRepository().Update(ctx, target); err != nil {
		return err
	}
	if err = uow.CartRepository().Delete(ctx, source.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
