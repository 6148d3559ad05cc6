package commands

import (
	"context"

	"shop/internal/core/domain/model/kernel"
)

// PipelineInvalidator drops a store's cached pricing pipeline after its
// configuration changed.
type PipelineInvalidator interface {
	Invalidate(storeID kernel.UUID)
}

// UpdateStorePricingCommandHandler reconfigures store pricing and drops the
// store's cached pipeline once the new configuration is committed.
type UpdateStorePricingCommandHandler struct {
	uowFactory  StoreUoWFactory
	invalidator PipelineInvalidator
}

// NewUpdateStorePricingCommandHandler creates a handler for store pricing
// changes.
func NewUpdateStorePricingCommandHandler(
	uowFactory StoreUoWFactory,
	invalidator PipelineInvalidator,
) UpdateStorePricingCommandHandler {
	return UpdateStorePricingCommandHandler{
		uowFactory:  uowFactory,
		invalidator: invalidator,
	}
}

// Handle processes the update store pricing command.
func (h *UpdateStorePricingCommandHandler) Handle(ctx context.Context, cmd UpdateStorePricingCommand) error {
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

	s, err := uow.StoreRepository().Get(ctx, cmd.StoreID())
	if err != nil {
		return err
	}

	s.SetModifierNames(cmd.ModifierNames())
	if err = s.SetTaxRate(cmd.TaxRate()); err != nil {
		return err
	}

	if err = uow.StoreRepository().Update(ctx, s); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.invalidator.Invalidate(cmd.StoreID())
	return nil
}
