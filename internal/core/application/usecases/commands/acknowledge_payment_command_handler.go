package commands

import (
	"context"

	"shop/internal/core/domain/model/order"
)

// AcknowledgePaymentCommandHandler records provider payments against orders.
// Partial payments accumulate; the order only advances to payment confirmed
// once the received amounts cover the total.
type AcknowledgePaymentCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAcknowledgePaymentCommandHandler creates a handler for payment callbacks.
func NewAcknowledgePaymentCommandHandler(uowFactory OrderUoWFactory) AcknowledgePaymentCommandHandler {
	return AcknowledgePaymentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the acknowledge payment command.
func (h *AcknowledgePaymentCommandHandler) Handle(ctx context.Context, cmd AcknowledgePaymentCommand) error {
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

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = o.AddPayment(order.Payment{
		Amount:        cmd.Amount(),
		TransactionID: cmd.TransactionID(),
		Method:        cmd.Method(),
		ReceivedAt:    cmd.ReceivedAt(),
	}); err != nil {
		return err
	}

	if o.IsFullyPaid() {
		if err = o.AcknowledgePayment(ctx, nil); err != nil {
			return err
		}
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
