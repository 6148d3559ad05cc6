package order

import (
	"time"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"
)

// Payment is one recorded payment against an order, as reported by a payment
// provider. Payments are append-only; refunds are separate business events.
type Payment struct {
	Amount        kernel.Money
	TransactionID string
	Method        string
	ReceivedAt    time.Time
}

func (p Payment) validate(currency kernel.Currency) error {
	if err := p.Amount.Validate(); err != nil {
		return err
	}
	if p.Amount.Currency() != currency {
		return kernel.ErrCurrencyMismatch
	}
	if p.TransactionID == "" {
		return errs.NewValueIsRequiredError("transactionID")
	}
	if p.Method == "" {
		return errs.NewValueIsRequiredError("method")
	}
	return nil
}
