package commands

import (
	"errors"

	"github.com/shopspring/decimal"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/guard"
)

var (
	ErrUpdateStorePricingCommandIsNotConstructed = errors.New(
		"UpdateStorePricingCommand must be created via NewUpdateStorePricingCommand constructor",
	)
	ErrModifierNamesAreRequired = errors.New("at least one modifier factory name is required")
)

// UpdateStorePricingCommand reconfigures a store's pricing: the ordered cart
// modifier list and the applicable tax rate.
type UpdateStorePricingCommand struct { //nolint:recvcheck //using for validation
	storeID       kernel.UUID
	modifierNames []string
	taxRate       decimal.Decimal

	guard guard.ConstructorGuard
}

// NewUpdateStorePricingCommand creates a command to reconfigure store pricing.
// The tax rate is validated against the store's bounds when applied.
func NewUpdateStorePricingCommand(
	storeID kernel.UUID,
	modifierNames []string,
	taxRate decimal.Decimal,
) (UpdateStorePricingCommand, error) {
	cmd := UpdateStorePricingCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setStoreID(storeID),
		cmd.setModifierNames(modifierNames),
	); err != nil {
		return UpdateStorePricingCommand{}, err
	}
	cmd.taxRate = taxRate

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateStorePricingCommand) Validate() error {
	return c.guard.Validate(ErrUpdateStorePricingCommandIsNotConstructed)
}

// StoreID returns the store being reconfigured.
func (c UpdateStorePricingCommand) StoreID() kernel.UUID {
	return c.storeID
}

// ModifierNames returns the new ordered modifier factory names.
func (c UpdateStorePricingCommand) ModifierNames() []string {
	return append([]string(nil), c.modifierNames...)
}

// TaxRate returns the new tax percentage.
func (c UpdateStorePricingCommand) TaxRate() decimal.Decimal {
	return c.taxRate
}

func (c *UpdateStorePricingCommand) setStoreID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.storeID = id
	return nil
}

func (c *UpdateStorePricingCommand) setModifierNames(names []string) error {
	if len(names) == 0 {
		return ErrModifierNamesAreRequired
	}

	c.modifierNames = append([]string(nil), names...)
	return nil
}
