package store

import (
	"errors"
	"fmt"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrStoreIsNotConstructed is returned when a Store instance was not created through
	// the NewStore factory method.
	ErrStoreIsNotConstructed = errors.New("Store must be created via NewStore constructor")
)

// Store represents one merchant storefront. It owns the commercial configuration the
// pricing pipeline is resolved from: the trading currency, the applicable tax rate and
// the ordered list of cart modifier names.
//
// Store follows these invariants:
//   - Must have a valid unique identifier
//   - Must have a non-empty name
//   - Must trade in a valid ISO currency
//   - Tax rate is a percentage in [0, 100]
//   - Can only be created through NewStore constructor
type Store struct {
	// id is the unique identifier for the store
	id kernel.UUID

	// name is the display name of the storefront
	name string

	// email is the merchant contact address used on order confirmations
	email string

	// currency all prices of this store are expressed in
	currency kernel.Currency

	// taxRate is the applicable tax percentage, e.g. 13 for 13%
	taxRate decimal.Decimal

	// modifierNames is the ordered list of cart modifier factory names
	modifierNames []string

	// isConstructed ensures the store was created via NewStore
	isConstructed bool
}

// NewStore creates a new Store instance with validation. This is the only way to create
// a valid Store.
//
// Parameters:
//   - id: Unique identifier for the store (must be valid UUID)
//   - name: Display name (must be non-empty)
//   - email: Merchant contact address
//   - currency: Trading currency (must be a valid ISO code)
//   - taxRate: Tax percentage in [0, 100]
//   - modifierNames: Ordered cart modifier factory names
//
// Returns:
//   - *Store: The created store if all validations pass
//   - error: Validation error if any parameter is invalid
func NewStore(
	id kernel.UUID,
	name string,
	email string,
	currency kernel.Currency,
	taxRate decimal.Decimal,
	modifierNames []string,
) (*Store, error) {
	s := &Store{isConstructed: true}

	if err := errors.Join(
		s.setID(id),
		s.setName(name),
		s.setEmail(email),
		s.setCurrency(currency),
		s.setTaxRate(taxRate),
	); err != nil {
		return nil, err
	}

	s.modifierNames = append([]string(nil), modifierNames...)
	return s, nil
}

// RestoreStore reconstructs a Store aggregate from persistent storage. A store
// carries no state beyond its configuration, so restoring equals construction.
func RestoreStore(
	id kernel.UUID,
	name string,
	email string,
	currency kernel.Currency,
	taxRate decimal.Decimal,
	modifierNames []string,
) (*Store, error) {
	return NewStore(id, name, email, currency, taxRate, modifierNames)
}

// Validate ensures the Store instance was properly constructed through NewStore.
func (s *Store) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrStoreIsNotConstructed
	}

	return nil
}

// IsEqual compares two stores by their unique identifiers.
func (s *Store) IsEqual(other *Store) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID returns the store's unique identifier.
func (s *Store) ID() kernel.UUID {
	return s.id
}

// Name returns the display name of the storefront.
func (s *Store) Name() string {
	return s.name
}

// Email returns the merchant contact address.
func (s *Store) Email() string {
	return s.email
}

// Currency returns the currency all prices of this store are expressed in.
func (s *Store) Currency() kernel.Currency {
	return s.currency
}

// TaxRate returns the applicable tax percentage.
func (s *Store) TaxRate() decimal.Decimal {
	return s.taxRate
}

// ModifierNames returns a copy of the ordered cart modifier factory names.
func (s *Store) ModifierNames() []string {
	return append([]string(nil), s.modifierNames...)
}

// SetModifierNames replaces the ordered cart modifier list. Any cached pricing
// pipeline resolved for this store must be invalidated by the caller afterwards.
func (s *Store) SetModifierNames(names []string) {
	s.modifierNames = append([]string(nil), names...)
}

// SetTaxRate updates the applicable tax percentage. Any cached pricing pipeline
// resolved for this store must be invalidated by the caller afterwards.
func (s *Store) SetTaxRate(rate decimal.Decimal) error {
	return s.setTaxRate(rate)
}

// ZeroPrice returns a zero amount in the store's trading currency.
func (s *Store) ZeroPrice() kernel.Money {
	return kernel.ZeroMoney(s.currency)
}

func (s *Store) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Store) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	s.name = name
	return nil
}

func (s *Store) setEmail(email string) error {
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	s.email = email
	return nil
}

func (s *Store) setCurrency(currency kernel.Currency) error {
	if err := currency.Validate(); err != nil {
		return err
	}
	s.currency = currency
	return nil
}

func (s *Store) setTaxRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
		return errs.NewValueIsOutOfRangeError("taxRate", fmt.Sprintf("%s%%", rate), "0", "100")
	}
	s.taxRate = rate
	return nil
}
