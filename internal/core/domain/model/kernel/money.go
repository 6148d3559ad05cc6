package kernel

import (
	"fmt"

	"shop/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Domain errors for monetary values.
var (
	// ErrCurrencyIsRequired is returned when constructing Money without a currency.
	ErrCurrencyIsRequired = errs.NewValueIsRequiredError("currency")
	// ErrCurrencyMismatch is returned when combining amounts of different currencies.
	ErrCurrencyMismatch = errs.NewValueIsInvalidError("cannot combine amounts of different currencies")
)

// currencyPrecision maps ISO currency codes to the number of decimal places
// used when persisting rounded amounts. Codes not listed here use two places.
var currencyPrecision = map[Currency]int32{
	"JPY": 0,
	"KRW": 0,
	"BHD": 3,
	"KWD": 3,
}

// Currency is an ISO 4217 currency code.
type Currency string

// Validate checks that the currency code is present.
func (c Currency) Validate() error {
	if c == "" {
		return ErrCurrencyIsRequired
	}
	return nil
}

// Precision returns the number of decimal places amounts of this currency
// are rounded to before persistence.
func (c Currency) Precision() int32 {
	if p, ok := currencyPrecision[c]; ok {
		return p
	}
	return 2
}

// Money is an immutable value object pairing a decimal amount with a currency.
// Unrounded intermediate amounts are allowed; Round applies the currency
// precision using banker-unfriendly half-up rounding, which is what invoices
// expect (19.995 rounds to 20.00 at two places).
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// NewMoney creates a Money value in the given currency.
func NewMoney(amount decimal.Decimal, currency Currency) (Money, error) {
	if err := currency.Validate(); err != nil {
		return Money{}, err
	}
	return Money{amount: amount, currency: currency}, nil
}

// ZeroMoney returns the zero amount in the given currency.
func ZeroMoney(currency Currency) Money {
	return Money{amount: decimal.Zero, currency: currency}
}

// MoneyFromString parses a decimal string such as "19.995".
func MoneyFromString(amount string, currency Currency) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(d, currency)
}

// Validate checks that the value carries a currency.
func (m Money) Validate() error {
	return m.currency.Validate()
}

// Amount returns the raw decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency code.
func (m Money) Currency() Currency {
	return m.currency
}

// Add returns m + other. Both values must share a currency.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, ErrCurrencyMismatch
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// Sub returns m - other. Both values must share a currency.
func (m Money) Sub(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, ErrCurrencyMismatch
	}
	return Money{amount: m.amount.Sub(other.amount), currency: m.currency}, nil
}

// MulInt returns the amount multiplied by an integer quantity.
func (m Money) MulInt(quantity int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity))), currency: m.currency}
}

// MulRate returns the amount multiplied by a decimal rate, e.g. a tax rate.
func (m Money) MulRate(rate decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(rate), currency: m.currency}
}

// Round returns the amount rounded half-up to the currency precision.
func (m Money) Round() Money {
	return Money{amount: m.amount.Round(m.currency.Precision()), currency: m.currency}
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsEqual compares currency and amount.
func (m Money) IsEqual(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// GreaterOrEqual reports m >= other, ignoring currency of a zero other.
func (m Money) GreaterOrEqual(other Money) bool {
	return m.amount.GreaterThanOrEqual(other.amount)
}

// String renders the amount with its currency code, e.g. "28.25 USD".
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.String(), m.currency)
}
