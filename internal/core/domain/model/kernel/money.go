package kernel

import (
	"fmt"

	"github.com/shopspring/decimal"

	"fulfillment/internal/pkg/errs"
)

// ErrMoneyIsNotConstructed indicates that a Money value was not created through
// one of the constructor functions. This error is returned when validating a
// zero-value Money.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"Money must be created via NewMoney, MoneyFromString, or MoneyFromFloat",
)

// Money is a value object representing a non-negative monetary amount.
// It wraps github.com/shopspring/decimal to keep refund amounts, payout totals,
// and tax arithmetic exact. Floating point rounding must never decide who owes
// whom a centavo.
//
// The zero value of Money is invalid and must be constructed through NewMoney,
// MoneyFromString, or MoneyFromFloat. Money is immutable; arithmetic methods
// return new values.
//
// Example usage:
//
//	price, err := kernel.MoneyFromString("199.50")
//	if err != nil {
//	    // handle error
//	}
//	tax := price.MulRate(decimal.NewFromFloat(0.05)) // rounded to 2 decimals
//	net := price.Sub(tax)
type Money struct {
	amount decimal.Decimal

	guard ConstructorGuard
}

// NewMoney creates a Money value from a decimal amount.
// Returns an error if the amount is negative.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount is invalid",
			fmt.Errorf("%s is negative", amount.String()),
		)
	}
	return Money{
		amount: amount,
		guard:  NewConstructorGuard(),
	}, nil
}

// MoneyFromString parses a Money value from its decimal string representation.
// Accepts values such as "200", "199.50", or "0.01".
func MoneyFromString(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount is invalid", err)
	}
	return NewMoney(amount)
}

// MoneyFromFloat creates a Money value from a float64 amount.
// Intended for interop with transport payloads; domain code should prefer
// NewMoney or MoneyFromString.
func MoneyFromFloat(f float64) (Money, error) {
	return NewMoney(decimal.NewFromFloat(f))
}

// ZeroMoney returns a valid Money value of zero.
func ZeroMoney() Money {
	return Money{
		amount: decimal.Zero,
		guard:  NewConstructorGuard(),
	}
}

// Validate ensures the Money value was created through a constructor.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Decimal returns the underlying decimal amount.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Float returns the amount as a float64 for transport serialization.
func (m Money) Float() float64 {
	return m.amount.InexactFloat64()
}

// String returns the amount formatted with two decimal places.
func (m Money) String() string {
	return m.amount.StringFixed(2)
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsEqual reports whether two Money values represent the same amount.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// Add returns the sum of two Money values.
func (m Money) Add(other Money) Money {
	return Money{
		amount: m.amount.Add(other.amount),
		guard:  NewConstructorGuard(),
	}
}

// Sub returns the difference of two Money values.
// Returns an error if the result would be negative.
func (m Money) Sub(other Money) (Money, error) {
	result := m.amount.Sub(other.amount)
	if result.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount is invalid",
			fmt.Errorf("%s minus %s is negative", m.amount.String(), other.amount.String()),
		)
	}
	return NewMoney(result)
}

// Mul returns the amount multiplied by a whole quantity.
func (m Money) Mul(quantity int) Money {
	return Money{
		amount: m.amount.Mul(decimal.NewFromInt(int64(quantity))),
		guard:  NewConstructorGuard(),
	}
}

// MulRate multiplies the amount by a fractional rate and rounds the result
// to two decimal places. Used for tax withholding and liability multipliers.
func (m Money) MulRate(rate decimal.Decimal) Money {
	return Money{
		amount: m.amount.Mul(rate).Round(2),
		guard:  NewConstructorGuard(),
	}
}

// LessThan reports whether the amount is strictly less than the other amount.
func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}
