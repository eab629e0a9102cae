package kernel

import (
	"fmt"
	"math"

	"dispatch/internal/pkg/errs"
)

// ErrMoneyIsNegative is returned when constructing Money from a negative amount.
var ErrMoneyIsNegative = errs.NewValueIsInvalidError("money amount must not be negative")

// Money is an immutable non-negative monetary amount held in integer cents.
// It backs delivery fees and the driver earnings ledger. Integer cents avoid
// the drift that floating-point accumulation would introduce on repeated
// credits.
//
// The zero value is a valid amount of zero, so a fresh earnings ledger needs
// no special construction.
//
// Example:
//
//	fee, err := kernel.NewMoneyFromFloat(25.0)
//	if err != nil {
//	    return err
//	}
//	earnings := kernel.Money{}.Add(fee) // 25.00
type Money struct {
	cents int64
}

// NewMoney creates a Money value from integer cents.
func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrMoneyIsNegative
	}
	return Money{cents: cents}, nil
}

// NewMoneyFromFloat creates a Money value from a major-unit amount,
// rounding to the nearest cent. Used at boundaries where amounts arrive
// as decimal numbers.
func NewMoneyFromFloat(amount float64) (Money, error) {
	if amount < 0 {
		return Money{}, ErrMoneyIsNegative
	}
	return Money{cents: int64(math.Round(amount * 100))}, nil
}

// Cents returns the amount in integer cents.
func (m Money) Cents() int64 {
	return m.cents
}

// Float64 returns the amount in major units for read models and display.
func (m Money) Float64() float64 {
	return float64(m.cents) / 100
}

// Add returns the sum of two amounts. Money is non-negative, so sums never
// decrease; this keeps the earnings ledger monotonic.
func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// IsEqual reports whether two amounts are the same.
func (m Money) IsEqual(other Money) bool {
	return m.cents == other.cents
}

// String formats the amount with two decimal places.
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/100, m.cents%100)
}
