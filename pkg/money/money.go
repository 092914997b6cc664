// Package money provides a value object for rupee amounts.
//
// Amounts are stored as int64 paise so that arithmetic on balances and dues
// is exact. Float conversion happens only at the API boundary.
package money

import (
	"errors"
	"fmt"
	"math"
)

// Currency is the single currency this ledger operates in.
const Currency = "INR"

// decimals is the number of fractional digits for INR (paise).
const decimals = 2

var (
	// ErrAmountMustBePositive is returned when an operation amount is zero or negative.
	ErrAmountMustBePositive = errors.New("amount must be positive")

	// ErrAmountNotFinite is returned when an amount is NaN or infinite.
	ErrAmountNotFinite = errors.New("amount must be a finite number")

	// ErrAmountOverflow is returned when an amount does not fit in the smallest unit.
	ErrAmountOverflow = errors.New("amount exceeds maximum representable value")
)

// Money represents a rupee amount in paise.
//
// Invariants:
//   - Amount is always stored in paise.
//   - Arithmetic never silently overflows.
type Money struct {
	paise int64
}

// New creates Money from a rupee amount, rounding to the nearest paisa.
func New(amount float64) (Money, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Money{}, ErrAmountNotFinite
	}
	scaled := math.Round(amount * math.Pow10(decimals))
	// float64(math.MaxInt64) is exactly 2^63, one past the largest int64, so
	// the upper bound must be exclusive.
	if scaled >= math.MaxInt64 || scaled < math.MinInt64 {
		return Money{}, ErrAmountOverflow
	}
	return Money{paise: int64(scaled)}, nil
}

// NewPositive creates Money from a rupee amount and requires it to be > 0.
// Operation amounts (deposits, withdrawals, repayments) go through this.
func NewPositive(amount float64) (Money, error) {
	m, err := New(amount)
	if err != nil {
		return Money{}, err
	}
	if m.paise <= 0 {
		return Money{}, ErrAmountMustBePositive
	}
	return m, nil
}

// FromPaise creates Money from a paise amount, used when hydrating from the store.
func FromPaise(paise int64) Money {
	return Money{paise: paise}
}

// Paise returns the amount in paise.
func (m Money) Paise() int64 {
	return m.paise
}

// Float returns the amount in rupees for API responses.
func (m Money) Float() float64 {
	return float64(m.paise) / math.Pow10(decimals)
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) (Money, error) {
	if (other.paise > 0 && m.paise > math.MaxInt64-other.paise) ||
		(other.paise < 0 && m.paise < math.MinInt64-other.paise) {
		return Money{}, ErrAmountOverflow
	}
	return Money{paise: m.paise + other.paise}, nil
}

// Subtract returns the difference of two amounts.
func (m Money) Subtract(other Money) (Money, error) {
	return m.Add(Money{paise: -other.paise})
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.paise > 0
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.paise == 0
}

// GreaterThan reports whether m is strictly greater than other.
func (m Money) GreaterThan(other Money) bool {
	return m.paise > other.paise
}

// String renders the amount with the currency code, e.g. "INR 1100.00".
func (m Money) String() string {
	return fmt.Sprintf("%s %.2f", Currency, m.Float())
}
