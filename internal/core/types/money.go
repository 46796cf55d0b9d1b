// Package types provides common type aliases and utilities.
package types

import (
	"github.com/shopspring/decimal"
)

// Money represents a single-currency monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors.
type Money = decimal.Decimal

// NewMoneyFromString creates a Money value from a string.
// This is the preferred constructor for monetary values.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants and tests.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Zero returns zero Money value.
func Zero() Money {
	return decimal.Zero
}

// Round2 rounds to two decimal places. Every externally visible amount
// (totals, ledger sums, averages) passes through this before encoding.
func Round2(m Money) Money {
	return m.Round(2)
}

// MulInt multiplies a unit price by a whole quantity.
func MulInt(m Money, qty int64) Money {
	return m.Mul(decimal.NewFromInt(qty))
}

// DivInt divides an amount by a whole count, rounded to two decimal places.
// Returns zero when count is zero.
func DivInt(m Money, count int64) Money {
	if count == 0 {
		return decimal.Zero
	}
	return m.DivRound(decimal.NewFromInt(count), 2)
}

// Percent returns part/whole*100 rounded to two decimal places.
// Returns zero when whole is zero.
func Percent(part, whole Money) Money {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Mul(decimal.NewFromInt(100)).DivRound(whole, 2)
}
