package shared

import "errors"

// DefaultCurrency is the platform currency. All catalog prices, ship fees
// and order totals are denominated in it.
const DefaultCurrency = "VND"

// Money value object. Stored in the smallest currency unit.
type Money struct {
	amount   int64
	currency string
}

// NewMoney creates a Money value object.
func NewMoney(amount int64, currency string) *Money {
	return &Money{
		amount:   amount,
		currency: currency,
	}
}

// VND creates a Money in the platform currency.
func VND(amount int64) Money {
	return Money{amount: amount, currency: DefaultCurrency}
}

// Amount returns the raw amount.
func (m Money) Amount() int64 {
	return m.amount
}

// Currency returns the currency code.
func (m Money) Currency() string {
	return m.currency
}

// Add returns a new Money with the sum of both amounts.
func (m Money) Add(other Money) (*Money, error) {
	if m.currency != other.currency {
		return nil, errors.New("cannot add money with different currencies")
	}

	return &Money{
		amount:   m.amount + other.amount,
		currency: m.currency,
	}, nil
}

// Subtract returns a new Money with the difference of both amounts.
func (m Money) Subtract(other Money) (*Money, error) {
	if m.currency != other.currency {
		return nil, errors.New("cannot subtract money with different currencies")
	}

	return &Money{
		amount:   m.amount - other.amount,
		currency: m.currency,
	}, nil
}

// Multiply returns a new Money scaled by a non-negative quantity,
// guarding against int64 overflow.
func (m Money) Multiply(quantity int) (*Money, error) {
	if quantity < 0 {
		return nil, errors.New("quantity must not be negative")
	}
	if quantity != 0 && m.amount > 0 && m.amount > (int64(1)<<62)/int64(quantity) {
		return nil, errors.New("money amount overflow")
	}

	return &Money{
		amount:   m.amount * int64(quantity),
		currency: m.currency,
	}, nil
}

// FloorZero returns the amount, never below zero. Used when a voucher
// discount would push a total negative.
func (m Money) FloorZero() Money {
	if m.amount < 0 {
		return Money{amount: 0, currency: m.currency}
	}
	return m
}

// IsGreaterThan reports whether this amount is greater than the other.
func (m Money) IsGreaterThan(other Money) bool {
	return m.amount > other.amount
}

// IsGreaterThanOrEqual reports whether this amount is at least the other.
func (m Money) IsGreaterThanOrEqual(other Money) bool {
	return m.amount >= other.amount
}

// Equals compares two Money value objects.
func (m Money) Equals(other Money) bool {
	return m.amount == other.amount && m.currency == other.currency
}
