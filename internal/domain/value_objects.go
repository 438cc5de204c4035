package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a decimal amount in major units (49.99) with its ISO currency code.
type Money struct {
	Amount   decimal.Decimal
	Currency string
}

// zeroDecimalCurrencies lists currencies the gateway expects without subunits.
var zeroDecimalCurrencies = map[string]int32{
	"JPY": 0,
	"KRW": 0,
	"VND": 0,
}

const defaultExponent int32 = 2

func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		return Money{}, NewMissingRequiredFieldError("currency")
	}
	if len(currency) != 3 {
		return Money{}, NewInvalidAmountError("currency must be a 3-letter ISO code")
	}
	if !amount.IsPositive() {
		return Money{}, NewInvalidAmountError("amount must be positive")
	}
	return Money{Amount: amount, Currency: currency}, nil
}

// Exponent is the number of subunit digits the gateway uses for the currency.
func (m Money) Exponent() int32 {
	if exp, ok := zeroDecimalCurrencies[m.Currency]; ok {
		return exp
	}
	return defaultExponent
}

// MinorUnits converts the amount to the gateway's integer subunit convention,
// e.g. 100.00 INR -> 10000.
func (m Money) MinorUnits() (int64, error) {
	scaled := m.Amount.Shift(m.Exponent())
	if !scaled.Equal(scaled.Truncate(0)) {
		return 0, NewInvalidAmountError("amount has more precision than " + m.Currency + " allows")
	}
	return scaled.IntPart(), nil
}

// FromMinorUnits is the inverse of MinorUnits.
func FromMinorUnits(units int64, currency string) Money {
	m := Money{Currency: strings.ToUpper(currency)}
	m.Amount = decimal.New(units, -m.Exponent())
	return m
}

// WithinTolerance reports whether both amounts share a currency and differ by
// no more than tolerance.
func (m Money) WithinTolerance(other Money, tolerance decimal.Decimal) bool {
	if m.Currency != other.Currency {
		return false
	}
	return m.Amount.Sub(other.Amount).Abs().LessThanOrEqual(tolerance)
}

func (m Money) String() string {
	return m.Amount.StringFixed(m.Exponent()) + " " + m.Currency
}
