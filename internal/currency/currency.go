// Package currency defines the supported currencies and conversion between
// display amounts and integer minor units. The minor-unit scale is used only
// at the API boundary; all ledger arithmetic stays in integers.
package currency

import (
	"errors"
	"fmt"
	"math"

	"github.com/Rhymond/go-money"
)

var ErrUnsupportedCurrency = errors.New("unsupported currency code")

// Codes lists the ISO-4217 codes expenses may be recorded in.
var Codes = []string{"USD", "EUR", "GBP", "JPY", "CNY", "AUD", "CAD", "CHF", "INR", "MXN"}

var supported = func() map[string]bool {
	m := make(map[string]bool, len(Codes))
	for _, c := range Codes {
		m[c] = true
	}
	return m
}()

// IsSupported reports whether code is a currency this ledger accepts.
func IsSupported(code string) bool {
	return supported[code]
}

// Scale returns the minor-unit divisor for a currency: 100 for USD (cents),
// 1 for JPY (no minor unit), and so on.
func Scale(code string) (int64, error) {
	if !IsSupported(code) {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, code)
	}
	c := money.GetCurrency(code)
	if c == nil {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, code)
	}
	return int64(math.Pow10(c.Fraction)), nil
}

// ToMinorUnits converts a display amount (e.g. 12.34 dollars) to minor units
// (1234 cents), rounding to the nearest unit.
func ToMinorUnits(amount float64, code string) (int64, error) {
	scale, err := Scale(code)
	if err != nil {
		return 0, err
	}
	return int64(math.Round(amount * float64(scale))), nil
}

// FromMinorUnits converts minor units back to a display amount.
func FromMinorUnits(amount int64, code string) (float64, error) {
	scale, err := Scale(code)
	if err != nil {
		return 0, err
	}
	return float64(amount) / float64(scale), nil
}

// Format renders a minor-unit amount with its currency symbol, e.g.
// Format(123456, "USD") == "$1,234.56".
func Format(amount int64, code string) string {
	return money.New(amount, code).Display()
}
