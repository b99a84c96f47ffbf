// Package money provides an integer minor-unit amount type.
// All stored and computed amounts are int64 minor units (e.g. cents, 分);
// floating point is permitted only at the display boundary.
package money

import (
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Money is a signed amount in minor units.
type Money int64

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return m + other
}

// Sub returns m - other.
func (m Money) Sub(other Money) Money {
	return m - other
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m > 0
}

// Major converts the amount to major units as a float64.
// This crosses the display boundary and must not feed back into arithmetic.
func (m Money) Major() float64 {
	return float64(m) / 100
}

// Display formats the amount with the currency symbol and two decimal
// places for the given locale, e.g. Display(language.SimplifiedChinese,
// currency.CNY) of 123456 minor units renders 1234.56 with a ¥ symbol.
func (m Money) Display(tag language.Tag, unit currency.Unit) string {
	p := message.NewPrinter(tag)
	return p.Sprint(currency.Symbol(unit.Amount(m.Major())))
}
