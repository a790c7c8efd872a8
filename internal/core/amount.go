// Package core holds the pure domain types of the tracker: transactions,
// monetary amounts, and display settings.
//
// This file contains amount parsing and the lenient JSON codec. Amounts
// are decimal magnitudes; anything that fails to parse coerces to zero
// rather than erroring, so aggregate views can always be rendered.
package core

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Amount is a decimal monetary magnitude. The zero value is zero.
type Amount struct {
	decimal.Decimal
}

// NewAmount builds an Amount from a decimal value.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// AmountFromString builds an Amount from a decimal literal, coercing
// anything unparsable to zero.
func AmountFromString(s string) Amount {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Amount{}
	}
	return Amount{Decimal: d}
}

// Positive reports whether the amount is strictly greater than zero.
func (a Amount) Positive() bool {
	return a.Decimal.IsPositive()
}

// Add returns a + b.
func (a Amount) Add(b Amount) Amount {
	return Amount{Decimal: a.Decimal.Add(b.Decimal)}
}

// Sub returns a - b.
func (a Amount) Sub(b Amount) Amount {
	return Amount{Decimal: a.Decimal.Sub(b.Decimal)}
}

// Equal reports numeric equality.
func (a Amount) Equal(b Amount) bool {
	return a.Decimal.Equal(b.Decimal)
}

// MarshalJSON emits the amount as a bare JSON number (12.34, not "12.34"),
// matching the transaction wire shape.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

// UnmarshalJSON accepts JSON numbers and quoted decimal strings. Null,
// NaN, and garbage coerce to zero instead of failing: a malformed amount
// must contribute 0 to every total rather than break a view.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	s = strings.Trim(s, `"`)
	if s == "" || s == "null" {
		a.Decimal = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		a.Decimal = decimal.Zero
		return nil
	}
	a.Decimal = d
	return nil
}

// ParseAmount converts a user-entered decimal string into an Amount.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators.
// Signs, empty input, and non-numeric input are rejected: the form
// boundary only admits strictly positive magnitudes.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}, ErrInvalidAmount
	}
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return Amount{}, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.Count(s, ".") > 1 {
		return Amount{}, ErrInvalidAmount
	}
	for _, r := range s {
		if !unicode.IsDigit(r) && r != '.' {
			return Amount{}, ErrInvalidAmount
		}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, ErrInvalidAmount
	}
	if !d.IsPositive() {
		return Amount{}, ErrInvalidAmount
	}
	return Amount{Decimal: d}, nil
}
