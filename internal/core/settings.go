package core

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// MaxCurrencyLen bounds the currency symbol at the input boundary.
// Stored values are not re-checked; the limit only guards new input.
const MaxCurrencyLen = 3

// DefaultCurrency is the fallback display symbol.
const DefaultCurrency = "₹"

var ErrInvalidCurrency = errors.New("invalid currency symbol")

type (
	// Settings is the single persisted display-preference record.
	Settings struct {
		Currency string `json:"currency"`
	}

	// SettingsPatch carries a partial settings update.
	SettingsPatch struct {
		Currency *string `json:"currency,omitempty"`
	}
)

// DefaultSettings returns the record used when nothing is stored.
func DefaultSettings() Settings {
	return Settings{Currency: DefaultCurrency}
}

// DefaultCategories is the set seeded on first use.
func DefaultCategories() []string {
	return []string{"Salary", "Food", "Transport", "Utilities", "Other"}
}

// Normalize resolves falsy stored values to the defaults so callers always
// see a usable currency symbol.
func (s Settings) Normalize() Settings {
	if strings.TrimSpace(s.Currency) == "" {
		s.Currency = DefaultCurrency
	}
	return s
}

// ApplyToDefaults shallow-merges the patch onto the default record.
// Fields absent from the patch revert to their defaults; callers must
// resend unrelated fields to preserve them.
func (p SettingsPatch) ApplyToDefaults() Settings {
	s := DefaultSettings()
	if p.Currency != nil && strings.TrimSpace(*p.Currency) != "" {
		s.Currency = strings.TrimSpace(*p.Currency)
	}
	return s
}

// ValidateCurrency enforces the input-boundary limit on symbols.
func ValidateCurrency(symbol string) error {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" || utf8.RuneCountInString(symbol) > MaxCurrencyLen {
		return ErrInvalidCurrency
	}
	return nil
}
