package core

import "testing"

func TestSettingsNormalize(t *testing.T) {
	if got := (Settings{Currency: ""}).Normalize(); got.Currency != DefaultCurrency {
		t.Fatalf("expected default currency, got %q", got.Currency)
	}
	if got := (Settings{Currency: "  "}).Normalize(); got.Currency != DefaultCurrency {
		t.Fatalf("expected default currency for blank, got %q", got.Currency)
	}
	if got := (Settings{Currency: "$"}).Normalize(); got.Currency != "$" {
		t.Fatalf("expected $ preserved, got %q", got.Currency)
	}
}

func TestSettingsPatchAppliesToDefaults(t *testing.T) {
	usd := "$"
	if got := (SettingsPatch{Currency: &usd}).ApplyToDefaults(); got.Currency != "$" {
		t.Fatalf("expected $, got %q", got.Currency)
	}
	// A patch without the field reverts it to the default, by design.
	if got := (SettingsPatch{}).ApplyToDefaults(); got.Currency != DefaultCurrency {
		t.Fatalf("expected default, got %q", got.Currency)
	}
}

func TestValidateCurrency(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"$", true},
		{"USD", true},
		{"€", true},
		{"", false},
		{"   ", false},
		{"ABCD", false},
	}
	for _, tc := range cases {
		err := ValidateCurrency(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("%q expected ok, got %v", tc.in, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}

func TestDefaultCategories(t *testing.T) {
	cats := DefaultCategories()
	if len(cats) == 0 {
		t.Fatalf("defaults must not be empty")
	}
	// Callers may mutate the returned slice; a second call must be pristine.
	cats[0] = "mutated"
	if DefaultCategories()[0] == "mutated" {
		t.Fatalf("DefaultCategories must return a fresh slice")
	}
}
