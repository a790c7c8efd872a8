package core

import (
	"encoding/json"
	"testing"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"1", "1", true},
		{"1.0", "1", true},
		{"1.23", "1.23", true},
		{"1,23", "1.23", true},
		{"0.01", "0.01", true},
		{" 2.50 ", "2.5", true},
		{"-1", "", false},
		{"+1", "", false},
		{"0", "", false},
		{"abc", "", false},
		{"1.2.3", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got.String() != tc.out {
				t.Fatalf("%q expected %s, got %s (err=%v)", tc.in, tc.out, got, err)
			}
		} else if err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}

func TestAmountUnmarshalLenient(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		{`12.34`, "12.34"},
		{`"12.34"`, "12.34"},
		{`0`, "0"},
		{`null`, "0"},
		{`"abc"`, "0"},
		{`"NaN"`, "0"},
		{`""`, "0"},
	}
	for _, tc := range cases {
		var a Amount
		if err := json.Unmarshal([]byte(tc.in), &a); err != nil {
			t.Fatalf("%s: unexpected error %v", tc.in, err)
		}
		if a.String() != tc.out {
			t.Fatalf("%s: expected %s, got %s", tc.in, tc.out, a)
		}
	}
}

func TestAmountMarshalBareNumber(t *testing.T) {
	b, err := json.Marshal(AmountFromString("12.34"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != "12.34" {
		t.Fatalf("expected 12.34, got %s", b)
	}
}
