package report

import (
	"testing"

	"fintrack/internal/core"
)

func sample() []core.Transaction {
	return []core.Transaction{
		tx(core.Expense, "10", "Food", "2024-01-15"),
		tx(core.Income, "20", "Salary", "2024-03-02"),
		tx(core.Expense, "5", "food", "2023-07-09"),
		tx(core.Expense, "1", "", ""),
	}
}

func TestFilterIdentity(t *testing.T) {
	txs := sample()
	got := Filter(txs, NewCriteria("", "", ""))
	if len(got) != len(txs) {
		t.Fatalf("all/all/all must return the full list, got %d of %d", len(got), len(txs))
	}
	for i := range got {
		if got[i].ID != txs[i].ID {
			t.Fatalf("order changed at %d", i)
		}
	}
}

func TestFilterIdempotent(t *testing.T) {
	c := NewCriteria("2024", "01", "all")
	once := Filter(sample(), c)
	twice := Filter(once, c)
	if len(once) != len(twice) {
		t.Fatalf("filter not idempotent: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].ID != twice[i].ID {
			t.Fatalf("idempotence broken at %d", i)
		}
	}
}

func TestFilterYearMonth(t *testing.T) {
	txs := []core.Transaction{
		tx(core.Expense, "1", "A", "2024-01-15"),
		tx(core.Expense, "1", "A", "2024-03-02"),
	}

	cases := []struct {
		year, month string
		want        int
	}{
		{"2024", "all", 2},
		{"2024", "02", 0},
		{"2023", "all", 0},
		{"2024", "01", 1},
		{"all", "01", 2}, // month ignored when year is unconstrained
	}
	for _, tc := range cases {
		got := Filter(txs, NewCriteria(tc.year, tc.month, "all"))
		if len(got) != tc.want {
			t.Fatalf("year=%s month=%s: expected %d, got %d", tc.year, tc.month, tc.want, len(got))
		}
	}
}

func TestFilterCategoryCaseInsensitive(t *testing.T) {
	got := Filter(sample(), NewCriteria("all", "all", "FOOD"))
	if len(got) != 2 {
		t.Fatalf("expected both Food rows, got %d", len(got))
	}
}

func TestFilteredTotalsRecomputed(t *testing.T) {
	got := Sum(Filter(sample(), NewCriteria("2024", "all", "all")))
	if got.Income.String() != "20" || got.Expense.String() != "10" || got.Balance.String() != "10" {
		t.Fatalf("unexpected filtered totals: %+v", got)
	}
}

func TestUndatedExcludedFromConstrainedYears(t *testing.T) {
	got := Filter(sample(), NewCriteria("2024", "all", "all"))
	for _, tx := range got {
		if tx.Date == "" {
			t.Fatalf("undated transaction passed a year filter")
		}
	}
}
