// Package report is the aggregation and filtering engine behind the
// dashboard and history views.
//
// Every function here is pure and side-effect free: it takes a snapshot of
// the transaction list and derives totals, groupings, filter index sets, or
// a filtered subset. Nothing errors; malformed amounts already decode to
// zero and malformed dates simply drop out of the derived sets, so the
// presentation layer can always render a value.
package report

import (
	"sort"
	"strings"

	"fintrack/internal/core"
)

// Totals are the headline figures for a transaction set. Balance is
// exactly Income minus Expense.
type Totals struct {
	Income  core.Amount `json:"income"`
	Expense core.Amount `json:"expense"`
	Balance core.Amount `json:"balance"`
}

// CategoryTotal is one (label, total) pair of a category grouping.
type CategoryTotal struct {
	Label string      `json:"label"`
	Total core.Amount `json:"total"`
}

// Summary is the compact whole-ledger report: the signless sum of every
// amount and the record count.
type Summary struct {
	Total core.Amount `json:"total"`
	Count int         `json:"count"`
}

// Sum computes income, expense, and balance over the supplied list.
func Sum(txs []core.Transaction) Totals {
	var t Totals
	for _, tx := range txs {
		switch tx.Type {
		case core.Income:
			t.Income = t.Income.Add(tx.Amount)
		case core.Expense:
			t.Expense = t.Expense.Add(tx.Amount)
		}
	}
	t.Balance = t.Income.Sub(t.Expense)
	return t
}

// Summarize reports the overall amount sum and record count.
func Summarize(txs []core.Transaction) Summary {
	var total core.Amount
	for _, tx := range txs {
		total = total.Add(tx.Amount)
	}
	return Summary{Total: total, Count: len(txs)}
}

// GroupByCategory partitions the list by display category, folding the
// empty label into core.OtherCategory and summing amounts per group.
// Groups appear in first-encountered order; an empty input produces no
// groups at all.
func GroupByCategory(txs []core.Transaction) []CategoryTotal {
	idx := make(map[string]int)
	var groups []CategoryTotal
	for _, tx := range txs {
		label := tx.DisplayCategory()
		if i, ok := idx[label]; ok {
			groups[i].Total = groups[i].Total.Add(tx.Amount)
			continue
		}
		idx[label] = len(groups)
		groups = append(groups, CategoryTotal{Label: label, Total: tx.Amount})
	}
	return groups
}

// TopCategory returns the group with the highest total, ties broken by
// first-encountered order. The second result is false when there are no
// transactions.
func TopCategory(txs []core.Transaction) (CategoryTotal, bool) {
	groups := GroupByCategory(txs)
	if len(groups) == 0 {
		return CategoryTotal{}, false
	}
	top := groups[0]
	for _, g := range groups[1:] {
		if g.Total.GreaterThan(top.Total.Decimal) {
			top = g
		}
	}
	return top, true
}

// Years returns the distinct YYYY values present in the data, ascending.
// Transactions without a date are excluded.
func Years(txs []core.Transaction) []string {
	seen := map[string]struct{}{}
	var years []string
	for _, tx := range txs {
		if len(tx.Date) < 4 {
			continue
		}
		y := tx.Date[:4]
		if _, ok := seen[y]; ok {
			continue
		}
		seen[y] = struct{}{}
		years = append(years, y)
	}
	sort.Strings(years)
	return years
}

// YearsDesc is Years in most-recent-first order, the default for display.
func YearsDesc(txs []core.Transaction) []string {
	years := Years(txs)
	for i, j := 0, len(years)-1; i < j; i, j = i+1, j-1 {
		years[i], years[j] = years[j], years[i]
	}
	return years
}

// MonthsForYear returns the distinct MM values present within a year,
// ascending.
func MonthsForYear(txs []core.Transaction, year string) []string {
	seen := map[string]struct{}{}
	var months []string
	for _, tx := range txs {
		if len(tx.Date) < 7 || !strings.HasPrefix(tx.Date, year) {
			continue
		}
		m := tx.Date[5:7]
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		months = append(months, m)
	}
	sort.Strings(months)
	return months
}

// UsedCategories returns the distinct non-empty, trimmed category labels
// actually present in the data, sorted lexicographically. This is
// independent of the separately maintained category list.
func UsedCategories(txs []core.Transaction) []string {
	seen := map[string]struct{}{}
	var cats []string
	for _, tx := range txs {
		c := strings.TrimSpace(tx.Category)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return cats
}

// SortByDateDesc returns a copy of the list in descending date order.
// Entries with missing or unparsable dates sort as the earliest possible
// value. The sort is stable, so equal dates keep their input order.
func SortByDateDesc(txs []core.Transaction) []core.Transaction {
	out := make([]core.Transaction, len(txs))
	copy(out, txs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].When().After(out[j].When())
	})
	return out
}
