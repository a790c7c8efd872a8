package report

import (
	"strings"

	"fintrack/internal/core"
)

// All is the unconstrained value of a filter axis.
const All = "all"

// Criteria is the three-axis filter over year, month, and category.
// Each axis is either All or a specific value; the zero value is
// normalized to All by NewCriteria.
type Criteria struct {
	Year     string
	Month    string
	Category string
}

// NewCriteria builds a Criteria, treating empty axes as All.
func NewCriteria(year, month, category string) Criteria {
	norm := func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return All
		}
		return v
	}
	return Criteria{Year: norm(year), Month: norm(month), Category: norm(category)}
}

// Matches reports whether a transaction passes every axis.
//
// The month axis only applies when the year axis is constrained as well: a
// month filter with year=All matches everything. That asymmetry mirrors
// the history view, where the month selector is disabled until a year is
// chosen.
func (c Criteria) Matches(tx core.Transaction) bool {
	if c.Year != All && !strings.HasPrefix(tx.Date, c.Year) {
		return false
	}
	if c.Month != All && c.Year != All {
		want := c.Year + "-" + c.Month
		if len(tx.Date) < 7 || tx.Date[:7] != want {
			return false
		}
	}
	if c.Category != All {
		got := strings.TrimSpace(tx.Category)
		if !strings.EqualFold(got, strings.TrimSpace(c.Category)) {
			return false
		}
	}
	return true
}

// Filter applies the criteria in a single linear pass. Totals for the
// filtered view are recomputed by the caller via Sum.
func Filter(txs []core.Transaction, c Criteria) []core.Transaction {
	out := make([]core.Transaction, 0, len(txs))
	for _, tx := range txs {
		if c.Matches(tx) {
			out = append(out, tx)
		}
	}
	return out
}
