package http

import (
	"log/slog"
	"net/http"
	"strings"

	"fintrack/internal/core"
	"fintrack/internal/report"
)

type criteriaView struct {
	Year     string `json:"year"`
	Month    string `json:"month"`
	Category string `json:"category"`
}

// overviewResponse is the filtered history view: the matching records plus
// every figure the frontend derives from them, recomputed server-side.
type overviewResponse struct {
	Criteria       criteriaView           `json:"criteria"`
	Transactions   []core.Transaction     `json:"transactions"`
	Totals         report.Totals          `json:"totals"`
	Categories     []report.CategoryTotal `json:"categories"`
	TopCategory    *report.CategoryTotal  `json:"top_category,omitempty"`
	Years          []string               `json:"years"`
	Months         []string               `json:"months"`
	UsedCategories []string               `json:"used_categories"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	txs := s.service.Transactions(r.Context())
	writeJSON(w, r, http.StatusOK, report.Summarize(txs))
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	criteria := report.NewCriteria(q.Get("year"), q.Get("month"), q.Get("category"))

	key := overviewCacheKey(criteria)
	if cached, found := s.overviewCache.Get(key); found {
		slog.DebugContext(r.Context(), "Overview cache hit", "key", key)
		writeJSON(w, r, http.StatusOK, cached)
		return
	}

	txs := s.service.Transactions(r.Context())
	filtered := report.Filter(txs, criteria)
	sorted := report.SortByDateDesc(filtered)

	resp := overviewResponse{
		Criteria: criteriaView{
			Year:     criteria.Year,
			Month:    criteria.Month,
			Category: criteria.Category,
		},
		Transactions: sorted,
		Totals:       report.Sum(filtered),
		Categories:   report.GroupByCategory(filtered),
		// Selector indexes cover the whole ledger, not the filtered
		// subset, so narrowing never empties them.
		Years:          report.YearsDesc(txs),
		Months:         report.MonthsForYear(txs, criteria.Year),
		UsedCategories: report.UsedCategories(txs),
	}
	if top, ok := report.TopCategory(filtered); ok {
		resp.TopCategory = &top
	}

	s.overviewCache.Set(key, resp)
	writeJSON(w, r, http.StatusOK, resp)
}

func overviewCacheKey(c report.Criteria) string {
	return strings.Join([]string{c.Year, c.Month, strings.ToLower(c.Category)}, "|")
}
