package http

import (
	"log/slog"
	"net/http"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/export"
	"fintrack/internal/log"
	"fintrack/internal/report"
)

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	txs := s.service.Transactions(r.Context())
	writeJSON(w, r, http.StatusOK, txs)
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	tx, found := s.service.Transaction(r.Context(), id)
	if !found {
		writeError(w, r, http.StatusNotFound, "transaction not found")
		return
	}
	writeJSON(w, r, http.StatusOK, tx)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var in core.TransactionInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	in.Category = sanitizeInput(in.Category)
	in.Notes = sanitizeInput(in.Notes)

	if err := in.Validate(); err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}

	tx := s.service.Create(r.Context(), in)
	s.invalidateReports()

	slog.InfoContext(r.Context(), "Transaction created",
		log.FieldTransactionID, tx.ID,
		"type", string(tx.Type),
		log.FieldCategory, tx.Category,
		log.FieldAmount, tx.Amount.String())

	writeJSON(w, r, http.StatusCreated, tx)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var patch core.TransactionPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	if patch.Category != nil {
		clean := sanitizeInput(*patch.Category)
		patch.Category = &clean
	}
	if patch.Notes != nil {
		clean := sanitizeInput(*patch.Notes)
		patch.Notes = &clean
	}
	if patch.Date != nil {
		if _, err := time.Parse("2006-01-02", *patch.Date); err != nil {
			writeError(w, r, http.StatusUnprocessableEntity, core.ErrInvalidDate.Error())
			return
		}
	}
	if patch.Time != nil && *patch.Time != "" {
		if _, err := time.Parse("15:04", *patch.Time); err != nil {
			writeError(w, r, http.StatusUnprocessableEntity, core.ErrInvalidDate.Error())
			return
		}
	}
	if patch.Type != nil && !patch.Type.IsValid() {
		writeError(w, r, http.StatusUnprocessableEntity, core.ErrInvalidType.Error())
		return
	}
	if patch.Amount != nil && !patch.Amount.Positive() {
		writeError(w, r, http.StatusUnprocessableEntity, core.ErrInvalidAmount.Error())
		return
	}

	tx, found := s.service.Update(r.Context(), id, patch)
	if !found {
		writeError(w, r, http.StatusNotFound, "transaction not found")
		return
	}
	s.invalidateReports()

	writeJSON(w, r, http.StatusOK, tx)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if !s.service.Delete(r.Context(), id) {
		writeError(w, r, http.StatusNotFound, "transaction not found")
		return
	}
	s.invalidateReports()

	slog.InfoContext(r.Context(), "Transaction deleted", log.FieldTransactionID, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExportTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	criteria := report.NewCriteria(q.Get("year"), q.Get("month"), q.Get("category"))

	txs := s.service.Transactions(r.Context())
	txs = report.SortByDateDesc(report.Filter(txs, criteria))

	data, err := export.TransactionsXLSX(txs)
	if err != nil {
		slog.ErrorContext(r.Context(), "Export failed", log.FieldError, err, log.FieldCount, len(txs))
		writeError(w, r, http.StatusInternalServerError, "export failed")
		return
	}

	filename := "transactions-" + time.Now().Format("2006-01-02") + ".xlsx"
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
