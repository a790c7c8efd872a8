package http

import (
	"net/http"

	"fintrack/internal/core"
)

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.store.Settings(r.Context()))
}

func (s *Server) handleSaveSettings(w http.ResponseWriter, r *http.Request) {
	var patch core.SettingsPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	if patch.Currency != nil {
		if err := core.ValidateCurrency(*patch.Currency); err != nil {
			writeError(w, r, http.StatusUnprocessableEntity, err.Error())
			return
		}
	}

	saved := s.store.SaveSettings(r.Context(), patch)
	writeJSON(w, r, http.StatusOK, saved)
}
