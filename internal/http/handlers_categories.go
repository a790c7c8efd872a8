package http

import (
	"net/http"
)

type categoryRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	cats := s.store.Categories(r.Context())
	writeJSON(w, r, http.StatusOK, cats)
}

func (s *Server) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	name := sanitizeInput(req.Name)
	if name == "" {
		writeError(w, r, http.StatusUnprocessableEntity, "category name is required")
		return
	}

	cats := s.store.AddCategory(r.Context(), name)
	writeJSON(w, r, http.StatusCreated, cats)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	// PathValue already carries the decoded segment, so names with
	// percent signs arrive as-is.
	name := r.PathValue("name")
	if name == "" {
		writeError(w, r, http.StatusBadRequest, "invalid category name")
		return
	}

	// Deleting a category never cascades; existing transactions keep
	// their label and fold into the overview as before.
	cats := s.store.DeleteCategory(r.Context(), name)
	writeJSON(w, r, http.StatusOK, cats)
}
