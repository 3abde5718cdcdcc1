package server

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	contract "github.com/jonathan/application-tracker/schemas"
)

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	stats, err := s.applications.GetStats(r.Context(), identity.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	jsonResponse(w, http.StatusOK, stats)
}

// handleGetSchema serves a request contract document so clients can validate before submitting.
func (s *Server) handleGetSchema(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !slices.Contains(contract.Names(), name) {
		errorResponse(w, http.StatusNotFound, "Schema not found", "")
		return
	}

	doc, err := contract.Read(name)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/schema+json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}
