package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jonathan/application-tracker/internal/store"
	"github.com/jonathan/application-tracker/internal/types"
	contract "github.com/jonathan/application-tracker/schemas"
)

// parseID reads the {id} path parameter. Anything but a positive integer is a 400.
func parseID(r *http.Request, message string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		return 0, &ErrValidation{Field: "id", Message: message}
	}
	return id, nil
}

// handleListApplications returns the caller's applications, optionally narrowed by
// ?status= (exact, "All" for any) and ?search= (company or role substring).
func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	apps, err := s.applications.ListApplications(r.Context(), identity.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	filter := types.ListFilter{
		Status: r.URL.Query().Get("status"),
		Search: r.URL.Query().Get("search"),
	}
	jsonResponse(w, http.StatusOK, types.FilterApplications(apps, filter))
}

// handleGetApplication returns one application with its interviews.
// Absent is 404; present but owned by someone else is 403.
func (s *Server) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, err := parseID(r, "Invalid application ID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	app, err := s.applications.GetApplication(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		errorResponse(w, http.StatusNotFound, "Application not found", "")
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	if app.UserID != identity.UserID {
		writeError(w, r, ErrForbidden)
		return
	}

	jsonResponse(w, http.StatusOK, app)
}

func (s *Server) handleCreateApplication(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req types.CreateApplicationRequest
	if err := s.validator.Decode(contract.ApplicationCreate, body, &req); err != nil {
		writeError(w, r, err)
		return
	}

	app, err := s.applications.CreateApplication(r.Context(), identity.UserID, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	jsonResponse(w, http.StatusCreated, app)
}

// handleUpdateApplication applies a partial update. A missing or foreign row is 404.
func (s *Server) handleUpdateApplication(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, err := parseID(r, "Invalid application ID")
	if err != nil {
		writeError(w, r, err)
		return
	}
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req types.UpdateApplicationRequest
	if err := s.validator.Decode(contract.ApplicationUpdate, body, &req); err != nil {
		writeError(w, r, err)
		return
	}

	app, err := s.applications.UpdateApplication(r.Context(), id, identity.UserID, &req)
	if errors.Is(err, store.ErrNotFound) {
		errorResponse(w, http.StatusNotFound, "Application not found", "")
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	jsonResponse(w, http.StatusOK, app)
}

// handleDeleteApplication answers 204 whether or not a row was removed.
func (s *Server) handleDeleteApplication(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, err := parseID(r, "Invalid application ID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.applications.DeleteApplication(r.Context(), id, identity.UserID); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
