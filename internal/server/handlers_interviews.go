package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/application-tracker/internal/store"
	"github.com/jonathan/application-tracker/internal/types"
	contract "github.com/jonathan/application-tracker/schemas"
)

// handleCreateInterview attaches an interview to one of the caller's applications.
// A parent that is absent or owned by someone else is 403 and nothing is written.
func (s *Server) handleCreateInterview(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req types.CreateInterviewRequest
	if err := s.validator.Decode(contract.InterviewCreate, body, &req); err != nil {
		writeError(w, r, err)
		return
	}

	parent, err := s.applications.GetApplication(r.Context(), req.ApplicationID.Value)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, r, ErrForbidden)
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	if parent.UserID != identity.UserID {
		writeError(w, r, ErrForbidden)
		return
	}

	// A parent deleted since the check surfaces as store.ErrApplicationNotFound (403).
	interview, err := s.applications.CreateInterview(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	jsonResponse(w, http.StatusCreated, interview)
}

// handleDeleteInterview answers 204 in every case; only the parent's owner removes anything.
func (s *Server) handleDeleteInterview(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, err := parseID(r, "Invalid interview ID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.applications.DeleteInterview(r.Context(), id, identity.UserID); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
