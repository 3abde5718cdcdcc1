package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/application-tracker/internal/schemas"
	"github.com/jonathan/application-tracker/internal/store"
	"github.com/xeipuuv/gojsonschema"
)

// ErrForbidden indicates the caller is authenticated but does not own the resource.
var ErrForbidden = errors.New("forbidden")

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrUserNotFound indicates user was not found
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrPasswordMismatch indicates current password is incorrect
type ErrPasswordMismatch struct{}

func (e *ErrPasswordMismatch) Error() string {
	return "current password is incorrect"
}

// ErrValidation indicates request validation failure outside the schema contract,
// such as a malformed path parameter.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		emailExists  *ErrEmailAlreadyExists
		invalidCreds *ErrInvalidCredentials
		mismatch     *ErrPasswordMismatch
		userNotFound *ErrUserNotFound
		validation   *ErrValidation
		schemaErr    *schemas.ValidationError
	)

	switch {
	case err == nil:
		return http.StatusInternalServerError
	case errors.As(err, &validation), errors.As(err, &schemaErr):
		return http.StatusBadRequest
	case errors.As(err, &invalidCreds), errors.As(err, &mismatch):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden), errors.Is(err, store.ErrApplicationNotFound):
		return http.StatusForbidden
	case errors.As(err, &userNotFound), errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &emailExists), errors.Is(err, store.ErrEmailTaken):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// errorResponse writes an error JSON response. An empty field is omitted.
func errorResponse(w http.ResponseWriter, status int, message, field string) {
	jsonResponse(w, status, errorBody{Message: message, Field: field})
}

// writeError maps err to a status and a client-facing message.
// Internal failures are logged and answered with a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)

	var (
		validation *ErrValidation
		schemaErr  *schemas.ValidationError
	)
	switch {
	case errors.As(err, &schemaErr):
		first := schemaErr.First()
		field := first.Field
		if field == gojsonschema.STRING_CONTEXT_ROOT {
			field = ""
		}
		errorResponse(w, status, first.Message, field)
	case errors.As(err, &validation):
		errorResponse(w, status, validation.Message, validation.Field)
	case status == http.StatusInternalServerError:
		log.Printf("[error] %s %s: %v", r.Method, r.URL.Path, err)
		errorResponse(w, status, "Internal server error", "")
	default:
		errorResponse(w, status, clientMessage(err, status), "")
	}
}

func clientMessage(err error, status int) string {
	var emailExists *ErrEmailAlreadyExists
	switch {
	case status == http.StatusForbidden:
		return "Forbidden"
	case errors.As(err, &emailExists), errors.Is(err, store.ErrEmailTaken):
		return "Email already registered"
	case status == http.StatusUnauthorized:
		var mismatch *ErrPasswordMismatch
		if errors.As(err, &mismatch) {
			return "Current password is incorrect"
		}
		return "Invalid email or password"
	case status == http.StatusNotFound:
		var userNotFound *ErrUserNotFound
		if errors.As(err, &userNotFound) {
			return "User not found"
		}
		return "Not found"
	default:
		return http.StatusText(status)
	}
}
