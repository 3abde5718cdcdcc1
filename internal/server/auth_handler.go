package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/application-tracker/internal/schemas"
	"github.com/jonathan/application-tracker/internal/types"
	contract "github.com/jonathan/application-tracker/schemas"
)

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	userService *UserService
	jwtService  *JWTService
	validator   *schemas.Validator
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(userService *UserService, jwtService *JWTService, validator *schemas.Validator) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		jwtService:  jwtService,
		validator:   validator,
	}
}

// Register handles user registration requests.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req types.RegisterRequest
	if err := h.validator.Decode(contract.AuthRegister, body, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.respondWithToken(w, r, http.StatusCreated, user)
}

// Login handles user login requests.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := h.decodeStruct(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.userService.Login(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.respondWithToken(w, r, http.StatusOK, user)
}

// CurrentUser returns the authenticated account.
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(r.Context(), identity.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	jsonResponse(w, http.StatusOK, user)
}

// UpdatePassword handles password update requests for the authenticated account.
func (h *AuthHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req types.UpdatePasswordRequest
	if err := h.decodeStruct(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.userService.UpdatePassword(r.Context(), identity.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		writeError(w, r, err)
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "Password updated successfully"})
}

// decodeStruct decodes a body that has no schema document and applies its struct rules.
func (h *AuthHandler) decodeStruct(w http.ResponseWriter, r *http.Request, dst any) error {
	body, err := readBody(w, r)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return &ErrValidation{Message: "Invalid request body"}
	}
	return h.validator.ValidateStruct(dst)
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, r *http.Request, status int, user *types.User) {
	token, err := h.jwtService.GenerateToken(user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	jsonResponse(w, status, types.LoginResponse{
		User:  user,
		Token: token,
	})
}
