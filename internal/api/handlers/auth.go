package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/doafacil/doafacil/internal/domain"
	"github.com/doafacil/doafacil/internal/service"
	"github.com/doafacil/doafacil/internal/validation"
)

// AuthHandler handles admin authentication requests.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validation.ValidateLogin(&req); !errs.Empty() {
		respondValidationError(w, errs)
		return
	}

	token, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		log.Printf("Failed to log in admin: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	respondSuccess(w, http.StatusOK, token, "")
}
