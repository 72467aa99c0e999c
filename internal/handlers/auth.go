package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/sessions"

	"raffle-marketplace-frontend/internal/middleware"
	"raffle-marketplace-frontend/internal/services"
)

// AuthHandler exchanges credentials with the backend and keeps the issued
// identity in the session. Accounts themselves live in the backend.
type AuthHandler struct {
	authService  services.AuthService
	sessionStore sessions.Store
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService services.AuthService, sessionStore sessions.Store) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		sessionStore: sessionStore,
	}
}

// Login authenticates against the backend and establishes the session
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil || req.Email == "" || req.Password == "" {
		writeJSONError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	result, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeJSONError(w, http.StatusUnauthorized, services.UserMessage(err))
		return
	}

	if err := middleware.StoreIdentity(h.sessionStore, w, r, result.User, result.Token); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to save session")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": result.User})
}

// Logout drops the session identity and best-effort invalidates the
// backend token
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token, ok := services.TokenFromContext(r.Context()); ok {
		if err := h.authService.Logout(r.Context(), token); err != nil {
			log.Printf("backend logout failed: %v", err)
		}
	}

	if err := middleware.ClearIdentity(h.sessionStore, w, r); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to clear session")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}
