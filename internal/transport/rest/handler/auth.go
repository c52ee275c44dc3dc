package handler

import (
	"net/http"

	"github.com/SirPenguin555/Whats-That-Color/internal/service"
)

// AuthHandler handles player identity endpoints
type AuthHandler struct {
	authSvc *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authSvc *service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// IssueAnonymous handles POST /v1/players/anonymous
func (h *AuthHandler) IssueAnonymous(w http.ResponseWriter, r *http.Request) {
	resp, err := h.authSvc.IssueAnonymousPlayer()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue player token")
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}
