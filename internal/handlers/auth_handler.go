package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"hueareyou/internal/api"
	"hueareyou/internal/models"
	"hueareyou/internal/service"
)

// AuthHandler handles login and sign-up requests
type AuthHandler struct {
	authService *service.AuthService
	logger      *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Login exchanges a name and password for a session token
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, h.logger, http.StatusBadRequest, api.CodeInvalidRequest, "invalid request body", "", err)
		return
	}

	user, issued, err := h.authService.Login(r.Context(), req.Name, req.Password)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, sessionPayload(user, issued))
}

// SignUp registers an account and returns its first session token
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req api.SignUpRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, h.logger, http.StatusBadRequest, api.CodeInvalidRequest, "invalid request body", "", err)
		return
	}

	user, issued, err := h.authService.SignUp(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, sessionPayload(user, issued))
}

func sessionPayload(user *models.User, issued *models.IssuedSession) api.SessionPayload {
	return api.SessionPayload{
		UserID: user.ID,
		Token:  issued.Token,
		Role:   string(user.Role),
	}
}
