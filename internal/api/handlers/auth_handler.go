package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/isdelr/agrasia-be/internal/auth"
	"github.com/isdelr/agrasia-be/internal/services"
	"github.com/rs/zerolog/log"
)

// AuthHandler handles HTTP requests for registration and login.
type AuthHandler struct {
	service services.AuthServiceProvider
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service services.AuthServiceProvider) *AuthHandler {
	return &AuthHandler{service: service}
}

// LoginPayload defines the structure for login requests.
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterPayload defines the structure for registration requests.
type RegisterPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned on successful login.
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	UserName    string `json:"userName"`
}

// Register handles new user registration.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	err := h.service.Register(payload.Name, payload.Email, payload.Password)
	switch {
	case err == nil:
		respondJSON(w, http.StatusCreated, map[string]string{"message": "User registered successfully!"})
	case errors.Is(err, services.ErrValidation):
		respondError(w, http.StatusBadRequest, "All fields are required.")
	case errors.Is(err, services.ErrConflict):
		respondError(w, http.StatusConflict, "User with this email already exists.")
	default:
		log.Error().Err(err).Msg("Failed to register user")
		respondError(w, http.StatusInternalServerError, "Server error during registration.")
	}
}

// Login handles user authentication and token issuance.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	result, err := h.service.Login(payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			log.Warn().Msg("Failed authentication attempt")
			respondError(w, http.StatusUnauthorized, "Invalid credentials.")
			return
		}
		log.Error().Err(err).Msg("Failed to log user in")
		respondError(w, http.StatusInternalServerError, "Server error during login.")
		return
	}

	respondJSON(w, http.StatusOK, LoginResponse{AccessToken: result.Token, UserName: result.UserName})
}

// GetMe returns the identity carried by the caller's token.
func (h *AuthHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve user claims from context")
		respondError(w, http.StatusUnauthorized, "Unauthenticated")
		return
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"name":      claims.Name,
		"email":     claims.Email,
		"expiresAt": expiresAt,
	})
}
