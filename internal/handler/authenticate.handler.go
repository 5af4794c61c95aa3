package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"notes-service/pkg/response"
)

// Signup handles POST /api/users/signup.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.Email == "" || req.Name == "" || req.Password == "" {
		response.Error(w, http.StatusBadRequest, "All fields required")
		return
	}

	user, err := h.uc.SignupUser(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Signup successful, please request OTP",
		"userId":  user.ID,
	})
}

// Login handles POST /api/users/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.Email == "" || req.Password == "" {
		response.Error(w, http.StatusBadRequest, "Email and password required")
		return
	}

	_, token, err := h.uc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"token":   token,
	})
}

// GoogleLogin handles POST /api/users/google-login.
func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req GoogleLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.IDToken == "" {
		response.Error(w, http.StatusBadRequest, "Google token required")
		return
	}

	user, token, err := h.uc.GoogleLogin(r.Context(), req.IDToken)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Google login successful",
		"token":   token,
		"user":    user.Profile(),
	})
}

// ValidateToken handles GET /api/users/validate-token.
func (h *AuthHandler) ValidateToken(w http.ResponseWriter, r *http.Request) {
	header := r.Header.Get("Authorization")
	if header == "" {
		response.Error(w, http.StatusUnauthorized, "No token provided")
		return
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		response.Error(w, http.StatusUnauthorized, "No token provided")
		return
	}

	user, err := h.uc.ValidateToken(r.Context(), parts[1])
	if err != nil {
		writeAuthError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{
		"valid": true,
		"user":  user.Profile(),
	})
}
