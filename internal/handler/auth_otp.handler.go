package handler

import (
	"encoding/json"
	"net/http"

	"notes-service/pkg/middleware"
	"notes-service/pkg/response"
)

// RequestOTP handles POST /api/users/request-otp.
func (h *AuthHandler) RequestOTP(w http.ResponseWriter, r *http.Request) {
	var req RequestOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.Email == "" {
		response.Error(w, http.StatusBadRequest, "Email required")
		return
	}

	if err := h.uc.RequestVerificationOTP(r.Context(), req.Email); err != nil {
		writeAuthError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "OTP sent to email",
	})
}

// VerifyOTP handles POST /api/users/verify-otp. A successful verification
// logs the user in.
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.Email == "" || req.OTP == "" {
		response.Error(w, http.StatusBadRequest, "Email and OTP required")
		return
	}

	_, token, err := h.uc.VerifyOTP(r.Context(), req.Email, req.OTP)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "User verified successfully",
		"token":   token,
	})
}

// ForgotPassword handles POST /api/users/forgot-password.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.Email == "" {
		response.Error(w, http.StatusBadRequest, "Email required")
		return
	}

	if err := h.uc.RequestPasswordReset(r.Context(), req.Email); err != nil {
		writeAuthError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Reset password OTP sent to " + req.Email,
	})
}

// VerifyResetOTP handles POST /api/users/verify-reset-otp. On success the
// caller receives a short-lived reset-authorization token for
// /reset-password.
func (h *AuthHandler) VerifyResetOTP(w http.ResponseWriter, r *http.Request) {
	var req VerifyResetOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.Email == "" || req.ResetOTP == "" {
		response.Error(w, http.StatusBadRequest, "Email and OTP required")
		return
	}

	token, err := h.uc.VerifyPasswordResetOTP(r.Context(), req.Email, req.ResetOTP)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "OTP verified, you can reset password now",
		"token":   token,
	})
}

// ResetPassword handles POST /api/users/reset-password. The route sits
// behind RequireResetAuth; the email comes from the reset token, not the
// request body, so a token for one address can never reset another.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.ResetEmailFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.NewPassword == "" {
		response.Error(w, http.StatusBadRequest, "New password required")
		return
	}

	if err := h.uc.ResetPassword(r.Context(), email, req.NewPassword); err != nil {
		writeAuthError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Password updated successfully",
	})
}
