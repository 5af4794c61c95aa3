package handler

import (
	"errors"
	"net/http"

	"notes-service/internal/usecase"
	"notes-service/pkg/response"
	"notes-service/pkg/xerrors"
)

type AuthHandler struct {
	uc *usecase.AuthUsecase
}

func NewAuthHandler(uc *usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// writeAuthError maps the engine's error taxonomy onto HTTP statuses: 404
// for missing accounts, 401 for credential and token failures, 400 for OTP
// and input problems, 409 for duplicate signups. Infrastructure errors fall
// through to 500 without leaking the cause.
func writeAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, xerrors.ErrUserNotFound):
		response.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, xerrors.ErrUserAlreadyExists):
		response.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, xerrors.ErrInvalidCredentials),
		errors.Is(err, xerrors.ErrNoPasswordSet),
		errors.Is(err, xerrors.ErrNotVerified),
		errors.Is(err, xerrors.ErrInvalidGoogleToken),
		errors.Is(err, xerrors.ErrInvalidToken):
		response.Error(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, xerrors.ErrAlreadyVerified),
		errors.Is(err, xerrors.ErrOTPNotRequested),
		errors.Is(err, xerrors.ErrOTPMismatch),
		errors.Is(err, xerrors.ErrOTPExpired):
		response.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, xerrors.ErrOTPDeliveryFailed):
		response.Error(w, http.StatusBadGateway, xerrors.ErrOTPDeliveryFailed.Error())
	default:
		response.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
