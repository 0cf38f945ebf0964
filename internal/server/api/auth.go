package api

import (
	"errors"
	"net/http"
	"os"

	"notable/internal/server/services"
	"notable/pkg/models"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func (h *AuthHandler) RequestOtp(w http.ResponseWriter, r *http.Request) {
	var req models.RequestOtpRequest

	if err := decodeJSON(r, &req); err != nil {
		respondErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	code, err := h.authService.RequestOtp(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, services.ErrInvalidEmail) {
			respondErrorJSON(w, http.StatusBadRequest, "valid email required")
			return
		}
		respondErrorJSON(w, http.StatusInternalServerError, "failed to generate OTP")
		return
	}

	response := models.RequestOtpResponse{
		Message: "OTP sent",
	}
	// The reveal path is a demo convenience and must never be reachable in
	// production.
	if os.Getenv("APP_ENV") != "production" {
		response.Otp = code
	}

	respondJSON(w, http.StatusOK, response)
}

func (h *AuthHandler) VerifyOtp(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyOtpRequest

	if err := decodeJSON(r, &req); err != nil {
		respondErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Otp == "" {
		respondErrorJSON(w, http.StatusBadRequest, "otp required")
		return
	}

	user, token, err := h.authService.VerifyOtp(r.Context(), req.Email, req.Otp, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidEmail),
			errors.Is(err, services.ErrOtpNotFound),
			errors.Is(err, services.ErrOtpExpired),
			errors.Is(err, services.ErrOtpMismatch):
			respondErrorJSON(w, http.StatusBadRequest, err.Error())
		default:
			respondErrorJSON(w, http.StatusInternalServerError, "OTP verification failed")
		}
		return
	}

	respondJSON(w, http.StatusOK, models.AuthResponse{
		Token: token,
		User:  user.Public(),
	})
}

func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.GoogleLoginRequest

	if err := decodeJSON(r, &req); err != nil {
		respondErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.IDToken == "" {
		respondErrorJSON(w, http.StatusBadRequest, "idToken required")
		return
	}

	user, token, err := h.authService.LoginWithGoogle(r.Context(), req.IDToken)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrGoogleNotConfigured):
			respondErrorJSON(w, http.StatusInternalServerError, "GOOGLE_CLIENT_ID not configured")
		case errors.Is(err, services.ErrGoogleTokenInvalid):
			respondErrorJSON(w, http.StatusBadRequest, "Google authentication failed")
		default:
			respondErrorJSON(w, http.StatusInternalServerError, "Google authentication failed")
		}
		return
	}

	respondJSON(w, http.StatusOK, models.AuthResponse{
		Token: token,
		User:  user.Public(),
	})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r)
	if !ok {
		respondErrorJSON(w, http.StatusUnauthorized, "missing token")
		return
	}

	user, err := h.authService.GetUserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			respondErrorJSON(w, http.StatusNotFound, "user not found")
			return
		}
		respondErrorJSON(w, http.StatusInternalServerError, "failed to get user")
		return
	}

	respondJSON(w, http.StatusOK, models.MeResponse{User: user.Public()})
}
