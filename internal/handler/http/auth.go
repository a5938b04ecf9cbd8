package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/service"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/models"
)

// sendOTP starts the signup flow: POST /api/auth/send-otp.
func (h *Handler) sendOTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.SendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.sendOTP").Msg("Invalid JSON was passed")
		respondMessage(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.AuthService.SendSignupOTP(ctx, req.Email, req.Name); err != nil {
		if errors.Is(err, service.ErrInvalidDataProvided) {
			respondMessage(w, "Email and name are required", http.StatusBadRequest)
			return
		}

		log.Err(err).Str("func", "*Handler.sendOTP").Msg("sending signup code failed")
		respondError(w, err)
		return
	}

	respondMessage(w, "OTP sent successfully", http.StatusOK)
}

// testOTP is the development-only variant of sendOTP that discloses the raw
// code in the response instead of emailing it: POST /api/auth/test-otp.
// The route is registered only when the environment is explicitly set to
// development, so in any other deployment it does not exist at all.
func (h *Handler) testOTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.SendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.testOTP").Msg("Invalid JSON was passed")
		respondMessage(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	pending, otp, err := h.services.AuthService.TestSignupOTP(ctx, req.Email, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDataProvided) {
			respondMessage(w, "Email and name are required", http.StatusBadRequest)
			return
		}

		log.Err(err).Str("func", "*Handler.testOTP").Msg("generating test signup code failed")
		respondError(w, err)
		return
	}

	utils.WriteJSON(w, models.TestOTPResponse{
		Message: "OTP generated successfully (development mode)",
		OTP:     otp,
		UserID:  pending.ID,
	}, http.StatusOK)
}

// verifyOTP completes the signup flow: POST /api/auth/verify-otp.
func (h *Handler) verifyOTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.verifyOTP").Msg("Invalid JSON was passed")
		respondMessage(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	verifiedUser, err := h.services.AuthService.VerifyOTPAndSignup(ctx, req.Email, req.OTP, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDataProvided) {
			respondMessage(w, "Email, OTP, and password are required", http.StatusBadRequest)
			return
		}

		log.Err(err).Str("func", "*Handler.verifyOTP").Msg("signup verification failed")
		respondError(w, err)
		return
	}

	h.respondWithSession(w, r, verifiedUser, "Signup successful")
}

// login authenticates by email and password: POST /api/auth/login.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.login").Msg("Invalid JSON was passed")
		respondMessage(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDataProvided) {
			respondMessage(w, "Email and password are required", http.StatusBadRequest)
			return
		}

		log.Err(err).Str("func", "*Handler.login").Msg("login failed")
		respondError(w, err)
		return
	}

	h.respondWithSession(w, r, foundUser, "Login successful")
}

// googleAuth authenticates with a Google ID token: POST /api/auth/google.
func (h *Handler) googleAuth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.GoogleAuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.googleAuth").Msg("Invalid JSON was passed")
		respondMessage(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	user, err := h.services.AuthService.GoogleLogin(ctx, req.Credential)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDataProvided) {
			respondMessage(w, "Google credential is required", http.StatusBadRequest)
			return
		}

		log.Err(err).Str("func", "*Handler.googleAuth").Msg("google authentication failed")
		respondError(w, err)
		return
	}

	h.respondWithSession(w, r, user, "Google authentication successful")
}

// me returns the account behind the presented session token: GET /api/auth/me.
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		respondMessage(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	user, err := h.services.AuthService.CurrentUser(ctx, userID)
	if err != nil {
		// a valid token whose subject no longer exists is rejected like
		// an invalid one
		log.Err(err).Str("func", "*Handler.me").Msg("loading current user failed")
		respondError(w, err)
		return
	}

	utils.WriteJSON(w, models.UserResponse{User: user.PublicView()}, http.StatusOK)
}

// respondWithSession mints a session token for user and writes the shared
// auth response body.
func (h *Handler) respondWithSession(w http.ResponseWriter, r *http.Request, user models.User, message string) {
	log := logger.FromRequest(r)

	token, err := h.services.AuthService.CreateToken(r.Context(), user)
	if err != nil {
		log.Err(err).Str("func", "*Handler.respondWithSession").Msg("creation of token failed")
		respondMessage(w, "Server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, models.AuthResponse{
		Message: message,
		Token:   token.SignedString,
		User:    user.PublicView(),
	}, http.StatusOK)
}
