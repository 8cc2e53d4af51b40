package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/bootcampfinder/backend/internal/models"
)

// AuthService is the interface that wraps methods for authentication business logic.
type AuthService interface {
	// Method Register creates a new account and returns the user with a session token.
	//
	// "req" parameter contains name, email, password and an optional role.
	//
	// Self-registration only allows the user and publisher roles; invalid or
	// duplicate credentials return a validation error.
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, string, error)
	// Method Login verifies credentials and returns the user with a session token.
	//
	// The returned error does not reveal whether the email or the password was wrong.
	Login(ctx context.Context, req models.LoginRequest) (*models.User, string, error)
	// Method Me returns the current user's profile.
	Me(ctx context.Context, userID int) (*models.User, error)
	// Method UpdateDetails changes the current user's name and email.
	UpdateDetails(ctx context.Context, userID int, req models.UpdateDetailsRequest) (*models.User, error)
	// Method UpdatePassword changes the current user's password after re-proving
	// the current one, and returns a fresh session token.
	UpdatePassword(ctx context.Context, userID int, req models.UpdatePasswordRequest) (*models.User, string, error)
	// Method ForgotPassword emails a single-use reset token to the account's address.
	//
	// "resetURLBase" parameter is the scheme and host used to build the reset link.
	ForgotPassword(ctx context.Context, email, resetURLBase string) error
	// Method ResetPassword consumes a reset token and sets the new password,
	// returning the user with a fresh session token.
	ResetPassword(ctx context.Context, token string, req models.ResetPasswordRequest) (*models.User, string, error)
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService      AuthService
	protect          func(http.Handler) http.Handler
	cookieExpireDays int
	secureCookies    bool
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	authService AuthService,
	protect func(http.Handler) http.Handler,
	cookieExpireDays int,
	secureCookies bool,
	logger *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		BaseHandler:      BaseHandler{Logger: logger},
		authService:      authService,
		protect:          protect,
		cookieExpireDays: cookieExpireDays,
		secureCookies:    secureCookies,
	}
}

// RegisterRoutes registers all auth handler routes.
// Note: This assumes the router is already scoped to /api/v1
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Get("/logout", h.Logout)
		r.Post("/forgotpassword", h.ForgotPassword)
		r.Put("/resetpassword/{resettoken}", h.ResetPassword)

		r.Group(func(r chi.Router) {
			r.Use(h.protect)
			r.Get("/me", h.Me)
			r.Put("/updatedetails", h.UpdateDetails)
			r.Put("/updatepassword", h.UpdatePassword)
		})
	})
}

// sendTokenResponse writes the session token both in the body and as an
// httpOnly cookie for browser clients
func (h *AuthHandler) sendTokenResponse(w http.ResponseWriter, status int, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(time.Duration(h.cookieExpireDays) * 24 * time.Hour),
		HttpOnly: true,
		Secure:   h.secureCookies,
	})

	h.RespondJSON(w, status, map[string]any{
		"success": true,
		"token":   token,
	})
}

// Register handles POST /auth/register
// @Summary Register a new user
// @Description Register with name, email, password and an optional role (user or publisher). Returns a session token and sets it as an httpOnly cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration data"
// @Success 200 {object} map[string]any "Session token"
// @Failure 400 {object} map[string]any "Validation error"
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	_, token, err := h.authService.Register(r.Context(), req)
	if err != nil {
		h.RespondAppError(w, err)
		return
	}

	h.sendTokenResponse(w, http.StatusOK, token)
}

// Login handles POST /auth/login
// @Summary Log in
// @Description Verify email and password. Returns a session token and sets it as an httpOnly cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} map[string]any "Session token"
// @Failure 401 {object} map[string]any "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	_, token, err := h.authService.Login(r.Context(), req)
	if err != nil {
		h.RespondAppError(w, err)
		return
	}

	h.sendTokenResponse(w, http.StatusOK, token)
}

// Logout handles GET /auth/logout
// @Summary Log out
// @Description Clear the session cookie.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]any
// @Router /auth/logout [get]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "none",
		Path:     "/",
		Expires:  time.Now().Add(10 * time.Second),
		HttpOnly: true,
		Secure:   h.secureCookies,
	})

	h.RespondData(w, http.StatusOK, map[string]any{})
}

// Me handles GET /auth/me
// @Summary Get current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Current user"
// @Failure 401 {object} map[string]any "Not authenticated"
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := mustGetUser(r)

	profile, err := h.authService.Me(r.Context(), user.ID)
	if err != nil {
		h.RespondAppError(w, err)
		return
	}

	h.RespondData(w, http.StatusOK, profile)
}

// UpdateDetails handles PUT /auth/updatedetails
// @Summary Update name and email
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.UpdateDetailsRequest true "New details"
// @Success 200 {object} map[string]any "Updated user"
// @Failure 400 {object} map[string]any "Validation error"
// @Router /auth/updatedetails [put]
func (h *AuthHandler) UpdateDetails(w http.ResponseWriter, r *http.Request) {
	user := mustGetUser(r)

	var req models.UpdateDetailsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.authService.UpdateDetails(r.Context(), user.ID, req)
	if err != nil {
		h.RespondAppError(w, err)
		return
	}

	h.RespondData(w, http.StatusOK, updated)
}

// UpdatePassword handles PUT /auth/updatepassword
// @Summary Change password
// @Description Change the password after re-proving the current one. Returns a fresh session token.
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.UpdatePasswordRequest true "Current and new password"
// @Success 200 {object} map[string]any "Session token"
// @Failure 401 {object} map[string]any "Current password mismatch"
// @Router /auth/updatepassword [put]
func (h *AuthHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	user := mustGetUser(r)

	var req models.UpdatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	_, token, err := h.authService.UpdatePassword(r.Context(), user.ID, req)
	if err != nil {
		h.RespondAppError(w, err)
		return
	}

	h.sendTokenResponse(w, http.StatusOK, token)
}

// ForgotPassword handles POST /auth/forgotpassword
// @Summary Request a password reset
// @Description Email a single-use reset token to the account's address.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.ForgotPasswordRequest true "Account email"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any "No account with that email"
// @Router /auth/forgotpassword [post]
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	base := scheme + "://" + r.Host

	if err := h.authService.ForgotPassword(r.Context(), req.Email, base); err != nil {
		h.RespondAppError(w, err)
		return
	}

	h.RespondData(w, http.StatusOK, "email sent")
}

// ResetPassword handles PUT /auth/resetpassword/{resettoken}
// @Summary Reset the password with a token
// @Description Consume an emailed reset token and set a new password. Returns a fresh session token.
// @Tags auth
// @Accept json
// @Produce json
// @Param resettoken path string true "Reset token"
// @Param request body models.ResetPasswordRequest true "New password"
// @Success 200 {object} map[string]any "Session token"
// @Failure 400 {object} map[string]any "Invalid or expired token"
// @Router /auth/resetpassword/{resettoken} [put]
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	_, token, err := h.authService.ResetPassword(r.Context(), chi.URLParam(r, "resettoken"), req)
	if err != nil {
		h.RespondAppError(w, err)
		return
	}

	h.sendTokenResponse(w, http.StatusOK, token)
}
