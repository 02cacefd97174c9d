package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/worklog/backend/internal/errs"
	"github.com/worklog/backend/internal/middlewares"
	"github.com/worklog/backend/internal/models"
	"go.uber.org/zap"
)

// refreshCookieName is the refresh token cookie. It is scoped to the refresh
// endpoint path so the browser never attaches it anywhere else.
const (
	refreshCookieName = "refresh_token"
	refreshCookiePath = "/api/auth/refresh"
)

// AuthService is the interface that wraps methods for authentication business logic.
type AuthService interface {
	// Method Register performs user credentials validation and creation.
	//
	// Returns *errs.ValidationError when any input constraint is violated
	// (every violated field is reported) and *errs.ConflictError when the
	// username or email is already taken. No tokens are issued.
	Register(ctx context.Context, req *models.RegisterRequest) error
	// Method Login authenticates a user by email and password.
	//
	// On success returns an access token, a refresh token and the user.
	// A missing user and a wrong password both fail with
	// errs.ErrInvalidCredentials.
	Login(ctx context.Context, req *models.LoginRequest) (string, string, *models.User, error)
	// Method Refresh verifies a refresh token and mints a new access token
	// carrying the user's current role.
	Refresh(ctx context.Context, refreshToken string) (string, error)
	// Method Me returns the fresh user row for the authenticated subject.
	//
	// Returns errs.ErrNotFound when the subject no longer exists.
	Me(ctx context.Context, userID int) (*models.User, error)
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService AuthService
	refreshTTL  time.Duration
	production  bool
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthService, logger *zap.Logger, refreshTTL time.Duration, production bool) *AuthHandler {
	return &AuthHandler{
		BaseHandler: BaseHandler{Logger: logger},
		authService: authService,
		refreshTTL:  refreshTTL,
		production:  production,
	}
}

// RegisterRoutes registers all auth handler routes
// Note: This assumes the router is already scoped to /api
func (h *AuthHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/refresh", h.Refresh)
		r.Post("/logout", h.Logout)
		r.With(authMiddleware).Get("/me", h.Me)
	})
}

// Register handles POST /api/auth/register
// @Summary Register a new user
// @Description Register a new user. Does not log the user in; authenticate with a subsequent login.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration request"
// @Success 201 {object} map[string]string "User created"
// @Failure 400 {object} handlers.errorResponse "Validation failed"
// @Failure 409 {object} handlers.errorResponse "Username or email already exists"
// @Failure 500 {object} handlers.errorResponse "Internal server error"
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.authService.Register(r.Context(), &req); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, map[string]string{"message": "User created"})
}

// loginResponse is the success body of a login
type loginResponse struct {
	Message     string       `json:"message"`
	AccessToken string       `json:"accessToken"`
	User        *models.User `json:"user"`
}

// Login handles POST /api/auth/login
// @Summary Login user
// @Description Authenticate with email and password. Returns the access token in the body and sets the refresh token as an HTTP-only cookie scoped to the refresh endpoint.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login request"
// @Success 200 {object} handlers.loginResponse "Login successful"
// @Failure 400 {object} handlers.errorResponse "Validation failed"
// @Failure 401 {object} handlers.errorResponse "Invalid email or password"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	accessToken, refreshToken, user, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.setRefreshCookie(w, refreshToken)

	// The access token is returned in-body only; the caller holds it in
	// memory and attaches it via the Authorization header
	h.RespondJSON(w, http.StatusOK, loginResponse{
		Message:     "Login successful",
		AccessToken: accessToken,
		User:        user,
	})
}

// Refresh handles POST /api/auth/refresh
// @Summary Refresh access token
// @Description Mint a new access token from the refresh cookie. The refresh token is not rotated.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string "New access token"
// @Failure 401 {object} handlers.errorResponse "Missing or invalid refresh token"
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		h.RespondError(w, http.StatusUnauthorized, "missing refresh token")
		return
	}

	accessToken, err := h.authService.Refresh(r.Context(), cookie.Value)
	if err != nil {
		// A vanished user is an auth failure here, not a plain 404
		if err == errs.ErrNotFound {
			h.RespondError(w, http.StatusUnauthorized, "user not found")
			return
		}
		h.HandleServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"accessToken": accessToken})
}

// Logout handles POST /api/auth/logout
// @Summary Logout
// @Description Clear the refresh cookie. Always succeeds; the access token simply expires.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string "Logged out"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearRefreshCookie(w)
	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// Me handles GET /api/auth/me
// @Summary Current user
// @Description Return the fresh profile of the authenticated user.
// @Tags auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[string]models.User "Current user"
// @Failure 401 {object} handlers.errorResponse "Missing or invalid access token"
// @Failure 404 {object} handlers.errorResponse "User not found"
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middlewares.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, errs.ErrUnauthenticated.Error())
		return
	}

	user, err := h.authService.Me(r.Context(), userID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]*models.User{"user": user})
}

// setRefreshCookie sets the refresh token cookie. SameSite is None for
// cross-site production deployments and Lax otherwise.
func (h *AuthHandler) setRefreshCookie(w http.ResponseWriter, refreshToken string) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    refreshToken,
		Path:     refreshCookiePath,
		MaxAge:   int(h.refreshTTL.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: h.cookieSameSite(),
	})
}

// clearRefreshCookie deletes the refresh cookie. Attributes must match the
// ones used to set it or browsers will keep the original cookie.
func (h *AuthHandler) clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     refreshCookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: h.cookieSameSite(),
	})
}

func (h *AuthHandler) cookieSameSite() http.SameSite {
	if h.production {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}
