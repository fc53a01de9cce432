package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"feedbackhub/internal/auth"
	"feedbackhub/internal/metrics"
	"feedbackhub/internal/service"
)

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	authService  service.AuthService
	sessions     *auth.SessionManager
	metrics      *metrics.Metrics
	cookieSecure bool
	logger       zerolog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(
	authService service.AuthService,
	sessions *auth.SessionManager,
	m *metrics.Metrics,
	cookieSecure bool,
	logger zerolog.Logger,
) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		sessions:     sessions,
		metrics:      m,
		cookieSecure: cookieSecure,
		logger:       logger.With().Str("component", "auth_handler").Logger(),
	}
}

// redirectIfLoggedIn sends an authenticated client to its own page.
func redirectIfLoggedIn(c echo.Context) (bool, error) {
	if username, ok := auth.FromContext(c).Identity.Username(); ok {
		return true, c.Redirect(http.StatusSeeOther, userPath(username))
	}
	return false, nil
}

// RegisterForm godoc
// @Summary Empty registration form
// @Tags auth
// @Produce json
// @Success 200 {object} RegisterRequest
// @Success 303 "Already logged in"
// @Router /register [get]
func (h *AuthHandler) RegisterForm(c echo.Context) error {
	if done, err := redirectIfLoggedIn(c); done {
		return err
	}
	return c.JSON(http.StatusOK, RegisterRequest{})
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} ActionResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	if done, err := redirectIfLoggedIn(c); done {
		return err
	}

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(err)
	}
	if err := c.Validate(&req); err != nil {
		h.metrics.RegistrationAttempt(outcome(err))
		return respondError(c, err)
	}

	ctx := c.Request().Context()
	user, err := h.authService.Register(ctx, service.RegisterInput{
		Username:  req.Username,
		Password:  req.Password,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	h.metrics.RegistrationAttempt(outcome(err))
	if err != nil {
		return respondError(c, err)
	}

	token, err := h.sessions.Establish(ctx, user.Username)
	if err != nil {
		return respondError(c, err)
	}
	setSessionCookie(c, token, h.sessions.TTL(), h.cookieSecure)

	return c.JSON(http.StatusCreated, ActionResponse{
		Message:  "Welcome! Successfully created your account!",
		Redirect: userPath(user.Username),
		Data:     user,
	})
}

// LoginForm godoc
// @Summary Empty login form
// @Tags auth
// @Produce json
// @Success 200 {object} LoginRequest
// @Success 303 "Already logged in"
// @Router /login [get]
func (h *AuthHandler) LoginForm(c echo.Context) error {
	if done, err := redirectIfLoggedIn(c); done {
		return err
	}
	return c.JSON(http.StatusOK, LoginRequest{})
}

// Login godoc
// @Summary Login user
// @Tags auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} ActionResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	if done, err := redirectIfLoggedIn(c); done {
		return err
	}

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(err)
	}
	if err := c.Validate(&req); err != nil {
		h.metrics.LoginAttempt(outcome(err))
		return respondError(c, err)
	}

	ctx := c.Request().Context()
	user, err := h.authService.Login(ctx, req.Username, req.Password)
	h.metrics.LoginAttempt(outcome(err))
	if err != nil {
		return respondError(c, err)
	}

	token, err := h.sessions.Establish(ctx, user.Username)
	if err != nil {
		return respondError(c, err)
	}
	setSessionCookie(c, token, h.sessions.TTL(), h.cookieSecure)

	return c.JSON(http.StatusOK, ActionResponse{
		Message:  "Welcome back, " + user.FullName() + "!",
		Redirect: userPath(user.Username),
	})
}

// Logout godoc
// @Summary Logout the current session
// @Description The cookie is always cleared; a registry failure is logged and the session expires on its own.
// @Tags auth
// @Produce json
// @Success 200 {object} ActionResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	rc := auth.FromContext(c)
	clearSessionCookie(c, h.cookieSecure)
	if err := h.sessions.End(c.Request().Context(), rc.SessionID); err != nil {
		h.logger.Error().Err(err).Str("request_id", rc.RequestID).Msg("end session")
	}
	return c.JSON(http.StatusOK, ActionResponse{
		Message:  "Goodbye!",
		Redirect: "/login",
	})
}
