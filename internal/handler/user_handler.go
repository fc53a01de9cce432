package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"feedbackhub/internal/auth"
	"feedbackhub/internal/metrics"
	"feedbackhub/internal/service"
)

// UserHandler serves profile pages and account deletion.
type UserHandler struct {
	svc          service.UserService
	metrics      *metrics.Metrics
	cookieSecure bool
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService, m *metrics.Metrics, cookieSecure bool) *UserHandler {
	return &UserHandler{
		svc:          svc,
		metrics:      m,
		cookieSecure: cookieSecure,
	}
}

// GetUser godoc
// @Summary Show a user and their feedback
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} service.Profile
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{username} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	profile, err := h.svc.GetProfile(c.Request().Context(), auth.FromContext(c), c.Param("username"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, profile)
}

// DeleteUser godoc
// @Summary Delete the logged-in user's account and all their feedback
// @Description Every session of the account is revoked before anything is deleted.
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} ActionResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{username}/delete [post]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	if err := h.svc.DeleteUser(c.Request().Context(), auth.FromContext(c), c.Param("username")); err != nil {
		return respondError(c, err)
	}
	h.metrics.AccountDeleted()
	clearSessionCookie(c, h.cookieSecure)

	return c.JSON(http.StatusOK, ActionResponse{
		Message:  "Your account has been deleted.",
		Redirect: "/register",
	})
}
