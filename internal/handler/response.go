package handler

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"

	"feedbackhub/internal/auth"
	apperrors "feedbackhub/internal/errors"
)

// ActionResponse is returned by endpoints that change state. Redirect names the
// page a browser client should show next.
type ActionResponse struct {
	Message  string      `json:"message"`
	Redirect string      `json:"redirect,omitempty"`
	Data     interface{} `json:"data,omitempty"`
}

func userPath(username string) string {
	return "/users/" + url.PathEscape(username)
}

// respondError converts a service error into an echo HTTP error. Denied
// requests point back at the acting user's page, unauthenticated ones at login.
func respondError(c echo.Context, err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	resp := httpErr.ToErrorResponse()

	switch httpErr.StatusCode {
	case http.StatusForbidden:
		if username, ok := auth.FromContext(c).Identity.Username(); ok {
			resp.Redirect = userPath(username)
		}
	case http.StatusUnauthorized:
		if errors.Is(err, apperrors.ErrNotAuthenticated) {
			resp.Redirect = "/login"
		}
	}

	return echo.NewHTTPError(httpErr.StatusCode, resp).SetInternal(err)
}

func badRequest(err error) error {
	return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
		Error: "invalid request body",
		Code:  "INVALID_REQUEST",
	}).SetInternal(err)
}

// outcome labels an operation result for metrics.
func outcome(err error) string {
	var verr *apperrors.ValidationError
	switch {
	case err == nil:
		return "success"
	case errors.As(err, &verr):
		return "invalid"
	case errors.Is(err, apperrors.ErrUniquenessConflict):
		return "conflict"
	case errors.Is(err, apperrors.ErrAuthenticationFailed):
		return "failure"
	default:
		return "error"
	}
}

func setSessionCookie(c echo.Context, token string, ttl time.Duration, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(c echo.Context, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
