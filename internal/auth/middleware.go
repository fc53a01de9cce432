package auth

import (
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"feedbackhub/internal/errors"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "session"

const (
	tokenContextKey   = "session_token"
	requestContextKey = "request_context"
)

// SessionCookie parses and verifies the session cookie when present.
// Missing or invalid cookies leave the request anonymous.
func SessionCookie(jwtService *JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: "cookie:" + SessionCookieName,
		ContextKey:  tokenContextKey,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return jwtService.ValidateToken(token)
		},
		ContinueOnIgnoredError: true,
		ErrorHandler: func(c echo.Context, err error) error {
			return nil
		},
	})
}

// Identify resolves the parsed session token against the live-session registry
// and stores the RequestContext for handlers.
func Identify(sessions *SessionManager, logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rc := RequestContext{
				Identity:  Anonymous(),
				RequestID: c.Response().Header().Get(echo.HeaderXRequestID),
			}

			if claims, ok := c.Get(tokenContextKey).(*Claims); ok {
				identity, err := sessions.Resolve(c.Request().Context(), claims)
				if err != nil {
					logger.Error().Err(err).Str("request_id", rc.RequestID).Msg("resolve session")
				}
				rc.Identity = identity
				if identity.IsAuthenticated() {
					rc.SessionID = claims.ID
				}
			}

			SetRequestContext(c, rc)
			return next(c)
		}
	}
}

// RequireAuthenticated rejects anonymous requests with 401.
func RequireAuthenticated() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !FromContext(c).Identity.IsAuthenticated() {
				return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
					Error:    errors.ErrNotAuthenticated.Error(),
					Code:     "NOT_AUTHENTICATED",
					Redirect: "/login",
				})
			}
			return next(c)
		}
	}
}

// SetRequestContext stores rc on the echo context.
func SetRequestContext(c echo.Context, rc RequestContext) {
	c.Set(requestContextKey, rc)
}

// FromContext returns the RequestContext stored by Identify, or an anonymous one.
func FromContext(c echo.Context) RequestContext {
	rc, ok := c.Get(requestContextKey).(RequestContext)
	if !ok {
		return RequestContext{Identity: Anonymous()}
	}
	return rc
}
