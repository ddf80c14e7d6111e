package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rusafhasan/agencymanagement/internal/api/metrics"
	"github.com/rusafhasan/agencymanagement/internal/core/domain"
	"github.com/rusafhasan/agencymanagement/internal/core/session"
)

// CallerKey is the echo context key holding the authenticated domain.Caller.
const CallerKey = "caller"

// TokenVerifier verifies a raw session token.
type TokenVerifier interface {
	Verify(token string) (*session.Claims, error)
}

// Auth validates the bearer session token and injects the caller into context.
func Auth(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.SessionVerificationsTotal.WithLabelValues("missing").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			token, ok := session.BearerToken(authHeader)
			if !ok {
				metrics.SessionVerificationsTotal.WithLabelValues("invalid").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				if errors.Is(err, session.ErrTokenExpired) {
					metrics.SessionVerificationsTotal.WithLabelValues("expired").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "token expired")
				}
				metrics.SessionVerificationsTotal.WithLabelValues("invalid").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			metrics.SessionVerificationsTotal.WithLabelValues("ok").Inc()
			c.Set(CallerKey, claims.Caller())
			return next(c)
		}
	}
}

// CallerFrom returns the caller injected by Auth.
func CallerFrom(c echo.Context) (domain.Caller, bool) {
	caller, ok := c.Get(CallerKey).(domain.Caller)
	return caller, ok && caller.ID != ""
}
