package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/leavedesk/leave-api/internal/api/metrics"
	"github.com/leavedesk/leave-api/internal/core/domain"
	"github.com/leavedesk/leave-api/internal/core/ports"
)

const identityKey = "identity"

// Auth is the access guard. It requires a valid bearer token and stores the
// verified identity on the context for downstream handlers and guards.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				metrics.GuardRejectionsTotal.WithLabelValues("access", "missing_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				metrics.GuardRejectionsTotal.WithLabelValues("access", "missing_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			identity, err := verifier.Verify(strings.TrimSpace(parts[1]))
			if err != nil {
				metrics.GuardRejectionsTotal.WithLabelValues("access", rejectionReason(err)).Inc()
				if errors.Is(err, domain.ErrTokenExpired) {
					return echo.NewHTTPError(http.StatusUnauthorized, "token expired")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(identityKey, *identity)
			return next(c)
		}
	}
}

// IdentityFrom returns the identity stored by Auth.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	id, ok := c.Get(identityKey).(domain.Identity)
	return id, ok
}

// WithIdentity stores id on c as Auth would. Used by tests of downstream handlers.
func WithIdentity(c echo.Context, id domain.Identity) {
	c.Set(identityKey, id)
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrInvalidSignature):
		return "invalid_signature"
	default:
		return "malformed"
	}
}
