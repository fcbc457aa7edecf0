package middleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/leavedesk/leave-api/internal/api/metrics"
	"github.com/leavedesk/leave-api/internal/core/domain"
)

// RequireRole is the role guard. It must run after Auth and only compares the
// already verified role against required; the token is not checked again.
func RequireRole(required domain.Role) echo.MiddlewareFunc {
	forbidden := fmt.Sprintf("%s access only", required)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			if !ok {
				metrics.GuardRejectionsTotal.WithLabelValues("role", "no_identity").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
			}
			if id.Role != required {
				metrics.GuardRejectionsTotal.WithLabelValues("role", "forbidden").Inc()
				return echo.NewHTTPError(http.StatusForbidden, forbidden)
			}
			return next(c)
		}
	}
}
