package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/leavedesk/leave-api/internal/api/middleware"
	"github.com/leavedesk/leave-api/internal/core/domain"
)

// messageResponse is the envelope for every non-data response.
type messageResponse struct {
	Message string `json:"message"`
}

// requireIdentity returns the caller identity stored by the access guard.
// Its absence means the route was wired without the guard.
func requireIdentity(c echo.Context) (domain.Identity, error) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return id, nil
}
