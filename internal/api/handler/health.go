package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Pinger is satisfied by every store backend.
type Pinger interface {
	Name() string
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	store  Pinger
	logger zerolog.Logger
}

func NewHealthHandler(store Pinger, logger zerolog.Logger) *HealthHandler {
	return &HealthHandler{store: store, logger: logger}
}

type dependencyStatus struct {
	Status string `json:"status"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

// Liveness handles GET /health. It confirms the process is alive.
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness handles GET /health/ready by pinging the configured store.
func (h *HealthHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	deps := make(map[string]dependencyStatus, 1)
	status, httpStatus := "ok", http.StatusOK

	if err := h.store.Ping(ctx); err != nil {
		// The cause can name hosts or credentials; it goes to the log only.
		h.logger.Error().Err(err).Str("store", h.store.Name()).Msg("readiness check failed")
		deps[h.store.Name()] = dependencyStatus{Status: "unhealthy"}
		status, httpStatus = "degraded", http.StatusServiceUnavailable
	} else {
		deps[h.store.Name()] = dependencyStatus{Status: "ok"}
	}

	return c.JSON(httpStatus, readinessResponse{Status: status, Dependencies: deps})
}
