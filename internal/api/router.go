package api

import (
	"fmt"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/leavedesk/leave-api/docs"
	"github.com/leavedesk/leave-api/internal/api/handler"
	"github.com/leavedesk/leave-api/internal/api/middleware"
	"github.com/leavedesk/leave-api/internal/core/domain"
	"github.com/leavedesk/leave-api/internal/core/service"
	"github.com/leavedesk/leave-api/internal/infrastructure/auth"
	"github.com/leavedesk/leave-api/internal/infrastructure/config"
	"github.com/leavedesk/leave-api/internal/infrastructure/db"
)

// Deps are the explicitly owned resources the router is built from.
type Deps struct {
	Config *config.Config
	Store  db.Store
	Logger zerolog.Logger

	// Registerer and Gatherer back the HTTP metrics and /metrics. Both default
	// to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
// It fails when the signing secret is missing.
func NewRouter(deps Deps) (*echo.Echo, error) {
	cfg := deps.Config

	hasher, err := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	if err != nil {
		return nil, err
	}
	tokens, err := auth.NewTokenManager(cfg.JWTSecret)
	if err != nil {
		return nil, err
	}

	registerer, gatherer := deps.Registerer, deps.Gatherer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	httpMetrics, err := echoprometheus.MiddlewareConfig{
		Namespace:  "leave",
		Subsystem:  "http",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}.ToMiddleware()
	if err != nil {
		return nil, fmt.Errorf("register http metrics: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(httpMetrics)

	// --- Dependencies ---
	authService := service.NewAuthService(deps.Store.Users(), hasher, tokens, deps.Logger.With().Str("component", "auth").Logger())
	leaveService := service.NewLeaveService(deps.Store.Leaves(), deps.Logger.With().Str("component", "leave").Logger())

	authHandler := handler.NewAuthHandler(authService, cfg.UniformLoginErrors())
	leaveHandler := handler.NewLeaveHandler(leaveService)
	healthHandler := handler.NewHealthHandler(deps.Store, deps.Logger.With().Str("component", "health").Logger())

	requireAuth := middleware.Auth(tokens)
	requireHR := middleware.RequireRole(domain.RoleHR)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Leave routes ---
	leaves := e.Group("/leaves", requireAuth)
	leaves.POST("", leaveHandler.Apply)
	leaves.GET("/my", leaveHandler.Mine)
	leaves.DELETE("/:id", leaveHandler.Delete)
	leaves.GET("", leaveHandler.All, requireHR)
	leaves.PUT("/:id", leaveHandler.UpdateStatus, requireHR)

	// --- Operational endpoints (no auth required) ---
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – is the store reachable?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}
