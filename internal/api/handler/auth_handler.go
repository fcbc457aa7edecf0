package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/leavedesk/leave-api/internal/api/metrics"
	"github.com/leavedesk/leave-api/internal/core/domain"
	"github.com/leavedesk/leave-api/internal/core/ports"
)

const msgInvalidCredentials = "Invalid credentials"

type AuthHandler struct {
	authService ports.AuthService
	// uniformLoginErrors reports unknown emails as "Invalid credentials".
	uniformLoginErrors bool
}

func NewAuthHandler(authService ports.AuthService, uniformLoginErrors bool) *AuthHandler {
	return &AuthHandler{authService: authService, uniformLoginErrors: uniformLoginErrors}
}

type registerRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=72"`
	Role     string `json:"role"     validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerResponse struct {
	Message string         `json:"message"`
	User    domain.Profile `json:"user"`
}

type loginResponse struct {
	Token string         `json:"token"`
	Role  domain.Role    `json:"role"`
	User  domain.Profile `json:"user"`
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid_input").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid_input").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRole):
			metrics.RegistrationsTotal.WithLabelValues("invalid_role").Inc()
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid role")
		case errors.Is(err, domain.ErrEmailAlreadyRegistered):
			metrics.RegistrationsTotal.WithLabelValues("duplicate_email").Inc()
			return echo.NewHTTPError(http.StatusBadRequest, "Email already registered")
		case errors.Is(err, domain.ErrBlankName):
			metrics.RegistrationsTotal.WithLabelValues("invalid_input").Inc()
			return echo.NewHTTPError(http.StatusBadRequest, "name is required")
		case errors.Is(err, domain.ErrPasswordTooLong):
			metrics.RegistrationsTotal.WithLabelValues("invalid_input").Inc()
			return echo.NewHTTPError(http.StatusBadRequest, "password must be at most 72 bytes")
		}
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusCreated, registerResponse{Message: "User registered", User: *profile})
}

// Login authenticates a user and returns a bearer token valid for 24 hours.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}

	res, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			metrics.LoginsTotal.WithLabelValues("user_not_found").Inc()
			if h.uniformLoginErrors {
				return echo.NewHTTPError(http.StatusUnauthorized, msgInvalidCredentials)
			}
			return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			return echo.NewHTTPError(http.StatusUnauthorized, msgInvalidCredentials)
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.TokensIssuedTotal.WithLabelValues(string(res.User.Role)).Inc()
	return c.JSON(http.StatusOK, loginResponse{Token: res.Token, Role: res.User.Role, User: res.User})
}
