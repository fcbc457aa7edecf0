package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/leavedesk/leave-api/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	cases := []struct {
		err     error
		code    int
		message string
	}{
		{echo.NewHTTPError(http.StatusForbidden, "HR access only"), http.StatusForbidden, "HR access only"},
		{domain.ErrLeaveNotFound, http.StatusNotFound, "leave not found"},
		{fmt.Errorf("find leave: %w", domain.ErrLeaveNotFound), http.StatusNotFound, "leave not found"},
		{domain.ErrInvalidLeavePeriod, http.StatusBadRequest, domain.ErrInvalidLeavePeriod.Error()},
		{domain.ErrInvalidLeaveReason, http.StatusBadRequest, domain.ErrInvalidLeaveReason.Error()},
		{domain.ErrInvalidStatusTransition, http.StatusUnprocessableEntity, domain.ErrInvalidStatusTransition.Error()},
		{domain.ErrEmailAlreadyRegistered, http.StatusBadRequest, "Email already registered"},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{errors.New("connection reset by peer"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range cases {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		NewHTTPErrorHandler(zerolog.Nop())(tc.err, c)

		if rec.Code != tc.code {
			t.Errorf("%v: expected %d, got %d", tc.err, tc.code, rec.Code)
			continue
		}
		var body errorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if body.Message != tc.message {
			t.Errorf("%v: expected message %q, got %q", tc.err, tc.message, body.Message)
		}
	}
}
