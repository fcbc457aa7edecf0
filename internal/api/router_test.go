package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/leavedesk/leave-api/internal/core/domain"
	"github.com/leavedesk/leave-api/internal/infrastructure/auth"
	"github.com/leavedesk/leave-api/internal/infrastructure/config"
	"github.com/leavedesk/leave-api/internal/infrastructure/db/memory"
)

const testSecret = "router-test-secret"

func testConfig() *config.Config {
	return &config.Config{
		Env:       "test",
		JWTSecret: testSecret,
		Auth:      config.AuthConfig{BcryptCost: 4},
		HTTP:      config.HTTPConfig{CORSOrigins: []string{"*"}},
		Store:     config.StoreConfig{Driver: config.DriverMemory},
	}
}

func newTestRouter(t *testing.T, cfg *config.Config) *echo.Echo {
	t.Helper()
	reg := prometheus.NewRegistry()
	e, err := NewRouter(Deps{
		Config:     cfg,
		Store:      memory.NewStore(),
		Logger:     zerolog.Nop(),
		Registerer: reg,
		Gatherer:   reg,
	})
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}
	return e
}

func do(t *testing.T, e *echo.Echo, method, path, token, body string) (int, map[string]any) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var out map[string]any
	if strings.HasPrefix(strings.TrimSpace(rec.Body.String()), "{") {
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("%s %s: invalid json: %v", method, path, err)
		}
	}
	return rec.Code, out
}

func login(t *testing.T, e *echo.Echo, email, password string) string {
	t.Helper()
	code, body := do(t, e, http.MethodPost, "/auth/login", "", `{"email":"`+email+`","password":"`+password+`"}`)
	if code != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d %v", email, code, body)
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatalf("login %s: no token in %v", email, body)
	}
	return token
}

func TestRouter_AuthFlow(t *testing.T) {
	e := newTestRouter(t, testConfig())

	code, body := do(t, e, http.MethodPost, "/auth/register", "", `{"name":"Ann","email":"ann@x.com","password":"Secret1","role":"EMPLOYEE"}`)
	if code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d %v", code, body)
	}
	user := body["user"].(map[string]any)
	if user["role"] != "EMPLOYEE" || user["email"] != "ann@x.com" {
		t.Fatalf("unexpected profile: %v", user)
	}

	token := login(t, e, "ann@x.com", "Secret1")
	verifier, err := auth.NewTokenManager(testSecret)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}
	id, err := verifier.Verify(token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if id.Role != domain.RoleEmployee || id.UserID != int64(user["id"].(float64)) {
		t.Fatalf("unexpected identity: %+v", id)
	}

	code, body = do(t, e, http.MethodPost, "/auth/login", "", `{"email":"ann@x.com","password":"wrong"}`)
	if code != http.StatusUnauthorized || body["message"] != "Invalid credentials" {
		t.Fatalf("wrong password: got %d %v", code, body)
	}

	code, body = do(t, e, http.MethodPost, "/auth/login", "", `{"email":"nobody@x.com","password":"Secret1"}`)
	if code != http.StatusUnauthorized || body["message"] != "User not found" {
		t.Fatalf("unknown email: got %d %v", code, body)
	}

	code, body = do(t, e, http.MethodPost, "/auth/register", "", `{"name":"Ann2","email":"ann@x.com","password":"Other1","role":"HR"}`)
	if code != http.StatusBadRequest || body["message"] != "Email already registered" {
		t.Fatalf("duplicate register: got %d %v", code, body)
	}

	code, body = do(t, e, http.MethodPost, "/auth/register", "", `{"name":"Bob","email":"bob@x.com","password":"Secret1","role":"ADMIN"}`)
	if code != http.StatusBadRequest || body["message"] != "Invalid role" {
		t.Fatalf("invalid role: got %d %v", code, body)
	}

	code, body = do(t, e, http.MethodPost, "/auth/register", "", `{"name":"   ","email":"blank@x.com","password":"Secret1","role":"HR"}`)
	if code != http.StatusBadRequest || body["message"] != "name is required" {
		t.Fatalf("blank name: got %d %v", code, body)
	}
	if code, _ := do(t, e, http.MethodPost, "/auth/login", "", `{"email":"blank@x.com","password":"Secret1"}`); code != http.StatusUnauthorized {
		t.Fatalf("blank-name user must not have been stored, login got %d", code)
	}
}

func TestRouter_UniformLoginErrorsInProduction(t *testing.T) {
	cfg := testConfig()
	cfg.Env = "production"
	e := newTestRouter(t, cfg)

	code, body := do(t, e, http.MethodPost, "/auth/login", "", `{"email":"nobody@x.com","password":"Secret1"}`)
	if code != http.StatusUnauthorized || body["message"] != "Invalid credentials" {
		t.Fatalf("expected uniform 401, got %d %v", code, body)
	}
}

func TestRouter_Guards(t *testing.T) {
	e := newTestRouter(t, testConfig())

	do(t, e, http.MethodPost, "/auth/register", "", `{"name":"Ann","email":"ann@x.com","password":"Secret1","role":"EMPLOYEE"}`)
	do(t, e, http.MethodPost, "/auth/register", "", `{"name":"Hana","email":"hr@x.com","password":"Secret1","role":"HR"}`)
	employeeToken := login(t, e, "ann@x.com", "Secret1")
	hrToken := login(t, e, "hr@x.com", "Secret1")

	cases := []struct {
		name    string
		method  string
		path    string
		token   string
		code    int
		message string
	}{
		{"no token", http.MethodGet, "/leaves/my", "", http.StatusUnauthorized, "missing authorization header"},
		{"garbage token", http.MethodGet, "/leaves/my", "not-a-jwt", http.StatusUnauthorized, "invalid token"},
		{"employee own list", http.MethodGet, "/leaves/my", employeeToken, http.StatusOK, ""},
		{"employee hr list", http.MethodGet, "/leaves", employeeToken, http.StatusForbidden, "HR access only"},
		{"employee review", http.MethodPut, "/leaves/1", employeeToken, http.StatusForbidden, "HR access only"},
		{"hr list", http.MethodGet, "/leaves", hrToken, http.StatusOK, ""},
		{"hr list without token", http.MethodGet, "/leaves", "", http.StatusUnauthorized, "missing authorization header"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, body := do(t, e, tc.method, tc.path, tc.token, "")
			if code != tc.code {
				t.Fatalf("expected %d, got %d %v", tc.code, code, body)
			}
			if tc.message != "" && body["message"] != tc.message {
				t.Fatalf("expected message %q, got %v", tc.message, body["message"])
			}
		})
	}

	// A forged token signed with another secret is rejected.
	forger, _ := auth.NewTokenManager("some-other-secret")
	forged, _ := forger.Issue(2, domain.RoleHR)
	if code, _ := do(t, e, http.MethodGet, "/leaves", forged, ""); code != http.StatusUnauthorized {
		t.Fatalf("forged token: expected 401, got %d", code)
	}
}

func TestRouter_LeaveLifecycle(t *testing.T) {
	e := newTestRouter(t, testConfig())

	do(t, e, http.MethodPost, "/auth/register", "", `{"name":"Ann","email":"ann@x.com","password":"Secret1","role":"EMPLOYEE"}`)
	do(t, e, http.MethodPost, "/auth/register", "", `{"name":"Hana","email":"hr@x.com","password":"Secret1","role":"HR"}`)
	employeeToken := login(t, e, "ann@x.com", "Secret1")
	hrToken := login(t, e, "hr@x.com", "Secret1")

	code, body := do(t, e, http.MethodPost, "/leaves", employeeToken, `{"leaveType":"SICK","startDate":"2024-05-10","endDate":"2024-05-12","reason":"flu"}`)
	if code != http.StatusCreated {
		t.Fatalf("apply: expected 201, got %d %v", code, body)
	}
	leave := body["leave"].(map[string]any)
	if leave["status"] != "PENDING" {
		t.Fatalf("new leave should be PENDING, got %v", leave["status"])
	}
	leaveID := int64(leave["id"].(float64))
	path := "/leaves/" + strconv.FormatInt(leaveID, 10)

	code, body = do(t, e, http.MethodPost, "/leaves", employeeToken, `{"startDate":"2024-05-12","endDate":"2024-05-10","reason":"backwards"}`)
	if code != http.StatusBadRequest {
		t.Fatalf("reversed period: expected 400, got %d %v", code, body)
	}

	code, body = do(t, e, http.MethodPost, "/leaves", employeeToken, `{"startDate":"2024-05-10","endDate":"2024-05-12","reason":"   "}`)
	if code != http.StatusBadRequest || body["message"] != domain.ErrInvalidLeaveReason.Error() {
		t.Fatalf("blank reason: expected 400, got %d %v", code, body)
	}

	code, body = do(t, e, http.MethodPut, path, hrToken, `{"status":"APPROVED"}`)
	if code != http.StatusOK || body["message"] != "Leave status updated" {
		t.Fatalf("approve: got %d %v", code, body)
	}

	code, body = do(t, e, http.MethodPut, path, hrToken, `{"status":"REJECTED"}`)
	if code != http.StatusUnprocessableEntity {
		t.Fatalf("re-review: expected 422, got %d %v", code, body)
	}

	code, body = do(t, e, http.MethodPut, "/leaves/9999", hrToken, `{"status":"APPROVED"}`)
	if code != http.StatusNotFound {
		t.Fatalf("unknown leave: expected 404, got %d %v", code, body)
	}

	// The HR listing joins the employee name.
	req := httptest.NewRequest(http.MethodGet, "/leaves", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+hrToken)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	var all []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &all); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(all) != 1 || all[0]["employeeName"] != "Ann" || all[0]["status"] != "APPROVED" {
		t.Fatalf("unexpected HR listing: %v", all)
	}

	code, body = do(t, e, http.MethodDelete, path, employeeToken, "")
	if code != http.StatusOK || body["message"] != "Leave deleted" {
		t.Fatalf("delete: got %d %v", code, body)
	}
	if code, _ := do(t, e, http.MethodDelete, path, employeeToken, ""); code != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", code)
	}
}

func TestRouter_OperationalEndpoints(t *testing.T) {
	e := newTestRouter(t, testConfig())

	if code, body := do(t, e, http.MethodGet, "/health", "", ""); code != http.StatusOK || body["status"] != "ok" {
		t.Fatalf("/health: got %d %v", code, body)
	}
	if code, body := do(t, e, http.MethodGet, "/health/ready", "", ""); code != http.StatusOK || body["status"] != "ok" {
		t.Fatalf("/health/ready: got %d %v", code, body)
	}

	do(t, e, http.MethodGet, "/health", "", "")
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("/metrics: expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "leave_http_requests_total") {
		t.Fatalf("/metrics does not expose http request counters")
	}
}

func TestNewRouter_RequiresSigningSecret(t *testing.T) {
	cfg := testConfig()
	cfg.JWTSecret = ""

	reg := prometheus.NewRegistry()
	_, err := NewRouter(Deps{Config: cfg, Store: memory.NewStore(), Logger: zerolog.Nop(), Registerer: reg, Gatherer: reg})
	if !errors.Is(err, domain.ErrMissingSigningSecret) {
		t.Fatalf("expected ErrMissingSigningSecret, got %v", err)
	}
}
