package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/leavedesk/leave-api/internal/api/middleware"
	"github.com/leavedesk/leave-api/internal/core/domain"
	"github.com/leavedesk/leave-api/internal/core/ports"
)

type stubLeaveService struct {
	applyFn        func(ctx context.Context, requester domain.Identity, in ports.ApplyLeaveInput) (*domain.Leave, error)
	listMineFn     func(ctx context.Context, requester domain.Identity) ([]*domain.Leave, error)
	listAllFn      func(ctx context.Context) ([]*domain.Leave, error)
	updateStatusFn func(ctx context.Context, id int64, status string) error
	deleteFn       func(ctx context.Context, requester domain.Identity, id int64) error
}

func (s *stubLeaveService) Apply(ctx context.Context, requester domain.Identity, in ports.ApplyLeaveInput) (*domain.Leave, error) {
	return s.applyFn(ctx, requester, in)
}

func (s *stubLeaveService) ListMine(ctx context.Context, requester domain.Identity) ([]*domain.Leave, error) {
	return s.listMineFn(ctx, requester)
}

func (s *stubLeaveService) ListAll(ctx context.Context) ([]*domain.Leave, error) {
	return s.listAllFn(ctx)
}

func (s *stubLeaveService) UpdateStatus(ctx context.Context, id int64, status string) error {
	return s.updateStatusFn(ctx, id, status)
}

func (s *stubLeaveService) Delete(ctx context.Context, requester domain.Identity, id int64) error {
	return s.deleteFn(ctx, requester, id)
}

var ann = domain.Identity{UserID: 3, Role: domain.RoleEmployee}

func sampleLeave() *domain.Leave {
	created := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	return &domain.Leave{
		ID:        11,
		UserID:    ann.UserID,
		LeaveType: domain.LeaveSick,
		StartDate: time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC),
		Reason:    "flu",
		Status:    domain.LeavePending,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestLeaveHandler_Apply_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubLeaveService{
		applyFn: func(ctx context.Context, requester domain.Identity, in ports.ApplyLeaveInput) (*domain.Leave, error) {
			if requester != ann {
				t.Fatalf("unexpected requester: %+v", requester)
			}
			if in.LeaveType != "SICK" || in.StartDate != "2024-05-10" || in.EndDate != "2024-05-12" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return sampleLeave(), nil
		},
	}
	h := NewLeaveHandler(stub)

	req := jsonRequest(http.MethodPost, "/leaves", `{"leaveType":"SICK","startDate":"2024-05-10","endDate":"2024-05-12","reason":"flu"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	middleware.WithIdentity(c, ann)

	if err := h.Apply(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp struct {
		Message string         `json:"message"`
		Leave   map[string]any `json:"leave"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Message != "Leave applied successfully" {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
	if resp.Leave["start_date"] != "2024-05-10" || resp.Leave["status"] != "PENDING" {
		t.Fatalf("unexpected leave payload: %+v", resp.Leave)
	}
	if _, ok := resp.Leave["employeeName"]; ok {
		t.Fatal("employeeName should be omitted outside the HR listing")
	}
}

func TestLeaveHandler_Apply_ValidationFailure(t *testing.T) {
	e := newTestEcho()
	stub := &stubLeaveService{
		applyFn: func(ctx context.Context, requester domain.Identity, in ports.ApplyLeaveInput) (*domain.Leave, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewLeaveHandler(stub)

	cases := map[string]string{
		"bad type":     `{"leaveType":"VACATION","startDate":"2024-05-10","endDate":"2024-05-12","reason":"x"}`,
		"bad date":     `{"startDate":"10/05/2024","endDate":"2024-05-12","reason":"x"}`,
		"missing body": `{}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			c := e.NewContext(jsonRequest(http.MethodPost, "/leaves", body), httptest.NewRecorder())
			middleware.WithIdentity(c, ann)
			assertHTTPError(t, h.Apply(c), http.StatusUnprocessableEntity, "")
		})
	}
}

func TestLeaveHandler_Apply_WithoutIdentity(t *testing.T) {
	e := newTestEcho()
	h := NewLeaveHandler(&stubLeaveService{})

	c := e.NewContext(jsonRequest(http.MethodPost, "/leaves", `{}`), httptest.NewRecorder())
	assertHTTPError(t, h.Apply(c), http.StatusUnauthorized, "missing authentication")
}

func TestLeaveHandler_All_IncludesEmployeeName(t *testing.T) {
	e := newTestEcho()
	stub := &stubLeaveService{
		listAllFn: func(ctx context.Context) ([]*domain.Leave, error) {
			l := sampleLeave()
			l.EmployeeName = "Ann"
			return []*domain.Leave{l}, nil
		},
	}
	h := NewLeaveHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/leaves", nil), rec)

	if err := h.All(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 || resp[0]["employeeName"] != "Ann" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestLeaveHandler_Mine_EmptyIsArray(t *testing.T) {
	e := newTestEcho()
	stub := &stubLeaveService{
		listMineFn: func(ctx context.Context, requester domain.Identity) ([]*domain.Leave, error) {
			return nil, nil
		},
	}
	h := NewLeaveHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/leaves/my", nil), rec)
	middleware.WithIdentity(c, ann)

	if err := h.Mine(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := rec.Body.String(); got != "[]\n" {
		t.Fatalf("expected empty array, got %q", got)
	}
}

func TestLeaveHandler_UpdateStatus(t *testing.T) {
	e := newTestEcho()
	var gotID int64
	var gotStatus string
	stub := &stubLeaveService{
		updateStatusFn: func(ctx context.Context, id int64, status string) error {
			gotID, gotStatus = id, status
			return nil
		},
	}
	h := NewLeaveHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPut, "/leaves/11", `{"status":"APPROVED"}`), rec)
	c.SetParamNames("id")
	c.SetParamValues("11")

	if err := h.UpdateStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if gotID != 11 || gotStatus != "APPROVED" {
		t.Fatalf("unexpected call: %d %s", gotID, gotStatus)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestLeaveHandler_UpdateStatus_RejectsPending(t *testing.T) {
	e := newTestEcho()
	h := NewLeaveHandler(&stubLeaveService{})

	c := e.NewContext(jsonRequest(http.MethodPut, "/leaves/11", `{"status":"PENDING"}`), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("11")

	assertHTTPError(t, h.UpdateStatus(c), http.StatusUnprocessableEntity, "")
}

func TestLeaveHandler_UpdateStatus_BadID(t *testing.T) {
	e := newTestEcho()
	h := NewLeaveHandler(&stubLeaveService{})

	c := e.NewContext(jsonRequest(http.MethodPut, "/leaves/abc", `{"status":"APPROVED"}`), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("abc")

	assertHTTPError(t, h.UpdateStatus(c), http.StatusBadRequest, "invalid leave id")
}

func TestLeaveHandler_Delete_NotOwned(t *testing.T) {
	e := newTestEcho()
	stub := &stubLeaveService{
		deleteFn: func(ctx context.Context, requester domain.Identity, id int64) error {
			return domain.ErrLeaveNotFound
		},
	}
	h := NewLeaveHandler(stub)

	c := e.NewContext(httptest.NewRequest(http.MethodDelete, "/leaves/99", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("99")
	middleware.WithIdentity(c, ann)

	assertHTTPError(t, h.Delete(c), http.StatusNotFound, "leave not found")
}

func TestLeaveHandler_Delete_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubLeaveService{
		deleteFn: func(ctx context.Context, requester domain.Identity, id int64) error {
			if requester != ann || id != 11 {
				t.Fatalf("unexpected call: %+v %d", requester, id)
			}
			return nil
		},
	}
	h := NewLeaveHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodDelete, "/leaves/11", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("11")
	middleware.WithIdentity(c, ann)

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
