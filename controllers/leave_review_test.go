package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"eduleave-api/middleware"
	"eduleave-api/models"
	"eduleave-api/services"

	"github.com/gin-gonic/gin"
)

// stubTokens treats the bearer value as the user id.
type stubTokens struct{}

func (stubTokens) Parse(raw string) (*services.Claims, error) {
	var id uint
	if _, err := fmt.Sscanf(raw, "%d", &id); err != nil {
		return nil, err
	}
	return &services.Claims{ID: id}, nil
}

type stubUsers map[uint]*models.User

func (s stubUsers) FindUser(_ context.Context, id uint) (*models.User, error) {
	if u, ok := s[id]; ok {
		return u, nil
	}
	return nil, services.ErrNotFound
}

type stubLeaves struct {
	LeaveManager
	decideErr error
	lastID    uint
	lastAct   string
	created   []services.CreateLeaveInput
}

var stubOutcomes = map[string]struct {
	status models.LeaveStatus
	verb   string
}{
	services.ActionApprove: {status: models.StatusApprovedAdvisor, verb: "approved"},
	services.ActionReject:  {status: models.StatusRejectedAdvisor, verb: "rejected"},
}

func (s *stubLeaves) AdvisorAction(_ context.Context, actor *models.User, id uint, action, remark string) (*services.DecisionResult, error) {
	s.lastID, s.lastAct = id, action
	if s.decideErr != nil {
		return nil, s.decideErr
	}
	outcome, ok := stubOutcomes[strings.ToLower(strings.TrimSpace(action))]
	if !ok {
		return nil, &services.ValidationError{Message: "action must be either 'approve' or 'reject'"}
	}
	return &services.DecisionResult{
		ApplicationID: id,
		OldStatus:     models.StatusPending,
		NewStatus:     outcome.status,
		Message:       "Leave application " + outcome.verb + " successfully",
	}, nil
}

func (s *stubLeaves) HodAction(_ context.Context, actor *models.User, id uint, action, remark string) (*services.DecisionResult, error) {
	if actor.Role != models.RoleHOD {
		return nil, services.ErrForbidden
	}
	return nil, services.ErrNotFoundOrProcessed
}

func newLeaveRouter(leaves *stubLeaves) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	users := stubUsers{
		1: {ID: 1, Role: models.RoleStudent},
		2: {ID: 2, Role: models.RoleAdvisor},
		3: {ID: 3, Role: models.RoleHOD},
	}
	h := NewLeaveController(leaves)
	g := r.Group("/api/leave/applications", middleware.AuthMiddleware(stubTokens{}, users))
	g.PUT("/:id/advisor-action", h.AdvisorAction)
	g.PUT("/:id/hod-action", h.HodAction)
	return r
}

func put(r http.Handler, path, userID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+userID)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAdvisorActionHandler(t *testing.T) {
	leaves := &stubLeaves{}
	r := newLeaveRouter(leaves)

	rec := put(r, "/api/leave/applications/10/advisor-action", "2", `{"action":"Approve","remark":"ok"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Leave application approved successfully") {
		t.Fatalf("body = %s", rec.Body.String())
	}
	if leaves.lastID != 10 || leaves.lastAct != "Approve" {
		t.Fatalf("called with id=%d action=%q", leaves.lastID, leaves.lastAct)
	}

	rec = put(r, "/api/leave/applications/12/advisor-action", "2", `{"action":"reject","remark":"no document"}`)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Leave application rejected successfully") {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"status":"rejected_advisor"`) {
		t.Fatalf("body = %s", rec.Body.String())
	}

	cases := []struct {
		name   string
		path   string
		body   string
		status int
	}{
		{name: "bad id", path: "/api/leave/applications/abc/advisor-action", body: `{"action":"approve"}`, status: http.StatusBadRequest},
		{name: "missing action", path: "/api/leave/applications/10/advisor-action", body: `{}`, status: http.StatusBadRequest},
		{name: "unknown action", path: "/api/leave/applications/10/advisor-action", body: `{"action":"escalate"}`, status: http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if rec := put(r, tc.path, "2", tc.body); rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
		})
	}
	if leaves.lastAct != "escalate" {
		t.Fatalf("unknown action was not passed to the service: %q", leaves.lastAct)
	}
}

func TestReviewHandlerErrorMapping(t *testing.T) {
	leaves := &stubLeaves{decideErr: services.ErrForbidden}
	r := newLeaveRouter(leaves)

	rec := put(r, "/api/leave/applications/10/advisor-action", "1", `{"action":"approve"}`)
	if rec.Code != http.StatusForbidden || !strings.Contains(rec.Body.String(), "Only advisors can perform this action") {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}

	rec = put(r, "/api/leave/applications/10/hod-action", "2", `{"action":"approve"}`)
	if rec.Code != http.StatusForbidden || !strings.Contains(rec.Body.String(), "Only HODs can perform this action") {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}

	rec = put(r, "/api/leave/applications/10/hod-action", "3", `{"action":"reject"}`)
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), "Application not found or already processed") {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}

	leaves.decideErr = errors.New("deadlock")
	rec = put(r, "/api/leave/applications/10/advisor-action", "2", `{"action":"approve"}`)
	if rec.Code != http.StatusInternalServerError || !strings.Contains(rec.Body.String(), "Failed to update application") {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
}

func TestRespondErrorStatuses(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err    error
		status int
		body   string
	}{
		{err: &services.ValidationError{Message: "end_date must not be before start_date"}, status: http.StatusBadRequest, body: "end_date must not be before start_date"},
		{err: fmt.Errorf("register: %w", services.ErrEmailTaken), status: http.StatusBadRequest, body: "User already exists"},
		{err: services.ErrInvalidCredentials, status: http.StatusBadRequest, body: "Invalid credentials"},
		{err: services.ErrForbidden, status: http.StatusForbidden, body: "Access denied"},
		{err: services.ErrNotFound, status: http.StatusNotFound, body: "Not found"},
		{err: errors.New("boom"), status: http.StatusInternalServerError, body: "Server error"},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		respondError(c, tc.err, "Server error")
		if rec.Code != tc.status || !strings.Contains(rec.Body.String(), tc.body) {
			t.Fatalf("%v: status = %d body = %s", tc.err, rec.Code, rec.Body.String())
		}
	}
}
