package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"eduleave-api/middleware"
	"eduleave-api/models"
	"eduleave-api/services"

	"github.com/gin-gonic/gin"
)

func (s *stubLeaves) Create(_ context.Context, student *models.User, in services.CreateLeaveInput) (*models.LeaveApplication, error) {
	s.created = append(s.created, in)
	return &models.LeaveApplication{ID: 42, StudentID: student.ID, Status: models.StatusPending}, nil
}

func post(r http.Handler, path, userID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+userID)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCreateApplicationHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	leaves := &stubLeaves{}
	r := gin.New()
	users := stubUsers{1: {ID: 1, Role: models.RoleStudent}}
	h := NewLeaveController(leaves)
	r.POST("/api/leave/applications", middleware.AuthMiddleware(stubTokens{}, users), h.CreateApplication)

	cases := []struct {
		name   string
		body   string
		status int
	}{
		{name: "unknown type", body: `{"leave_type":"vacation","start_date":"2024-01-15","end_date":"2024-01-17","reason":"trip"}`, status: http.StatusBadRequest},
		{name: "bad start date", body: `{"leave_type":"sick","start_date":"15/01/2024","end_date":"2024-01-17","reason":"flu"}`, status: http.StatusBadRequest},
		{name: "impossible end date", body: `{"leave_type":"sick","start_date":"2024-01-15","end_date":"2024-02-30","reason":"flu"}`, status: http.StatusBadRequest},
		{name: "missing reason", body: `{"leave_type":"sick","start_date":"2024-01-15","end_date":"2024-01-17"}`, status: http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := post(r, "/api/leave/applications", "1", tc.body)
			if rec.Code != tc.status || !strings.Contains(rec.Body.String(), "Invalid input data") {
				t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
			}
		})
	}
	if len(leaves.created) != 0 {
		t.Fatalf("invalid bodies reached the service: %+v", leaves.created)
	}

	rec := post(r, "/api/leave/applications", "1", `{"leave_type":"Sick","start_date":"2024-01-15","end_date":"2024-01-17","reason":"flu"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	if body := rec.Body.String(); !strings.Contains(body, `"applicationId":42`) || !strings.Contains(body, "Leave application submitted successfully") {
		t.Fatalf("body = %s", body)
	}
	if len(leaves.created) != 1 || leaves.created[0].LeaveType != "Sick" {
		t.Fatalf("created = %+v", leaves.created)
	}
}
