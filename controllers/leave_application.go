package controllers

import (
	"context"
	"net/http"
	"strings"

	"eduleave-api/models"
	"eduleave-api/services"

	"github.com/gin-gonic/gin"
)

// LeaveManager is the subset of services.LeaveService the handlers need.
type LeaveManager interface {
	Create(ctx context.Context, student *models.User, in services.CreateLeaveInput) (*models.LeaveApplication, error)
	List(ctx context.Context, requester *models.User, filter services.ListFilter) ([]models.LeaveApplicationView, error)
	Get(ctx context.Context, requester *models.User, id uint) (*models.LeaveApplicationView, error)
	History(ctx context.Context, requester *models.User, id uint) ([]models.LeaveStatusHistory, error)
	Summary(ctx context.Context, requester *models.User) (*services.Summary, error)
	AdvisorAction(ctx context.Context, actor *models.User, id uint, action, remark string) (*services.DecisionResult, error)
	HodAction(ctx context.Context, actor *models.User, id uint, action, remark string) (*services.DecisionResult, error)
}

type LeaveController struct {
	leaves LeaveManager
}

func NewLeaveController(leaves LeaveManager) *LeaveController {
	registerBindingTags()
	return &LeaveController{leaves: leaves}
}

type createLeaveRequest struct {
	LeaveType    string  `json:"leave_type" binding:"required,leavetype"`
	StartDate    string  `json:"start_date" binding:"required,isodate"`
	EndDate      string  `json:"end_date" binding:"required,isodate"`
	Reason       string  `json:"reason" binding:"required"`
	DocumentPath *string `json:"document_path"`
}

// CreateApplication submits a new leave application for the caller.
func (h *LeaveController) CreateApplication(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req createLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data"})
		return
	}

	app, err := h.leaves.Create(c.Request.Context(), user, services.CreateLeaveInput{
		LeaveType:    req.LeaveType,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Reason:       req.Reason,
		DocumentPath: req.DocumentPath,
	})
	if err != nil {
		respondError(c, err, "Failed to create leave application")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":       "Leave application submitted successfully",
		"applicationId": app.ID,
	})
}

// GetApplications lists the applications visible to the caller's role.
func (h *LeaveController) GetApplications(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	filter := services.ListFilter{
		Status:    strings.TrimSpace(c.Query("status")),
		LeaveType: strings.TrimSpace(c.Query("leave_type")),
	}

	rows, err := h.leaves.List(c.Request.Context(), user, filter)
	if err != nil {
		respondError(c, err, "Failed to fetch leave applications")
		return
	}

	c.JSON(http.StatusOK, rows)
}

func (h *LeaveController) GetApplication(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	app, err := h.leaves.Get(c.Request.Context(), user, id)
	if err != nil {
		respondError(c, err, "Failed to fetch leave application")
		return
	}

	c.JSON(http.StatusOK, app)
}

func (h *LeaveController) GetApplicationHistory(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	rows, err := h.leaves.History(c.Request.Context(), user, id)
	if err != nil {
		respondError(c, err, "Failed to fetch application history")
		return
	}

	c.JSON(http.StatusOK, rows)
}

// GetSummary returns the dashboard counters for the caller's role.
func (h *LeaveController) GetSummary(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	summary, err := h.leaves.Summary(c.Request.Context(), user)
	if err != nil {
		respondError(c, err, "Failed to fetch leave summary")
		return
	}

	c.JSON(http.StatusOK, summary)
}
