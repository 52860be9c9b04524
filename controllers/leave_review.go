package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"eduleave-api/models"
	"eduleave-api/services"

	"github.com/gin-gonic/gin"
)

type reviewRequest struct {
	Action string `json:"action" binding:"required"`
	Remark string `json:"remark"`
}

type reviewFunc func(ctx context.Context, actor *models.User, id uint, action, remark string) (*services.DecisionResult, error)

// AdvisorAction handles approve/reject decisions from class advisors.
func (h *LeaveController) AdvisorAction(c *gin.Context) {
	h.review(c, h.leaves.AdvisorAction, "Only advisors can perform this action")
}

// HodAction handles approve/reject decisions from heads of department.
func (h *LeaveController) HodAction(c *gin.Context) {
	h.review(c, h.leaves.HodAction, "Only HODs can perform this action")
}

func (h *LeaveController) review(c *gin.Context, decide reviewFunc, forbidden string) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	result, err := decide(c.Request.Context(), user, id, req.Action, strings.TrimSpace(req.Remark))
	if err != nil {
		if errors.Is(err, services.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": forbidden})
			return
		}
		respondError(c, err, "Failed to update application")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    result.Message,
		"status":     result.NewStatus,
		"old_status": result.OldStatus,
	})
}
