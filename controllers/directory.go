package controllers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"eduleave-api/models"

	"github.com/gin-gonic/gin"
)

// Directory is the subset of services.DirectoryService the handlers need.
type Directory interface {
	ListDepartments(ctx context.Context) ([]models.Department, error)
	ListClasses(ctx context.Context, departmentID *uint) ([]models.ClassView, error)
	ListUsers(ctx context.Context, requester *models.User) ([]models.UserView, error)
}

type DirectoryController struct {
	directory Directory
}

func NewDirectoryController(directory Directory) *DirectoryController {
	return &DirectoryController{directory: directory}
}

func (h *DirectoryController) GetDepartments(c *gin.Context) {
	rows, err := h.directory.ListDepartments(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch departments")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GetClasses lists classes, optionally filtered by ?department_id=.
func (h *DirectoryController) GetClasses(c *gin.Context) {
	var departmentID *uint
	if raw := strings.TrimSpace(c.Query("department_id")); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || v == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid department_id"})
			return
		}
		id := uint(v)
		departmentID = &id
	}

	rows, err := h.directory.ListClasses(c.Request.Context(), departmentID)
	if err != nil {
		respondError(c, err, "Failed to fetch classes")
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *DirectoryController) GetUsers(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	rows, err := h.directory.ListUsers(c.Request.Context(), user)
	if err != nil {
		respondError(c, err, "Failed to fetch users")
		return
	}
	c.JSON(http.StatusOK, rows)
}
