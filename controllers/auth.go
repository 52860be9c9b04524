// controllers/auth.go
package controllers

import (
	"context"
	"net/http"

	"eduleave-api/models"
	"eduleave-api/services"

	"github.com/gin-gonic/gin"
)

// Authenticator is the subset of services.AuthService the handlers need.
type Authenticator interface {
	Register(ctx context.Context, in services.RegisterInput) (uint, error)
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
	Profile(ctx context.Context, id uint) (*models.UserView, error)
}

type AuthController struct {
	auth Authenticator
}

func NewAuthController(auth Authenticator) *AuthController {
	registerBindingTags()
	return &AuthController{auth: auth}
}

type registerRequest struct {
	Email        string `json:"email" binding:"required"`
	Password     string `json:"password" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Role         string `json:"role" binding:"required,userrole"`
	DepartmentID *uint  `json:"department_id"`
	ClassID      *uint  `json:"class_id"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register handles user registration
func (h *AuthController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data"})
		return
	}

	id, err := h.auth.Register(c.Request.Context(), services.RegisterInput{
		Email:        req.Email,
		Password:     req.Password,
		Name:         req.Name,
		Role:         req.Role,
		DepartmentID: req.DepartmentID,
		ClassID:      req.ClassID,
	})
	if err != nil {
		respondError(c, err, "Server error")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"userId":  id,
	})
}

// Login handles user authentication
func (h *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid credentials"})
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err, "Server error")
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetProfile returns the caller with department and class names.
func (h *AuthController) GetProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	profile, err := h.auth.Profile(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err, "Failed to fetch profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": profile})
}
