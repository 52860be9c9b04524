package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"eduleave-api/middleware"
	"eduleave-api/models"
	"eduleave-api/services"
	"eduleave-api/utils"

	"github.com/gin-gonic/gin"
)

// registerBindingTags installs the custom request tags before any handler binds a body.
func registerBindingTags() {
	if err := utils.RegisterBindingValidators(); err != nil {
		log.Printf("register binding validators: %v", err)
	}
}

// respondError maps service errors to HTTP statuses. Unknown errors are logged
// and answered with fallback.
func respondError(c *gin.Context, err error, fallback string) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
	case errors.Is(err, services.ErrNotFoundOrProcessed):
		c.JSON(http.StatusNotFound, gin.H{"error": services.ErrNotFoundOrProcessed.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	default:
		log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param(name)), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return 0, false
	}
	return uint(id), true
}

// currentUser writes a 401 when the auth middleware did not run.
func currentUser(c *gin.Context) (*models.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
		return nil, false
	}
	return user, true
}
