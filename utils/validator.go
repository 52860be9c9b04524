// utils/validator.go - Input validation
package utils

import (
	"regexp"
	"strings"
	"sync"
	"time"

	"eduleave-api/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// DateLayout is the wire format for leave dates.
const DateLayout = "2006-01-02"

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail checks if email is valid
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// SanitizeInput removes potentially harmful characters
func SanitizeInput(input string) string {
	// Remove leading/trailing spaces
	input = strings.TrimSpace(input)

	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	return input
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(value string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

var (
	bindingOnce sync.Once
	bindingErr  error
)

// RegisterBindingValidators adds the leavetype, userrole and isodate tags to
// gin's validator so request structs can use them in `binding:"..."`.
// Safe to call more than once.
func RegisterBindingValidators() error {
	bindingOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			bindingErr = RegisterValidators(v)
		}
	})
	return bindingErr
}

// RegisterValidators installs the custom tags on v.
func RegisterValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("leavetype", func(fl validator.FieldLevel) bool {
		return models.LeaveType(strings.ToLower(strings.TrimSpace(fl.Field().String()))).Valid()
	}); err != nil {
		return err
	}
	if err := v.RegisterValidation("userrole", func(fl validator.FieldLevel) bool {
		return models.IsValidRole(strings.ToLower(strings.TrimSpace(fl.Field().String())))
	}); err != nil {
		return err
	}
	return v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, ok := ParseDate(fl.Field().String())
		return ok
	})
}
