package services

import "errors"

var (
	// ErrValidation marks input that failed a business rule (missing field, bad date, unknown enum).
	ErrValidation = errors.New("validation failed")
	// ErrEmailTaken is returned by Register when the email already belongs to a user.
	ErrEmailTaken = errors.New("User already exists")
	// ErrInvalidCredentials is shared by unknown-email and wrong-password logins.
	ErrInvalidCredentials = errors.New("Invalid credentials")
	// ErrForbidden is returned when the caller's role may not perform the action.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound is returned for rows that do not exist or are not visible to the caller.
	ErrNotFound = errors.New("not found")
	// ErrNotFoundOrProcessed is returned when a conditional status update matched no row.
	ErrNotFoundOrProcessed = errors.New("Application not found or already processed")
)

// ValidationError carries a client-facing message and unwraps to ErrValidation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

func validationf(msg string) error {
	return &ValidationError{Message: msg}
}
