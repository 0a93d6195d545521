package domain

import "errors"

var (
	ErrDuplicateIdentity  = errors.New("phone or email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPendingApproval    = errors.New("account pending approval")
	ErrRejected           = errors.New("account rejected")
	ErrDeactivated        = errors.New("account deactivated")
	ErrAccountNotFound    = errors.New("account not found")
	ErrAdminNotFound      = errors.New("admin not found")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrForbidden          = errors.New("insufficient privilege")
	ErrSettingNotFound    = errors.New("setting not found")
)

// ValidationError reports the first offending input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Message
}

// NewValidationError builds a field-specific validation failure.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
