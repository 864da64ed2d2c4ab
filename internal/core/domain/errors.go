package domain

import "errors"

var (
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrLeadNotFound       = errors.New("lead not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("not authorized to access this route")
	ErrForbidden          = errors.New("not authorized to access this resource")
	ErrValidationFailed   = errors.New("validation failed")
)

// ValidationError reports the first field that failed payload validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}
