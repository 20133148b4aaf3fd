package booking

import (
	"errors"
	"fmt"
)

// ErrLoginRequired is returned when a booking is attempted without a signed-in user.
var ErrLoginRequired = errors.New("login required")

// ValidationError reports an event that cannot be stored.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewValidationError(msg string) error {
	return &ValidationError{
		Code:    "invalidEvent",
		Message: msg,
	}
}
