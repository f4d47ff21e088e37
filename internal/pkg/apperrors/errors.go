package apperrors

import (
	"errors"
	"fmt"
)

// ValidationError is returned when a request payload is malformed or a state
// transition is not allowed. Reported to the caller, no state change.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError is returned when a document or chunk id is unknown.
type NotFoundError struct {
	Resource string
	Id       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.Id)
}

func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, Id: id}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
