// Package services holds the domain logic between the HTTP controllers and
// the repositories. Services accept store interfaces so tests can run
// against in-memory fakes.
package services

import "errors"

// Failure taxonomy. Controllers map these onto HTTP statuses; everything
// else becomes a 500.
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateIdentity  = errors.New("identity already exists")
	ErrDuplicateRequest   = errors.New("enquiry already sent")
	ErrValidation         = errors.New("validation failed")
)

// Validation returns an ErrValidation-classified error carrying a
// caller-facing message.
func Validation(msg string) error {
	return &validationError{msg: msg}
}

type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func (e *validationError) Is(target error) bool { return target == ErrValidation }
