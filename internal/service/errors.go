// Package service holds the business rules: ownership checks, balance
// maintenance, budget and goal math, currency conversion, analytics
// aggregation and batch import. Handlers stay thin and translate the
// errors defined here into HTTP responses.
package service

import "errors"

// ErrNotFound means the requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrForbidden means the entity exists but belongs to another user.
var ErrForbidden = errors.New("forbidden")

// ErrEmailTaken is returned by registration when the email is in use.
var ErrEmailTaken = errors.New("email already registered")

// ErrInvalidCredentials is returned on a failed login.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ValidationError carries a user-facing message for a rejected input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Invalid builds a ValidationError.
func Invalid(msg string) error { return &ValidationError{Message: msg} }

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
