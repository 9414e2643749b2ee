package service

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is the parent of every input rejection. Match it with errors.Is.
	ErrValidation = errors.New("validation failed")

	ErrMissingFields    = fmt.Errorf("%w: all fields are required", ErrValidation)
	ErrPasswordMismatch = fmt.Errorf("%w: passwords must match", ErrValidation)
	ErrPasswordTooLong  = fmt.Errorf("%w: password is too long", ErrValidation)

	ErrDuplicateUsername  = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrStore wraps any persistence failure the caller cannot act on.
	ErrStore = errors.New("store failure")
)

func storeErr(err error) error {
	return fmt.Errorf("%w: %w", ErrStore, err)
}
