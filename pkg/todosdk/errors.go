package todosdk

import (
	"errors"
	"fmt"
)

// ErrNotSignedIn is returned when the service bounced the request to /login.
var ErrNotSignedIn = errors.New("not signed in")

// FormError is a login or registration form that came back with an inline error.
type FormError struct {
	StatusCode int
	Message    string
}

func (e *FormError) Error() string {
	return fmt.Sprintf("form rejected (%d): %s", e.StatusCode, e.Message)
}

// StatusError is an unexpected HTTP status from a JSON endpoint.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}
