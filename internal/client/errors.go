package client

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrMissingToken is returned when an authentication response carries no token
	ErrMissingToken = errors.New("authentication response has no token")
	// ErrInvalidResponse is returned when a 2xx response body cannot be decoded
	ErrInvalidResponse = errors.New("invalid response body")
)

// APIError is a non-2xx response from the server
type APIError struct {
	Status  int
	Message string
	Code    string
	Field   string
	Body    []byte
}

func (e *APIError) Error() string {
	return e.Message
}

// TransportError is a failure to complete the HTTP exchange: the network was unreachable,
// the connection broke, or the request was cancelled.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsCanceled reports whether err is the result of a cancelled request.
// Callers treat this as a deliberate abandonment and show nothing.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}

// AsAPIError returns the APIError in err's chain, if any
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
