package feed

import (
	"errors"
	"fmt"
)

// UpstreamError is a non-2xx response from a card source.
type UpstreamError struct {
	Source string
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s: HTTP %d: %s", e.Source, e.Status, e.Body)
}

// TransportError is a network or decode failure while talking to a card source.
type TransportError struct {
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	return e.Message
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsStatus returns true if err (or any wrapped error) is an UpstreamError with the given status code.
func IsStatus(err error, code int) bool {
	var upErr *UpstreamError
	if errors.As(err, &upErr) {
		return upErr.Status == code
	}
	return false
}
