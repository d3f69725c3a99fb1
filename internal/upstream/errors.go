// Package upstream contains the HTTP clients for the third-party APIs the
// site proxies: GitHub, dev.to and the contact form relay.
package upstream

import (
	"errors"
	"fmt"
)

// ErrNotConfigured is returned when a client is missing required settings.
var ErrNotConfigured = errors.New("upstream not configured")

// StatusError is a non-success reply, or a failed round trip when StatusCode is 0.
type StatusError struct {
	Service     string
	StatusCode  int
	RateLimited bool
	Err         error
}

func (e *StatusError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: request failed: %v", e.Service, e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: HTTP status %d: %v", e.Service, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: HTTP status %d", e.Service, e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// AsStatusError unwraps err to a *StatusError if it is one.
func AsStatusError(err error) (*StatusError, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
