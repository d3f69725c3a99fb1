package services

import (
	"errors"
	"fmt"
	"net/http"

	"portfolio.dev/internal/upstream"
)

// APIError is an error with the HTTP status and message a handler should return
type APIError struct {
	Status  int
	Message string
	Fields  map[string]string // per-field validation messages
	Err     error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the status code for err, defaulting to 500
func HTTPStatus(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return http.StatusInternalServerError
}

func badRequest(msg string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Message: msg}
}

var displayNames = map[string]string{
	"github": "GitHub",
	"devto":  "dev.to",
	"relay":  "relay",
}

// fromUpstream maps an upstream failure onto the small set of statuses the
// proxy routes expose: 401, 404, 429 and 500.
func fromUpstream(err error, notFound, fallback string) *APIError {
	se, ok := upstream.AsStatusError(err)
	if !ok {
		return &APIError{Status: http.StatusInternalServerError, Message: fallback, Err: err}
	}
	name := displayNames[se.Service]
	if name == "" {
		name = se.Service
	}
	switch {
	case se.RateLimited:
		return &APIError{Status: http.StatusTooManyRequests, Message: name + " API rate limit exceeded", Err: err}
	case se.StatusCode == http.StatusNotFound:
		return &APIError{Status: http.StatusNotFound, Message: notFound, Err: err}
	case se.StatusCode == http.StatusUnauthorized:
		return &APIError{Status: http.StatusUnauthorized, Message: "Invalid " + name + " token", Err: err}
	}
	return &APIError{Status: http.StatusInternalServerError, Message: fallback, Err: err}
}
