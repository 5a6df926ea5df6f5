package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is returned for every failed call. StatusCode is zero when the
// request never got a response (network failure, timeout, cancellation).
type Error struct {
	StatusCode int
	Method     string
	Path       string
	Message    string

	cause error
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("apiclient: %s %s: %s", e.Method, e.Path, e.Message)
	}
	return fmt.Sprintf("apiclient: %s %s: %d %s", e.Method, e.Path, e.StatusCode, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// AsError extracts *Error from err.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	if e, ok := AsError(err); ok {
		return e.StatusCode
	}
	return 0
}

// Message returns the server message carried by err, or fallback when err
// carries none.
func Message(err error, fallback string) string {
	if e, ok := AsError(err); ok && e.Message != "" && e.StatusCode != 0 {
		return e.Message
	}
	return fallback
}

func IsNotFound(err error) bool     { return StatusCode(err) == http.StatusNotFound }
func IsUnauthorized(err error) bool { return StatusCode(err) == http.StatusUnauthorized }
func IsConflict(err error) bool     { return StatusCode(err) == http.StatusConflict }
