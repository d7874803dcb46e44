package directory

import (
	"errors"
	"fmt"
)

// ErrEmptyGroupID is returned when Fetch is called without a group id.
var ErrEmptyGroupID = errors.New("group id is empty")

// maxErrorBody caps how much of an error response body is kept.
const maxErrorBody = 512

// AuthError means no access token could be acquired.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("failed to acquire directory token: %v", e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// StatusError is a non-2xx answer from the directory.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("directory request %s failed with status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("directory request %s failed with status %d: %s", e.URL, e.StatusCode, e.Body)
}

// DecodeError is a response body that could not be parsed.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode directory response from %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// RequestError is a request that never produced a response.
type RequestError struct {
	URL string
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("failed to request %s: %v", e.URL, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// IsDirectoryError reports whether err came from a directory read.
func IsDirectoryError(err error) bool {
	var (
		authErr    *AuthError
		statusErr  *StatusError
		decodeErr  *DecodeError
		requestErr *RequestError
	)
	return errors.Is(err, ErrEmptyGroupID) ||
		errors.As(err, &authErr) ||
		errors.As(err, &statusErr) ||
		errors.As(err, &decodeErr) ||
		errors.As(err, &requestErr)
}
