package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

// NetworkError indicates a transport failure or a non-2xx response.
type NetworkError struct {
	Op         string // "fetch problem" or "check answer"
	StatusCode int    // 0 when the request never got a response
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		if e.Err != nil {
			return fmt.Sprintf("%s: HTTP %d: %v", e.Op, e.StatusCode, e.Err)
		}
		return fmt.Sprintf("%s: HTTP %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates a 2xx response whose body does not match the
// expected shape.
type ErrInvalidResponse struct {
	Op      string
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("%s: invalid response: %v", e.Op, e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ValidationError indicates answer input that cannot be submitted.
type ValidationError struct {
	Input  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid answer %q: %s", e.Input, e.Reason)
}

// IsNetworkError reports whether err came from talking to the service,
// either a transport failure or an unusable response.
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return true
	}
	var invErr *ErrInvalidResponse
	return errors.As(err, &invErr)
}

// IsValidationError reports whether err is a *ValidationError.
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}
