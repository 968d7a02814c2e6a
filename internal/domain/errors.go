package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrInvalidInput is matched by every InputError and UnsupportedProtocolError
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates a resource was not found
	ErrNotFound = errors.New("not found")

	// ErrCacheMiss indicates a cache miss
	ErrCacheMiss = errors.New("cache miss")

	// ErrTimeout indicates a timeout occurred
	ErrTimeout = errors.New("timeout")

	// ErrRateLimited indicates rate limiting was encountered
	ErrRateLimited = errors.New("rate limited")

	// ErrInvalidURL indicates an invalid URL was provided
	ErrInvalidURL = errors.New("invalid URL")
)

// InputError reports a malformed or missing annotation, or an unresolvable location
type InputError struct {
	Reason string
	Err    error
}

func (e *InputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// Is makes every InputError match ErrInvalidInput
func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewInputError creates a new InputError
func NewInputError(reason string, err error) *InputError {
	return &InputError{
		Reason: reason,
		Err:    err,
	}
}

// UnsupportedProtocolError is an InputError raised when no resolver handles a protocol
type UnsupportedProtocolError struct {
	Protocol string
}

func (e *UnsupportedProtocolError) Error() string {
	return fmt.Sprintf("unable to resolve location type %s", e.Protocol)
}

// Is makes UnsupportedProtocolError match ErrInvalidInput
func (e *UnsupportedProtocolError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewUnsupportedProtocolError creates a new UnsupportedProtocolError
func NewUnsupportedProtocolError(protocol string) *UnsupportedProtocolError {
	return &UnsupportedProtocolError{Protocol: protocol}
}

// IsInputError reports whether err is caused by invalid user input
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// FetchError represents an error during a checkout or an HTTP fetch
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fetch error for %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch error for %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError creates a new FetchError
func NewFetchError(url string, statusCode int, err error) *FetchError {
	return &FetchError{
		URL:        url,
		StatusCode: statusCode,
		Err:        err,
	}
}

// IsFetchError reports whether err wraps a FetchError
func IsFetchError(err error) bool {
	var fetchErr *FetchError
	return errors.As(err, &fetchErr)
}

// RetryableError indicates an error that can be retried
type RetryableError struct {
	Err        error
	RetryAfter int // Seconds to wait before retry, 0 if unknown
}

func (e *RetryableError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("retryable error (retry after %ds): %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("retryable error: %v", e.Err)
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// IsRetryable checks if an HTTP error should be retried.
// Checkout failures are never retried.
func IsRetryable(err error) bool {
	var retryable *RetryableError
	if errors.As(err, &retryable) {
		return true
	}

	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		switch fetchErr.StatusCode {
		case 429, 503, 502, 504:
			return true
		}
	}

	return errors.Is(err, ErrRateLimited)
}

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}
