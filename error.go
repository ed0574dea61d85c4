package leadscan

import (
	"errors"
	"fmt"
	"time"
)

// Application error codes.
const (
	EINTERNAL  = "internal"
	EINVALID   = "invalid"
	ENOTFOUND  = "not_found"
	ERATELIMIT = "rate_limited"
	EFETCH     = "fetch_failed"
)

// Error represents an application-specific error.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var rl *RateLimitError
	if errors.As(err, &rl) {
		return ERATELIMIT
	}
	var fe *FetchError
	if errors.As(err, &fe) {
		return EFETCH
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	var rl *RateLimitError
	if errors.As(err, &rl) {
		return rl.Error()
	}
	var fe *FetchError
	if errors.As(err, &fe) {
		return "failed to fetch website"
	}
	return "Internal error"
}

// RateLimitError is returned when a scan is attempted before the minimum
// interval since the previous accepted scan has elapsed.
type RateLimitError struct {
	// RetryAfter is the remaining wait, rounded up to whole seconds.
	RetryAfter time.Duration
}

// NewRateLimitError returns a RateLimitError for the given remaining wait,
// rounding it up to the next whole second.
func NewRateLimitError(remaining time.Duration) *RateLimitError {
	secs := (remaining + time.Second - 1) / time.Second
	if secs < 1 {
		secs = 1
	}
	return &RateLimitError{RetryAfter: secs * time.Second}
}

// RetryAfterSeconds returns the wait time in whole seconds.
func (e *RateLimitError) RetryAfterSeconds() int {
	return int(e.RetryAfter / time.Second)
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("please wait %d seconds before scanning again", e.RetryAfterSeconds())
}

// FetchError is returned when the page could not be retrieved. Status is
// set when the server answered with a non-success status; Err is set for
// transport failures (DNS, TLS, timeout, oversized body).
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("failed to fetch %s: HTTP %d", e.URL, e.Status)
	}
	return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
