package api

import (
	"errors"
	"fmt"
	"time"
)

// The client collapses HTTP status codes into a small error taxonomy so
// callers never inspect transport detail themselves. Not-found and
// conflict are expected outcomes, forbidden and rate-limited are
// business outcomes, everything else is transport.

// ErrNotFound indicates the resource does not exist (404).
type ErrNotFound struct {
	Op  string
	Err error
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s: not found: %v", e.Op, e.Err)
}

func (e *ErrNotFound) Unwrap() error { return e.Err }

// ErrConflict indicates the write collided with existing state (409),
// e.g. creating a note that already exists.
type ErrConflict struct {
	Op  string
	Err error
}

func (e *ErrConflict) Error() string {
	return fmt.Sprintf("%s: conflict: %v", e.Op, e.Err)
}

func (e *ErrConflict) Unwrap() error { return e.Err }

// ErrForbidden indicates the caller lacks entitlement (401/403).
type ErrForbidden struct {
	Op  string
	Err error
}

func (e *ErrForbidden) Error() string {
	return fmt.Sprintf("%s: forbidden: %v", e.Op, e.Err)
}

func (e *ErrForbidden) Unwrap() error { return e.Err }

// ErrRateLimited indicates the service throttled the caller (429).
type ErrRateLimited struct {
	Op         string
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimited) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("%s: rate limited (retry after %s): %v", e.Op, e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("%s: rate limited: %v", e.Op, e.Err)
}

func (e *ErrRateLimited) Unwrap() error { return e.Err }

// ErrTransport covers network failures, 5xx responses and anything else
// the taxonomy has no better name for.
type ErrTransport struct {
	Op         string
	StatusCode int // 0 when the request never got a response
	Err        error
}

func (e *ErrTransport) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: HTTP %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: transport: %v", e.Op, e.Err)
}

func (e *ErrTransport) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a not-found outcome.
func IsNotFound(err error) bool {
	var e *ErrNotFound
	return errors.As(err, &e)
}

// IsConflict reports whether err is a conflict outcome.
func IsConflict(err error) bool {
	var e *ErrConflict
	return errors.As(err, &e)
}

// IsForbidden reports whether err is an entitlement failure.
func IsForbidden(err error) bool {
	var e *ErrForbidden
	return errors.As(err, &e)
}

// IsRateLimited reports whether err is a throttling failure.
func IsRateLimited(err error) bool {
	var e *ErrRateLimited
	return errors.As(err, &e)
}
