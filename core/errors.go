package core

import (
	"errors"
	"fmt"
)

// ErrRateLimited is returned when the server answers 429. Running
// 'socorro-cli auth login' with a permissionless token raises the limit.
var ErrRateLimited = errors.New("rate limited: run 'socorro-cli auth login' to store an API token (the token must have no permissions attached)")

// NotFoundError is returned when the requested resource does not exist.
type NotFoundError struct {
	What string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found: %s", e.What)
}

// InvalidCrashIDError is returned for crash IDs that contain characters
// other than hex digits and dashes.
type InvalidCrashIDError struct {
	ID string
}

func (e *InvalidCrashIDError) Error() string {
	return fmt.Sprintf("invalid crash ID format: %q", e.ID)
}

// parsePreviewLimit bounds how much of a malformed payload a ParseError
// carries, so error messages stay readable and never dump whole responses.
const parsePreviewLimit = 200

// ParseError is returned when an upstream payload cannot be decoded. It
// keeps a bounded preview of the offending payload for diagnostics.
type ParseError struct {
	Cause   error
	Preview string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse response: %v: %s", e.Cause, e.Preview)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// NewParseError wraps a decode failure together with a preview of the
// payload that caused it.
func NewParseError(cause error, payload []byte) *ParseError {
	preview := string(payload)
	if len(preview) > parsePreviewLimit {
		preview = preview[:parsePreviewLimit]
	}
	return &ParseError{Cause: cause, Preview: preview}
}
