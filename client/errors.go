package client

import (
	"errors"
	"fmt"
)

// Error categories surfaced to callers. The backend's message (when present)
// is wrapped around one of these sentinels, so callers categorize with
// errors.Is and still see the human-readable detail.
var (
	// ErrValidation - a required field was missing or malformed; no request
	// was sent.
	ErrValidation = errors.New("validation failed")

	// ErrAuthenticationFailed - the backend rejected the login credentials.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrNotAuthenticated - the operation needs a stored access token and
	// none exists.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrSessionExpired - the refresh attempt failed or was exhausted.
	// Stored credentials have been cleared; the caller must log in again.
	ErrSessionExpired = errors.New("session expired")

	// ErrNotFound - the backend reports the resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrServerRejected - the backend returned an error envelope for a
	// non-authentication reason.
	ErrServerRejected = errors.New("server rejected request")

	// ErrNetworkUnavailable - transport-level failure, the request never
	// produced a response (unreachable host, timeout).
	ErrNetworkUnavailable = errors.New("network unavailable")

	// ErrUnknown - fallback for unclassified failures.
	ErrUnknown = errors.New("unknown error")
)

// wrapKind attaches the backend's message to a sentinel, falling back to a
// generic detail when the backend gave none.
func wrapKind(kind error, message string) error {
	if message == "" {
		message = "request failed"
	}
	return fmt.Errorf("%w: %s", kind, message)
}
