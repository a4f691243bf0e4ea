package service

import (
	"errors"
	"fmt"
)

// Auth flow specific errors used by handlers for stable error_type mapping.
var (
	// ErrDuplicateEmail blocks registration for an email that already has an
	// account, active or not.
	ErrDuplicateEmail = errors.New("duplicate_email")

	// ErrAccountNotFoundOrInactive blocks a login code request. Deliberately a
	// single error for both cases so the request step leaks as little as the
	// verify step.
	ErrAccountNotFoundOrInactive = errors.New("account_not_found_or_inactive")

	// ErrMissingSession means the pending-verification marker is absent or
	// expired. The client should restart the flow; not a security event.
	ErrMissingSession = errors.New("missing_session")

	// ErrInvalidOrExpiredCode covers every verify-step failure: wrong code,
	// expired code, already-used code. The caller must not learn which.
	ErrInvalidOrExpiredCode = errors.New("invalid_or_expired_code")
)

// DeliveryError reports that an email failed to send after the state change
// it announces was already committed. The user now holds a valid code they
// never saw, so the failure is surfaced distinctly instead of being folded
// into validation errors — but the committed state is never rolled back.
type DeliveryError struct {
	Email string
	Err   error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("failed to deliver email to %s: %v", e.Email, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}
