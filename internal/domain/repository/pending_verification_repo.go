package repository

import (
	"context"
	"time"
)

// Pending verification flows. Keys of different flows never collide, so a
// registration confirmation and a login confirmation can be outstanding for
// the same browser at the same time.
const (
	PendingFlowRegistration = "registration"
	PendingFlowLogin        = "login"
)

// PendingVerificationRepository ties an opaque session ID to the email a
// one-time code was issued for. Entries live only between "code requested"
// and "code verified or abandoned" and expire on their own.
type PendingVerificationRepository interface {
	Set(ctx context.Context, flow, sessionID, email string, ttl time.Duration) error
	// Get returns the pending email or apperrors.ErrNotFound.
	Get(ctx context.Context, flow, sessionID string) (string, error)
	Clear(ctx context.Context, flow, sessionID string) error
}
