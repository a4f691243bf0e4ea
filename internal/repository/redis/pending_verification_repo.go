package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	apperrors "github.com/Keavors/MyFanBoard/internal/pkg/errors"
)

// PendingVerificationRepo implements repository.PendingVerificationRepository
// on Redis. Keys are namespaced per flow ("pending:registration:<sid>" vs
// "pending:login:<sid>") so both flows can be outstanding for the same
// browser session at once. Redis TTL handles abandonment, there is no
// explicit cleanup.
type PendingVerificationRepo struct {
	client redis.UniversalClient
}

func NewPendingVerificationRepo(client redis.UniversalClient) (*PendingVerificationRepo, error) {
	if client == nil {
		return nil, fmt.Errorf("Redis client cannot be nil for PendingVerificationRepo")
	}
	return &PendingVerificationRepo{client: client}, nil
}

func pendingKey(flow, sessionID string) string {
	return fmt.Sprintf("pending:%s:%s", flow, sessionID)
}

// Set records that sessionID is waiting for a code sent to email.
func (r *PendingVerificationRepo) Set(ctx context.Context, flow, sessionID, email string, ttl time.Duration) error {
	return r.client.Set(ctx, pendingKey(flow, sessionID), email, ttl).Err()
}

// Get returns the email the pending session was started for.
func (r *PendingVerificationRepo) Get(ctx context.Context, flow, sessionID string) (string, error) {
	email, err := r.client.Get(ctx, pendingKey(flow, sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperrors.ErrNotFound
		}
		return "", err
	}
	return email, nil
}

// Clear drops the pending marker. Clearing a missing key is not an error.
func (r *PendingVerificationRepo) Clear(ctx context.Context, flow, sessionID string) error {
	return r.client.Del(ctx, pendingKey(flow, sessionID)).Err()
}
