package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/servicehub/marketplace-api/internal/core/domain"
)

// retentionTTL is how long a pending signup stays in Redis. It is
// deliberately longer than the OTP validity window so that a late
// verification attempt reads the entry and gets an "expired" answer
// instead of "not found".
const retentionTTL = 30 * time.Minute

// PendingSignupStore caches unverified signups as JSON blobs.
// Key format: pending_signup:<email>
type PendingSignupStore struct {
	client *redis.Client
}

// NewPendingSignupStore wraps the given Redis client.
func NewPendingSignupStore(client *redis.Client) *PendingSignupStore {
	return &PendingSignupStore{client: client}
}

func (s *PendingSignupStore) Get(ctx context.Context, email string) (*domain.PendingSignup, error) {
	raw, err := s.client.Get(ctx, s.key(email)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNoPendingSignup
		}
		return nil, fmt.Errorf("get pending signup: %w", err)
	}

	var pending domain.PendingSignup
	if err := json.Unmarshal(raw, &pending); err != nil {
		return nil, fmt.Errorf("decode pending signup: %w", err)
	}
	return &pending, nil
}

// Put stores the entry, overwriting any previous one for the email and
// resetting the retention window.
func (s *PendingSignupStore) Put(ctx context.Context, pending *domain.PendingSignup) error {
	raw, err := json.Marshal(pending)
	if err != nil {
		return fmt.Errorf("encode pending signup: %w", err)
	}
	if err := s.client.Set(ctx, s.key(pending.Email), raw, retentionTTL).Err(); err != nil {
		return fmt.Errorf("put pending signup: %w", err)
	}
	return nil
}

func (s *PendingSignupStore) Delete(ctx context.Context, email string) error {
	if err := s.client.Del(ctx, s.key(email)).Err(); err != nil {
		return fmt.Errorf("delete pending signup: %w", err)
	}
	return nil
}

func (s *PendingSignupStore) key(email string) string {
	return "pending_signup:" + email
}
