package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// lockTTL bounds how long a slot lock can outlive its holder. Locks are
// released explicitly after the booking insert; the TTL only covers
// crashes mid-create.
const lockTTL = 10 * time.Second

// SlotLocker serialises concurrent booking attempts on the same
// (worker, date, slot) triple via SETNX.
// Key format: slotlock:<worker_id>:<date>:<slot>
type SlotLocker struct {
	client *redis.Client
}

// NewSlotLocker wraps the given Redis client.
func NewSlotLocker(client *redis.Client) *SlotLocker {
	return &SlotLocker{client: client}
}

// Acquire attempts to take the lock. It returns false when another
// booking attempt currently holds it.
func (l *SlotLocker) Acquire(ctx context.Context, workerID, date, slot string) (bool, error) {
	ok, err := l.client.SetNX(ctx, l.key(workerID, date, slot), "1", lockTTL).Result()
	if err != nil {
		return false, fmt.Errorf("slot lock: %w", err)
	}
	return ok, nil
}

// Release frees the lock. Best effort: an expired or missing key is fine.
func (l *SlotLocker) Release(ctx context.Context, workerID, date, slot string) {
	l.client.Del(ctx, l.key(workerID, date, slot))
}

func (l *SlotLocker) key(workerID, date, slot string) string {
	return fmt.Sprintf("slotlock:%s:%s:%s", workerID, date, slot)
}
