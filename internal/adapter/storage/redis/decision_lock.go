package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// DecisionLockStore implements ports.DecisionLock using Redis SET NX.
// One key per withdrawal request; the TTL caps how long a crashed
// holder can keep the lock.
type DecisionLockStore struct {
	client *goredis.Client
	prefix string
}

// NewDecisionLockStore creates a new Redis-backed decision lock.
func NewDecisionLockStore(client *goredis.Client) *DecisionLockStore {
	return &DecisionLockStore{
		client: client,
		prefix: "wdr:lock:",
	}
}

// Acquire atomically takes the per-request lock. Returns false when
// another decision already holds it.
func (s *DecisionLockStore) Acquire(ctx context.Context, withdrawalID int64, ttl time.Duration) (bool, error) {
	key := s.prefix + strconv.FormatInt(withdrawalID, 10)
	result, err := s.client.SetArgs(ctx, key, 1, goredis.SetArgs{
		Mode: "NX",
		TTL:  ttl,
	}).Result()
	if err != nil {
		if err == goredis.Nil {
			// Key already exists: another decision is in flight
			return false, nil
		}
		return false, fmt.Errorf("redis decision lock: %w", err)
	}
	return result == "OK", nil
}

// Release drops the per-request lock.
func (s *DecisionLockStore) Release(ctx context.Context, withdrawalID int64) error {
	key := s.prefix + strconv.FormatInt(withdrawalID, 10)
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis decision unlock: %w", err)
	}
	return nil
}
