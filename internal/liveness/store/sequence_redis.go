package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"cardcheck/internal/liveness"
	"cardcheck/pkg/platform/sentinel"
)

const sequenceKeyPrefix = "cardcheck:seq:"

// RedisSequenceCache stores sequences as JSON under a TTL so that every
// server instance can classify a sequence another instance generated.
type RedisSequenceCache struct {
	client *redis.Client
}

func NewRedisSequenceCache(client *redis.Client) *RedisSequenceCache {
	return &RedisSequenceCache{client: client}
}

func sequenceKey(id uuid.UUID) string {
	return sequenceKeyPrefix + id.String()
}

// Put stores seq. A non-positive ttl never expires.
func (c *RedisSequenceCache) Put(ctx context.Context, seq *liveness.StoredSequence, ttl time.Duration) error {
	data, err := json.Marshal(seq)
	if err != nil {
		return fmt.Errorf("marshal sequence: %w", err)
	}
	if ttl < 0 {
		ttl = 0
	}
	if err := c.client.Set(ctx, sequenceKey(seq.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("%w: set sequence: %v", sentinel.ErrUnavailable, err)
	}
	return nil
}

// Get returns sentinel.ErrNotFound once the key has expired; Redis does not
// distinguish expired keys from keys that never existed.
func (c *RedisSequenceCache) Get(ctx context.Context, id uuid.UUID) (*liveness.StoredSequence, error) {
	data, err := c.client.Get(ctx, sequenceKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get sequence: %v", sentinel.ErrUnavailable, err)
	}

	var seq liveness.StoredSequence
	if err := json.Unmarshal(data, &seq); err != nil {
		return nil, fmt.Errorf("unmarshal sequence: %w", err)
	}
	return &seq, nil
}
