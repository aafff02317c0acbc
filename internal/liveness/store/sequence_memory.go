// Package store holds the sequence cache and result store implementations
// used by the liveness service.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"cardcheck/internal/liveness"
	"cardcheck/pkg/platform/sentinel"
)

type cachedSequence struct {
	seq       liveness.StoredSequence
	expiresAt time.Time
}

// InMemorySequenceCache keeps sequences in a map. Expired entries are evicted
// on read and by the StartCleanup sweep.
type InMemorySequenceCache struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]cachedSequence
	now     func() time.Time
}

// MemoryOption configures an InMemorySequenceCache.
type MemoryOption func(*InMemorySequenceCache)

// WithClock overrides the clock used for expiry.
func WithClock(now func() time.Time) MemoryOption {
	return func(c *InMemorySequenceCache) {
		c.now = now
	}
}

func NewInMemorySequenceCache(opts ...MemoryOption) *InMemorySequenceCache {
	c := &InMemorySequenceCache{
		entries: make(map[uuid.UUID]cachedSequence),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Put stores a deep copy of seq. A non-positive ttl never expires.
func (c *InMemorySequenceCache) Put(_ context.Context, seq *liveness.StoredSequence, ttl time.Duration) error {
	entry := cachedSequence{seq: *seq}
	entry.seq.Sequence = seq.Sequence.Clone()
	if ttl > 0 {
		entry.expiresAt = c.now().Add(ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[seq.ID] = entry
	return nil
}

// Get returns a copy the caller may mutate freely.
func (c *InMemorySequenceCache) Get(_ context.Context, id uuid.UUID) (*liveness.StoredSequence, error) {
	c.mu.RLock()
	entry, ok := c.entries[id]
	c.mu.RUnlock()
	if !ok {
		return nil, sentinel.ErrNotFound
	}

	if !entry.expiresAt.IsZero() && !c.now().Before(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, id)
		c.mu.Unlock()
		return nil, sentinel.ErrExpired
	}

	out := entry.seq
	out.Sequence = entry.seq.Sequence.Clone()
	return &out, nil
}

// StartCleanup sweeps expired entries every interval until ctx is cancelled.
func (c *InMemorySequenceCache) StartCleanup(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.RemoveExpiredAt(c.now())
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// RemoveExpiredAt evicts every entry expired as of now and returns how many
// were removed.
func (c *InMemorySequenceCache) RemoveExpiredAt(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for id, entry := range c.entries {
		if !entry.expiresAt.IsZero() && !now.Before(entry.expiresAt) {
			delete(c.entries, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of entries, including expired ones not yet evicted.
func (c *InMemorySequenceCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
