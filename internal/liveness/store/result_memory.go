package store

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"cardcheck/internal/liveness"
	"cardcheck/pkg/platform/sentinel"
)

// InMemoryResultStore keeps classification records in insertion order.
type InMemoryResultStore struct {
	mu      sync.RWMutex
	records []liveness.ClassificationRecord
	byID    map[uuid.UUID]int
}

func NewInMemoryResultStore() *InMemoryResultStore {
	return &InMemoryResultStore{byID: make(map[uuid.UUID]int)}
}

func (s *InMemoryResultStore) Save(_ context.Context, record *liveness.ClassificationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byID[record.ID]; exists {
		return sentinel.ErrConflict
	}
	s.byID[record.ID] = len(s.records)
	s.records = append(s.records, *record)
	return nil
}

func (s *InMemoryResultStore) FindByID(_ context.Context, id uuid.UUID) (*liveness.ClassificationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byID[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	record := s.records[i]
	return &record, nil
}

// ListRecent returns up to limit records, newest first. Records with equal
// timestamps keep reverse insertion order.
func (s *InMemoryResultStore) ListRecent(_ context.Context, limit int) ([]*liveness.ClassificationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ordered := make([]*liveness.ClassificationRecord, 0, len(s.records))
	for i := len(s.records) - 1; i >= 0; i-- {
		record := s.records[i]
		ordered = append(ordered, &record)
	}
	slices.SortStableFunc(ordered, func(a, b *liveness.ClassificationRecord) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	if limit >= 0 && len(ordered) > limit {
		ordered = ordered[:limit]
	}
	return ordered, nil
}
