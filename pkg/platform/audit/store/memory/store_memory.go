package memory

import (
	"context"
	"sync"

	audit "cardcheck/pkg/platform/audit"
)

// DefaultCapacity is how many events the store retains before overwriting
// the oldest.
const DefaultCapacity = 10000

// InMemoryStore is a fixed-size ring of events in append order.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []audit.Event
	head   int // index of the oldest event
	count  int
}

// Option configures an InMemoryStore.
type Option func(*InMemoryStore)

// WithCapacity sets how many events are retained. Non-positive values keep
// DefaultCapacity.
func WithCapacity(n int) Option {
	return func(s *InMemoryStore) {
		if n > 0 {
			s.events = make([]audit.Event, n)
		}
	}
}

func NewInMemoryStore(opts ...Option) *InMemoryStore {
	s := &InMemoryStore{}
	for _, opt := range opts {
		opt(s)
	}
	if s.events == nil {
		s.events = make([]audit.Event, DefaultCapacity)
	}
	return s
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.events)
	s.head, s.count = 0, 0
}

// Append stores event, overwriting the oldest one when the ring is full.
func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	size := len(s.events)
	if s.count < size {
		s.events[(s.head+s.count)%size] = event
		s.count++
		return nil
	}
	s.events[s.head] = event
	s.head = (s.head + 1) % size
	return nil
}

// at returns the i-th retained event, oldest first. Callers hold mu.
func (s *InMemoryStore) at(i int) audit.Event {
	return s.events[(s.head+i)%len(s.events)]
}

func (s *InMemoryStore) ListBySubject(_ context.Context, subjectID string) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []audit.Event
	for i := range s.count {
		if e := s.at(i); e.SubjectID == subjectID {
			out = append(out, e)
		}
	}
	return out, nil
}

// ListRecent returns the most recent N events, newest first. A non-positive
// limit returns nothing.
func (s *InMemoryStore) ListRecent(_ context.Context, limit int) ([]audit.Event, error) {
	if limit <= 0 {
		return []audit.Event{}, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := min(limit, s.count)
	out := make([]audit.Event, 0, n)
	for i := s.count - 1; i >= s.count-n; i-- {
		out = append(out, s.at(i))
	}
	return out, nil
}

// Len returns the number of retained events.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count
}
