package lockout

import (
	"context"
	"sync"
	"time"

	"cdp/pkg/platform/sentinel"
	"cdp/pkg/requestcontext"
)

type entry struct {
	record    Record
	expiresAt time.Time
}

type InMemoryStore struct {
	mu      sync.Mutex
	records map[string]entry
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[string]entry)}
}

func (s *InMemoryStore) Get(ctx context.Context, key string) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.records[key]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if !requestcontext.Now(ctx).Before(e.expiresAt) {
		delete(s.records, key)
		return nil, sentinel.ErrNotFound
	}
	r := e.record
	return &r, nil
}

func (s *InMemoryStore) Save(ctx context.Context, r *Record, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[r.Key] = entry{record: *r, expiresAt: requestcontext.Now(ctx).Add(ttl)}
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, key)
	return nil
}
