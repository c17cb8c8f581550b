package store

import (
	"context"
	"slices"
	"sync"

	"cdp/internal/recepisses/models"
	id "cdp/pkg/domain"
	"cdp/pkg/platform/sentinel"
)

type InMemoryStore struct {
	mu         sync.RWMutex
	recepisses map[id.RecepisseID]*models.Recepisse
	lastSeq    map[int]int
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		recepisses: make(map[id.RecepisseID]*models.Recepisse),
		lastSeq:    make(map[int]int),
	}
}

// Issue assigns the next sequence of r.Annee and stores r.
func (s *InMemoryStore) Issue(_ context.Context, r *models.Recepisse) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.recepisses[r.ID]; ok {
		return sentinel.ErrAlreadyUsed
	}
	s.lastSeq[r.Annee]++
	r.Sequence = s.lastSeq[r.Annee]
	r.NumeroRecepisse = models.FormatNumero(r.Annee, r.Sequence)
	c := *r
	s.recepisses[r.ID] = &c
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, recepisseID id.RecepisseID) (*models.Recepisse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.recepisses[recepisseID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	c := *r
	return &c, nil
}

// List returns matches, most recently numbered first.
func (s *InMemoryStore) List(_ context.Context, filter models.Filter) ([]*models.Recepisse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Recepisse, 0, len(s.recepisses))
	for _, r := range s.recepisses {
		if filter.Matches(r) {
			c := *r
			out = append(out, &c)
		}
	}
	slices.SortFunc(out, func(a, b *models.Recepisse) int {
		if a.Annee != b.Annee {
			return b.Annee - a.Annee
		}
		return b.Sequence - a.Sequence
	})
	return out, nil
}

// CountValid counts receipts without expiry or expiring on or after day.
func (s *InMemoryStore) CountValid(_ context.Context, day string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, r := range s.recepisses {
		if r.ValiditeJusquau == "" || r.ValiditeJusquau >= day {
			n++
		}
	}
	return n, nil
}
