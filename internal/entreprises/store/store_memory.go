package store

import (
	"context"
	"slices"
	"strings"
	"sync"

	"cdp/internal/entreprises/models"
	id "cdp/pkg/domain"
	"cdp/pkg/platform/sentinel"
)

// InMemoryStore keeps entreprises in a map guarded by a RWMutex.
type InMemoryStore struct {
	mu          sync.RWMutex
	entreprises map[id.EntrepriseID]*models.Entreprise
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{entreprises: make(map[id.EntrepriseID]*models.Entreprise)}
}

func (s *InMemoryStore) Create(_ context.Context, e *models.Entreprise) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entreprises[e.ID]; ok {
		return sentinel.ErrAlreadyUsed
	}
	for _, existing := range s.entreprises {
		if existing.NINEA == e.NINEA {
			return sentinel.ErrAlreadyUsed
		}
	}
	c := *e
	s.entreprises[e.ID] = &c
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, entrepriseID id.EntrepriseID) (*models.Entreprise, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entreprises[entrepriseID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	c := *e
	return &c, nil
}

// List returns matches ordered by name.
func (s *InMemoryStore) List(_ context.Context, filter models.Filter) ([]*models.Entreprise, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Entreprise, 0, len(s.entreprises))
	for _, e := range s.entreprises {
		if filter.Matches(e) {
			c := *e
			out = append(out, &c)
		}
	}
	slices.SortFunc(out, func(a, b *models.Entreprise) int {
		return strings.Compare(strings.ToLower(a.Nom), strings.ToLower(b.Nom))
	})
	return out, nil
}

func (s *InMemoryStore) Update(_ context.Context, e *models.Entreprise) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entreprises[e.ID]; !ok {
		return sentinel.ErrNotFound
	}
	c := *e
	s.entreprises[e.ID] = &c
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, entrepriseID id.EntrepriseID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entreprises[entrepriseID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.entreprises, entrepriseID)
	return nil
}

// Secteurs returns the distinct non-empty sectors, sorted.
func (s *InMemoryStore) Secteurs(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]struct{})
	for _, e := range s.entreprises {
		if e.SecteurActivite != "" {
			seen[e.SecteurActivite] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for sec := range seen {
		out = append(out, sec)
	}
	slices.Sort(out)
	return out, nil
}

func (s *InMemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entreprises), nil
}
