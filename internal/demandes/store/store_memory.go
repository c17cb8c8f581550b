package store

import (
	"context"
	"slices"
	"sync"

	"cdp/internal/demandes/models"
	id "cdp/pkg/domain"
	"cdp/pkg/platform/sentinel"
	pstrings "cdp/pkg/platform/strings"
)

// InMemoryStore keeps demandes in insertion order.
type InMemoryStore struct {
	mu       sync.RWMutex
	demandes []*models.Demande
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, d *models.Demande) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.demandes {
		if existing.ID == d.ID || existing.NumeroReference == d.NumeroReference {
			return sentinel.ErrAlreadyUsed
		}
	}
	s.demandes = append(s.demandes, clone(d))
	return nil
}

// LatestReference returns the highest reference number stored.
func (s *InMemoryStore) LatestReference(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var (
		latest  string
		highest int64 = -1
	)
	for _, d := range s.demandes {
		if ms, ok := models.ParseReference(d.NumeroReference); ok && ms > highest {
			latest, highest = d.NumeroReference, ms
		}
	}
	if latest == "" {
		return "", sentinel.ErrNotFound
	}
	return latest, nil
}

func (s *InMemoryStore) FindByID(_ context.Context, demandeID id.DemandeID) (*models.Demande, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.demandes {
		if d.ID == demandeID {
			return clone(d), nil
		}
	}
	return nil, sentinel.ErrNotFound
}

// List returns matching demandes, newest first.
func (s *InMemoryStore) List(_ context.Context, filter models.Filter) ([]*models.Demande, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Demande, 0, len(s.demandes))
	for i := len(s.demandes) - 1; i >= 0; i-- {
		d := s.demandes[i]
		if !filter.MatchesExact(d) {
			continue
		}
		if filter.Search != "" &&
			!pstrings.ContainsFold(d.NumeroReference, filter.Search) &&
			!pstrings.ContainsFold(d.Entreprise.Nom, filter.Search) {
			continue
		}
		out = append(out, clone(d))
	}
	return out, nil
}

func (s *InMemoryStore) Update(_ context.Context, d *models.Demande) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.demandes {
		if existing.ID == d.ID {
			s.demandes[i] = clone(d)
			return nil
		}
	}
	return sentinel.ErrNotFound
}

func (s *InMemoryStore) Delete(_ context.Context, demandeID id.DemandeID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.demandes {
		if existing.ID == demandeID {
			s.demandes = slices.Delete(s.demandes, i, i+1)
			return nil
		}
	}
	return sentinel.ErrNotFound
}

func (s *InMemoryStore) CountByStatus(_ context.Context) (models.StatusCounts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := models.StatusCounts{}
	for _, d := range s.demandes {
		counts[d.Statut]++
	}
	return counts, nil
}

func clone(d *models.Demande) *models.Demande {
	c := *d
	if d.Details.Autorisation != nil {
		a := *d.Details.Autorisation
		c.Details.Autorisation = &a
	}
	if d.DateTraitement != nil {
		t := *d.DateTraitement
		c.DateTraitement = &t
	}
	return &c
}
