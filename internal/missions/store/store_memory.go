package store

import (
	"context"
	"slices"
	"strings"
	"sync"

	"cdp/internal/missions/models"
	id "cdp/pkg/domain"
	"cdp/pkg/platform/sentinel"
)

type InMemoryStore struct {
	mu       sync.RWMutex
	missions map[id.MissionID]*models.Mission
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{missions: make(map[id.MissionID]*models.Mission)}
}

func (s *InMemoryStore) Create(_ context.Context, m *models.Mission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.missions {
		if existing.ID == m.ID || existing.NumeroMission == m.NumeroMission {
			return sentinel.ErrAlreadyUsed
		}
	}
	s.missions[m.ID] = clone(m)
	return nil
}

// FindByID returns the mission with its courriers and déplacements.
func (s *InMemoryStore) FindByID(_ context.Context, missionID id.MissionID) (*models.Mission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.missions[missionID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return clone(m), nil
}

// List returns matches by mission date, newest first. Attachments are omitted.
func (s *InMemoryStore) List(_ context.Context, filter models.Filter) ([]*models.Mission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Mission, 0, len(s.missions))
	for _, m := range s.missions {
		if filter.Matches(m) {
			c := clone(m)
			c.Courriers, c.Deplacements = nil, nil
			out = append(out, c)
		}
	}
	slices.SortFunc(out, func(a, b *models.Mission) int {
		if c := strings.Compare(b.DateMission, a.DateMission); c != 0 {
			return c
		}
		return strings.Compare(b.NumeroMission, a.NumeroMission)
	})
	return out, nil
}

func (s *InMemoryStore) Update(_ context.Context, m *models.Mission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.missions[m.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	c := clone(m)
	c.Courriers, c.Deplacements = existing.Courriers, existing.Deplacements
	s.missions[m.ID] = c
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, missionID id.MissionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.missions[missionID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.missions, missionID)
	return nil
}

func (s *InMemoryStore) AddCourrier(_ context.Context, missionID id.MissionID, c models.Courrier) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.missions[missionID]
	if !ok {
		return sentinel.ErrNotFound
	}
	m.Courriers = append(m.Courriers, c)
	return nil
}

func (s *InMemoryStore) AddDeplacement(_ context.Context, missionID id.MissionID, d models.Deplacement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.missions[missionID]
	if !ok {
		return sentinel.ErrNotFound
	}
	d.Participants = slices.Clone(d.Participants)
	m.Deplacements = append(m.Deplacements, d)
	return nil
}

func (s *InMemoryStore) CountByStatus(_ context.Context) (models.StatusCounts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := models.StatusCounts{}
	for _, m := range s.missions {
		counts[m.Statut]++
	}
	return counts, nil
}

func clone(m *models.Mission) *models.Mission {
	c := *m
	c.Equipe = slices.Clone(m.Equipe)
	c.Courriers = slices.Clone(m.Courriers)
	c.Deplacements = slices.Clone(m.Deplacements)
	for i := range c.Deplacements {
		c.Deplacements[i].Participants = slices.Clone(c.Deplacements[i].Participants)
	}
	return &c
}
