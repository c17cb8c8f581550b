package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"cdp/internal/missions/models"
	id "cdp/pkg/domain"
	"cdp/pkg/platform/sentinel"
)

type missionStore interface {
	Create(ctx context.Context, m *models.Mission) error
	FindByID(ctx context.Context, missionID id.MissionID) (*models.Mission, error)
	List(ctx context.Context, filter models.Filter) ([]*models.Mission, error)
	Update(ctx context.Context, m *models.Mission) error
	Delete(ctx context.Context, missionID id.MissionID) error
	AddCourrier(ctx context.Context, missionID id.MissionID, c models.Courrier) error
	AddDeplacement(ctx context.Context, missionID id.MissionID, d models.Deplacement) error
	CountByStatus(ctx context.Context) (models.StatusCounts, error)
}

// StoreSuite runs against any store. newStore returns an empty store and
// the id of a company missions may reference.
type StoreSuite struct {
	suite.Suite
	newStore     func(t *testing.T) (missionStore, id.EntrepriseID)
	store        missionStore
	entrepriseID id.EntrepriseID
	ctx          context.Context
	now          time.Time
}

func TestInMemoryStore(t *testing.T) {
	suite.Run(t, &StoreSuite{newStore: func(*testing.T) (missionStore, id.EntrepriseID) {
		return NewInMemoryStore(), id.EntrepriseID(uuid.New())
	}})
}

func (s *StoreSuite) SetupTest() {
	s.store, s.entrepriseID = s.newStore(s.T())
	s.ctx = context.Background()
	s.now = time.Date(2024, 5, 2, 8, 30, 0, 0, time.UTC)
}

func (s *StoreSuite) mission(numero, day, lieu string) *models.Mission {
	return &models.Mission{
		ID:            id.MissionID(uuid.New()),
		NumeroMission: numero,
		EntrepriseID:  s.entrepriseID,
		DateMission:   day,
		Type:          models.TypeControleSurPlace,
		Statut:        models.StatutPlanifiee,
		Lieu:          lieu,
		Equipe:        []string{"A. Diop", "F. Sarr"},
		CreatedAt:     s.now,
		UpdatedAt:     s.now,
	}
}

func (s *StoreSuite) TestCreateAndFind() {
	m := s.mission("MC-2024-001", "2024-05-10", "Dakar Plateau")
	s.Require().NoError(s.store.Create(s.ctx, m))

	got, err := s.store.FindByID(s.ctx, m.ID)
	s.Require().NoError(err)
	s.Equal(m.NumeroMission, got.NumeroMission)
	s.Equal(m.EntrepriseID, got.EntrepriseID)
	s.Equal("2024-05-10", got.DateMission)
	s.Equal([]string{"A. Diop", "F. Sarr"}, got.Equipe)
	s.Empty(got.Courriers)
	s.Empty(got.Deplacements)

	_, err = s.store.FindByID(s.ctx, id.MissionID(uuid.New()))
	s.True(errors.Is(err, sentinel.ErrNotFound))
}

func (s *StoreSuite) TestNumeroIsUnique() {
	s.Require().NoError(s.store.Create(s.ctx, s.mission("MC-1", "2024-05-10", "")))
	err := s.store.Create(s.ctx, s.mission("MC-1", "2024-05-11", ""))
	s.True(errors.Is(err, sentinel.ErrAlreadyUsed))
}

func (s *StoreSuite) TestFindCopiesAreIndependent() {
	m := s.mission("MC-1", "2024-05-10", "Thiès")
	s.Require().NoError(s.store.Create(s.ctx, m))
	m.Equipe[0] = "changed"

	got, err := s.store.FindByID(s.ctx, m.ID)
	s.Require().NoError(err)
	s.Equal("A. Diop", got.Equipe[0])
}

func (s *StoreSuite) TestListNewestFirstWithFilters() {
	older := s.mission("MC-1", "2024-01-15", "Thiès")
	newer := s.mission("MC-2", "2024-04-01", "Dakar")
	online := s.mission("MC-3", "2024-03-01", "")
	online.Type = models.TypeControleEnLigne
	online.Statut = models.StatutEnCours
	for _, m := range []*models.Mission{older, newer, online} {
		s.Require().NoError(s.store.Create(s.ctx, m))
	}
	s.Require().NoError(s.store.AddCourrier(s.ctx, newer.ID, models.Courrier{
		ID: id.CourrierID(uuid.New()), Sens: models.SensEnvoye, Date: "2024-04-02", Objet: "Convocation",
	}))

	all, err := s.store.List(s.ctx, models.Filter{})
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal("MC-2", all[0].NumeroMission)
	s.Equal("MC-3", all[1].NumeroMission)
	s.Equal("MC-1", all[2].NumeroMission)
	s.Empty(all[0].Courriers)

	bySearch, err := s.store.List(s.ctx, models.Filter{Search: "thiès"})
	s.Require().NoError(err)
	s.Require().Len(bySearch, 1)
	s.Equal(older.ID, bySearch[0].ID)

	byType, err := s.store.List(s.ctx, models.Filter{Type: models.TypeControleEnLigne})
	s.Require().NoError(err)
	s.Require().Len(byType, 1)

	byStatut, err := s.store.List(s.ctx, models.Filter{Statut: models.StatutPlanifiee, EntrepriseID: s.entrepriseID})
	s.Require().NoError(err)
	s.Len(byStatut, 2)

	other, err := s.store.List(s.ctx, models.Filter{EntrepriseID: id.EntrepriseID(uuid.New())})
	s.Require().NoError(err)
	s.Empty(other)
}

func (s *StoreSuite) TestAttachments() {
	m := s.mission("MC-1", "2024-05-10", "Dakar")
	s.Require().NoError(s.store.Create(s.ctx, m))

	c := models.Courrier{ID: id.CourrierID(uuid.New()), Sens: models.SensRecu, Date: "2024-05-12", Objet: "Réponse", Contenu: "Pièces jointes"}
	d := models.Deplacement{ID: id.DeplacementID(uuid.New()), Date: "2024-05-15", Lieu: "Siège", Participants: []string{"A. Diop"}}
	s.Require().NoError(s.store.AddCourrier(s.ctx, m.ID, c))
	s.Require().NoError(s.store.AddDeplacement(s.ctx, m.ID, d))

	got, err := s.store.FindByID(s.ctx, m.ID)
	s.Require().NoError(err)
	s.Equal([]models.Courrier{c}, got.Courriers)
	s.Equal([]models.Deplacement{d}, got.Deplacements)

	missing := id.MissionID(uuid.New())
	s.True(errors.Is(s.store.AddCourrier(s.ctx, missing, c), sentinel.ErrNotFound))
	s.True(errors.Is(s.store.AddDeplacement(s.ctx, missing, d), sentinel.ErrNotFound))
}

func (s *StoreSuite) TestUpdateKeepsAttachments() {
	m := s.mission("MC-1", "2024-05-10", "Dakar")
	s.Require().NoError(s.store.Create(s.ctx, m))
	s.Require().NoError(s.store.AddCourrier(s.ctx, m.ID, models.Courrier{
		ID: id.CourrierID(uuid.New()), Sens: models.SensEnvoye, Date: "2024-05-11", Objet: "Notification",
	}))

	m.Statut = models.StatutTerminee
	m.Rapport = "Manquements relevés"
	m.Equipe = []string{"M. Ndiaye"}
	m.UpdatedAt = s.now.Add(time.Hour)
	s.Require().NoError(s.store.Update(s.ctx, m))

	got, err := s.store.FindByID(s.ctx, m.ID)
	s.Require().NoError(err)
	s.Equal(models.StatutTerminee, got.Statut)
	s.Equal("Manquements relevés", got.Rapport)
	s.Equal([]string{"M. Ndiaye"}, got.Equipe)
	s.Len(got.Courriers, 1)

	s.True(errors.Is(s.store.Update(s.ctx, s.mission("MC-9", "2024-05-10", "")), sentinel.ErrNotFound))
}

func (s *StoreSuite) TestDeleteAndCounts() {
	a := s.mission("MC-1", "2024-05-10", "")
	b := s.mission("MC-2", "2024-05-11", "")
	b.Statut = models.StatutEnCours
	c := s.mission("MC-3", "2024-05-12", "")
	for _, m := range []*models.Mission{a, b, c} {
		s.Require().NoError(s.store.Create(s.ctx, m))
	}

	counts, err := s.store.CountByStatus(s.ctx)
	s.Require().NoError(err)
	s.Equal(models.StatusCounts{models.StatutPlanifiee: 2, models.StatutEnCours: 1}, counts)

	s.Require().NoError(s.store.Delete(s.ctx, a.ID))
	s.True(errors.Is(s.store.Delete(s.ctx, a.ID), sentinel.ErrNotFound))

	counts, err = s.store.CountByStatus(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, counts[models.StatutPlanifiee])
}
