package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"cdp/internal/entreprises/models"
	id "cdp/pkg/domain"
	"cdp/pkg/platform/sentinel"
)

type entrepriseStore interface {
	Create(ctx context.Context, e *models.Entreprise) error
	FindByID(ctx context.Context, entrepriseID id.EntrepriseID) (*models.Entreprise, error)
	List(ctx context.Context, filter models.Filter) ([]*models.Entreprise, error)
	Update(ctx context.Context, e *models.Entreprise) error
	Delete(ctx context.Context, entrepriseID id.EntrepriseID) error
	Secteurs(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int, error)
}

type StoreSuite struct {
	suite.Suite
	newStore func(t *testing.T) entrepriseStore
	store    entrepriseStore
	ctx      context.Context
}

func TestInMemoryStore(t *testing.T) {
	suite.Run(t, &StoreSuite{newStore: func(*testing.T) entrepriseStore { return NewInMemoryStore() }})
}

func (s *StoreSuite) SetupTest() {
	s.store = s.newStore(s.T())
	s.ctx = context.Background()
}

func entreprise(nom, ninea, secteur string) *models.Entreprise {
	return &models.Entreprise{
		ID:              id.EntrepriseID(uuid.New()),
		Nom:             nom,
		NINEA:           ninea,
		Email:           "contact@example.sn",
		SecteurActivite: secteur,
		DateInscription: "2023-05-10",
		Statut:          models.StatutActive,
	}
}

func (s *StoreSuite) seed() {
	for _, e := range []*models.Entreprise{
		entreprise("Wave Sénégal", "005550001", "Finance"),
		entreprise("sonatel SA", "001234567", "Télécommunications"),
		entreprise("Orange Finances Mobiles", "009876543", "Finance"),
	} {
		s.Require().NoError(s.store.Create(s.ctx, e))
	}
}

func (s *StoreSuite) TestCreateAndFind() {
	e := entreprise("Sonatel SA", "001234567", "Télécommunications")
	s.Require().NoError(s.store.Create(s.ctx, e))

	got, err := s.store.FindByID(s.ctx, e.ID)
	s.Require().NoError(err)
	s.Equal(*e, *got)

	_, err = s.store.FindByID(s.ctx, id.EntrepriseID(uuid.New()))
	s.True(errors.Is(err, sentinel.ErrNotFound))
}

func (s *StoreSuite) TestNINEAIsUnique() {
	s.Require().NoError(s.store.Create(s.ctx, entreprise("A", "001234567", "")))
	err := s.store.Create(s.ctx, entreprise("B", "001234567", ""))
	s.True(errors.Is(err, sentinel.ErrAlreadyUsed))
}

func (s *StoreSuite) TestListOrderedByName() {
	s.seed()
	out, err := s.store.List(s.ctx, models.Filter{})
	s.Require().NoError(err)
	s.Require().Len(out, 3)
	s.Equal("Orange Finances Mobiles", out[0].Nom)
	s.Equal("sonatel SA", out[1].Nom)
	s.Equal("Wave Sénégal", out[2].Nom)
}

func (s *StoreSuite) TestListFilters() {
	s.seed()

	byName, err := s.store.List(s.ctx, models.Filter{Search: "SONATEL"})
	s.Require().NoError(err)
	s.Require().Len(byName, 1)

	byNINEA, err := s.store.List(s.ctx, models.Filter{Search: "98765"})
	s.Require().NoError(err)
	s.Require().Len(byNINEA, 1)
	s.Equal("Orange Finances Mobiles", byNINEA[0].Nom)

	bySector, err := s.store.List(s.ctx, models.Filter{Secteur: "Finance"})
	s.Require().NoError(err)
	s.Len(bySector, 2)

	combined, err := s.store.List(s.ctx, models.Filter{Secteur: "Finance", Search: "wave"})
	s.Require().NoError(err)
	s.Len(combined, 1)
}

func (s *StoreSuite) TestSecteursAndCount() {
	s.seed()
	s.Require().NoError(s.store.Create(s.ctx, entreprise("Sans secteur", "000000001", "")))

	secteurs, err := s.store.Secteurs(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"Finance", "Télécommunications"}, secteurs)

	n, err := s.store.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(4, n)
}

func (s *StoreSuite) TestUpdateAndDelete() {
	e := entreprise("Ancien nom", "001234567", "Finance")
	s.Require().NoError(s.store.Create(s.ctx, e))

	e.Nom = "Nouveau nom"
	e.Statut = models.StatutSuspendue
	s.Require().NoError(s.store.Update(s.ctx, e))
	got, err := s.store.FindByID(s.ctx, e.ID)
	s.Require().NoError(err)
	s.Equal("Nouveau nom", got.Nom)
	s.Equal(models.StatutSuspendue, got.Statut)

	s.Require().NoError(s.store.Delete(s.ctx, e.ID))
	s.True(errors.Is(s.store.Delete(s.ctx, e.ID), sentinel.ErrNotFound))
	s.True(errors.Is(s.store.Update(s.ctx, e), sentinel.ErrNotFound))
}
