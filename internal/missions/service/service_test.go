package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"cdp/internal/audit"
	entrepriseModels "cdp/internal/entreprises/models"
	entrepriseService "cdp/internal/entreprises/service"
	entrepriseStore "cdp/internal/entreprises/store"
	"cdp/internal/missions/models"
	"cdp/internal/missions/service/mocks"
	"cdp/internal/missions/store"
	id "cdp/pkg/domain"
	dErrors "cdp/pkg/domain-errors"
	"cdp/pkg/platform/sentinel"
	"cdp/pkg/requestcontext"
)

type ServiceSuite struct {
	suite.Suite
	ctx        context.Context
	now        time.Time
	audit      *audit.InMemoryStore
	entreprise *entrepriseModels.Entreprise
	service    *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.now = time.Date(2024, 4, 3, 9, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
	s.audit = audit.NewInMemoryStore()

	entreprises := entrepriseService.New(entrepriseStore.NewInMemoryStore())
	e, err := entreprises.Create(s.ctx, entrepriseModels.Entreprise{Nom: "Sonatel SA", NINEA: "001234567", Email: "dpo@sonatel.sn"})
	s.Require().NoError(err)
	s.entreprise = e

	s.service = New(store.NewInMemoryStore(), entreprises, WithAuditPublisher(audit.NewPublisher(s.audit)))
}

func (s *ServiceSuite) newMission(numero string) models.Mission {
	return models.Mission{
		NumeroMission: numero,
		EntrepriseID:  s.entreprise.ID,
		DateMission:   "2024-04-15",
		Type:          models.TypeControleSurPlace,
		Lieu:          " Dakar ",
		Equipe:        []string{" A. Diop", "A. Diop", "", "F. Sarr"},
	}
}

func (s *ServiceSuite) lastEvent() audit.Event {
	events, err := s.audit.ListRecent(context.Background(), 1)
	s.Require().NoError(err)
	s.Require().NotEmpty(events)
	return events[0]
}

func (s *ServiceSuite) TestCreate() {
	s.Run("defaults and normalisation", func() {
		m, err := s.service.Create(s.ctx, s.newMission(" MC-2024-001 "))
		s.Require().NoError(err)
		s.False(m.ID.IsNil())
		s.Equal("MC-2024-001", m.NumeroMission)
		s.Equal(models.StatutPlanifiee, m.Statut)
		s.Equal("Dakar", m.Lieu)
		s.Equal([]string{"A. Diop", "F. Sarr"}, m.Equipe)
		s.Equal(s.now, m.CreatedAt)
		s.Require().NotNil(m.Entreprise)
		s.Equal("Sonatel SA", m.Entreprise.Nom)

		ev := s.lastEvent()
		s.Equal(audit.ActionMissionCreated, ev.Action)
		s.Equal("MC-2024-001", ev.Subject)
	})

	s.Run("empty team is kept as an empty list", func() {
		in := s.newMission("MC-2024-002")
		in.Equipe = nil
		m, err := s.service.Create(s.ctx, in)
		s.Require().NoError(err)
		s.NotNil(m.Equipe)
		s.Empty(m.Equipe)
	})

	s.Run("duplicate number is a conflict", func() {
		_, err := s.service.Create(s.ctx, s.newMission("MC-2024-001"))
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("invalid input", func() {
		cases := map[string]func(m *models.Mission){
			"numero":     func(m *models.Mission) { m.NumeroMission = " " },
			"entreprise": func(m *models.Mission) { m.EntrepriseID = id.EntrepriseID{} },
			"unknown":    func(m *models.Mission) { m.EntrepriseID = id.EntrepriseID(uuid.New()) },
			"date":       func(m *models.Mission) { m.DateMission = "15/04/2024" },
			"type":       func(m *models.Mission) { m.Type = "audit" },
		}
		for name, mutate := range cases {
			in := s.newMission("MC-X-" + name)
			mutate(&in)
			_, err := s.service.Create(s.ctx, in)
			s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput), name)
		}
	})
}

func (s *ServiceSuite) TestGetAndList() {
	a, err := s.service.Create(s.ctx, s.newMission("MC-1"))
	s.Require().NoError(err)
	b := s.newMission("MC-2")
	b.DateMission = "2024-05-20"
	b.Type = models.TypeControleEnLigne
	_, err = s.service.Create(s.ctx, b)
	s.Require().NoError(err)

	got, err := s.service.Get(s.ctx, a.ID)
	s.Require().NoError(err)
	s.Equal("001234567", got.Entreprise.NINEA)

	_, err = s.service.Get(s.ctx, id.MissionID(uuid.New()))
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	all, err := s.service.List(s.ctx, models.Filter{})
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal("MC-2", all[0].NumeroMission)
	for _, m := range all {
		s.Require().NotNil(m.Entreprise)
	}

	online, err := s.service.List(s.ctx, models.Filter{Type: models.TypeControleEnLigne, Search: "  mc-2 "})
	s.Require().NoError(err)
	s.Len(online, 1)
}

func (s *ServiceSuite) TestUpdate() {
	m, err := s.service.Create(s.ctx, s.newMission("MC-1"))
	s.Require().NoError(err)

	enCours := models.StatutEnCours
	rapport := " Registre des traitements absent "
	updated, err := s.service.Update(s.ctx, m.ID, models.Update{Statut: &enCours, Rapport: &rapport})
	s.Require().NoError(err)
	s.Equal(models.StatutEnCours, updated.Statut)
	s.Equal("Registre des traitements absent", updated.Rapport)
	s.Equal(audit.ActionMissionUpdated, s.lastEvent().Action)

	planned := models.StatutPlanifiee
	_, err = s.service.Update(s.ctx, m.ID, models.Update{Statut: &planned})
	s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))

	_, err = s.service.Update(s.ctx, id.MissionID(uuid.New()), models.Update{})
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestAttachments() {
	m, err := s.service.Create(s.ctx, s.newMission("MC-1"))
	s.Require().NoError(err)

	c, err := s.service.AddCourrier(s.ctx, m.ID, models.Courrier{Sens: "envoye", Date: "2024-04-16", Objet: " Convocation "})
	s.Require().NoError(err)
	s.NotEqual(id.CourrierID{}, c.ID)
	s.Equal("Convocation", c.Objet)

	d, err := s.service.AddDeplacement(s.ctx, m.ID, models.Deplacement{Date: "2024-04-20", Lieu: "Siège", Participants: []string{"A. Diop", " A. Diop "}})
	s.Require().NoError(err)
	s.Equal([]string{"A. Diop"}, d.Participants)

	got, err := s.service.Get(s.ctx, m.ID)
	s.Require().NoError(err)
	s.Len(got.Courriers, 1)
	s.Len(got.Deplacements, 1)

	s.Run("validation", func() {
		_, err := s.service.AddCourrier(s.ctx, m.ID, models.Courrier{Sens: "fax", Date: "2024-04-16", Objet: "x"})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
		_, err = s.service.AddCourrier(s.ctx, m.ID, models.Courrier{Sens: "recu", Date: "2024-04-16"})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
		_, err = s.service.AddDeplacement(s.ctx, m.ID, models.Deplacement{Date: "demain", Lieu: "Siège"})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("unknown mission", func() {
		_, err := s.service.AddCourrier(s.ctx, id.MissionID(uuid.New()), models.Courrier{Sens: "recu", Date: "2024-04-16", Objet: "x"})
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestDeleteAndCounts() {
	a, err := s.service.Create(s.ctx, s.newMission("MC-1"))
	s.Require().NoError(err)
	_, err = s.service.Create(s.ctx, s.newMission("MC-2"))
	s.Require().NoError(err)

	s.Require().NoError(s.service.Delete(s.ctx, a.ID))
	ev := s.lastEvent()
	s.Equal(audit.ActionMissionDeleted, ev.Action)
	s.Equal("MC-1", ev.Subject)
	s.True(dErrors.HasCode(s.service.Delete(s.ctx, a.ID), dErrors.CodeNotFound))

	counts, err := s.service.CountByStatus(s.ctx)
	s.Require().NoError(err)
	s.Equal(models.StatusCounts{models.StatutPlanifiee: 1}, counts)
}

func (s *ServiceSuite) TestStoreAndLookupFailures() {
	ctrl := gomock.NewController(s.T())
	st := mocks.NewMockStore(ctrl)
	lookup := mocks.NewMockEntrepriseLookup(ctrl)
	svc := New(st, lookup)
	boom := errors.New("connection reset")

	s.Run("lookup failure during list leaves summary empty", func() {
		m := &models.Mission{ID: id.MissionID(uuid.New()), EntrepriseID: s.entreprise.ID}
		st.EXPECT().List(gomock.Any(), gomock.Any()).Return([]*models.Mission{m}, nil)
		lookup.EXPECT().Lookup(gomock.Any(), s.entreprise.ID).Return(nil, boom)

		out, err := svc.List(s.ctx, models.Filter{})
		s.Require().NoError(err)
		s.Nil(out[0].Entreprise)
	})

	s.Run("lookup unavailable during create propagates", func() {
		lookup.EXPECT().Lookup(gomock.Any(), s.entreprise.ID).
			Return(nil, dErrors.Wrap(boom, dErrors.CodeInternal, "failed to load entreprise"))

		_, err := svc.Create(s.ctx, s.newMission("MC-1"))
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})

	s.Run("store failure is internal", func() {
		lookup.EXPECT().Lookup(gomock.Any(), s.entreprise.ID).Return(&entrepriseModels.Summary{}, nil)
		st.EXPECT().Create(gomock.Any(), gomock.Any()).Return(boom)

		_, err := svc.Create(s.ctx, s.newMission("MC-1"))
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})

	s.Run("update of a vanished mission is not found", func() {
		m := &models.Mission{ID: id.MissionID(uuid.New()), EntrepriseID: s.entreprise.ID, Statut: models.StatutPlanifiee}
		enCours := models.StatutEnCours
		st.EXPECT().FindByID(gomock.Any(), m.ID).Return(m, nil)
		st.EXPECT().Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, got *models.Mission) error {
				s.Equal(models.StatutEnCours, got.Statut)
				return sentinel.ErrNotFound
			})

		_, err := svc.Update(s.ctx, m.ID, models.Update{Statut: &enCours})
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("counts failure is internal", func() {
		st.EXPECT().CountByStatus(gomock.Any()).Return(nil, boom)
		_, err := svc.CountByStatus(s.ctx)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}
