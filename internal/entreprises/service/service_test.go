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
	"cdp/internal/entreprises/models"
	"cdp/internal/entreprises/service/mocks"
	"cdp/internal/entreprises/store"
	id "cdp/pkg/domain"
	dErrors "cdp/pkg/domain-errors"
	"cdp/pkg/platform/sentinel"
	"cdp/pkg/requestcontext"
)

type ServiceSuite struct {
	suite.Suite
	ctx     context.Context
	audit   *audit.InMemoryStore
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = requestcontext.WithTime(context.Background(), time.Date(2024, 2, 29, 10, 0, 0, 0, time.UTC))
	s.audit = audit.NewInMemoryStore()
	s.service = New(store.NewInMemoryStore(), WithAuditPublisher(audit.NewPublisher(s.audit)))
}

func (s *ServiceSuite) TestCreate() {
	s.Run("defaults and normalisation", func() {
		e, err := s.service.Create(s.ctx, models.Entreprise{
			Nom:             "  Sonatel SA ",
			NINEA:           " 001234567 ",
			Email:           "contact@sonatel.sn",
			SecteurActivite: "Télécommunications",
		})
		s.Require().NoError(err)
		s.False(e.ID.IsNil())
		s.Equal("Sonatel SA", e.Nom)
		s.Equal("001234567", e.NINEA)
		s.Equal(models.StatutActive, e.Statut)
		s.Equal("2024-02-29", e.DateInscription)
	})

	s.Run("duplicate NINEA is a conflict", func() {
		_, err := s.service.Create(s.ctx, models.Entreprise{Nom: "Autre", NINEA: "001234567"})
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("required fields", func() {
		_, err := s.service.Create(s.ctx, models.Entreprise{NINEA: "1"})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
		_, err = s.service.Create(s.ctx, models.Entreprise{Nom: "Sans NINEA"})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("email is validated", func() {
		_, err := s.service.Create(s.ctx, models.Entreprise{Nom: "X", NINEA: "2", Email: "not-an-email"})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	events, _ := s.audit.ListRecent(context.Background(), 0)
	s.Require().Len(events, 1)
	s.Equal(audit.ActionEntrepriseCreated, events[0].Action)
	s.Equal("001234567", events[0].Subject)
}

func (s *ServiceSuite) TestLookupAndUpdate() {
	e, err := s.service.Create(s.ctx, models.Entreprise{Nom: "Wave", NINEA: "0055", Email: "dpo@wave.sn"})
	s.Require().NoError(err)

	summary, err := s.service.Lookup(s.ctx, e.ID)
	s.Require().NoError(err)
	s.Equal(models.Summary{ID: e.ID, Nom: "Wave", NINEA: "0055", Email: "dpo@wave.sn"}, *summary)

	radiee := models.StatutRadiee
	badEmail := "wave"
	_, err = s.service.Update(s.ctx, e.ID, models.Patch{Email: &badEmail})
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))

	updated, err := s.service.Update(s.ctx, e.ID, models.Patch{Statut: &radiee})
	s.Require().NoError(err)
	s.Equal(models.StatutRadiee, updated.Statut)
	s.Equal("dpo@wave.sn", updated.Email)

	_, err = s.service.Lookup(s.ctx, id.EntrepriseID(uuid.New()))
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestListSecteursCount() {
	for _, e := range []models.Entreprise{
		{Nom: "Sonatel", NINEA: "1", SecteurActivite: "Télécommunications"},
		{Nom: "Wave", NINEA: "2", SecteurActivite: "Finance"},
		{Nom: "CBAO", NINEA: "3", SecteurActivite: "Finance"},
	} {
		_, err := s.service.Create(s.ctx, e)
		s.Require().NoError(err)
	}

	out, err := s.service.List(s.ctx, models.Filter{Secteur: " Finance "})
	s.Require().NoError(err)
	s.Len(out, 2)
	s.Equal("CBAO", out[0].Nom)

	secteurs, err := s.service.Secteurs(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"Finance", "Télécommunications"}, secteurs)

	n, err := s.service.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(3, n)
}

func (s *ServiceSuite) TestDelete() {
	s.Run("removes and audits", func() {
		e, err := s.service.Create(s.ctx, models.Entreprise{Nom: "Wave", NINEA: "0055"})
		s.Require().NoError(err)
		s.Require().NoError(s.service.Delete(s.ctx, e.ID))
		s.True(dErrors.HasCode(s.service.Delete(s.ctx, e.ID), dErrors.CodeNotFound))
	})

	s.Run("referenced company is a conflict", func() {
		ctrl := gomock.NewController(s.T())
		mockStore := mocks.NewMockStore(ctrl)
		svc := New(mockStore)
		entrepriseID := id.EntrepriseID(uuid.New())

		mockStore.EXPECT().FindByID(gomock.Any(), entrepriseID).Return(&models.Entreprise{ID: entrepriseID, NINEA: "1"}, nil)
		mockStore.EXPECT().Delete(gomock.Any(), entrepriseID).Return(sentinel.ErrInvalidState)

		s.True(dErrors.HasCode(svc.Delete(s.ctx, entrepriseID), dErrors.CodeConflict))
	})

	s.Run("store failure is internal", func() {
		ctrl := gomock.NewController(s.T())
		mockStore := mocks.NewMockStore(ctrl)
		svc := New(mockStore)
		mockStore.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset"))

		_, err := svc.List(s.ctx, models.Filter{})
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}
