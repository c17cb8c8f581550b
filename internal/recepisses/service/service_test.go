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
	demandeModels "cdp/internal/demandes/models"
	demandeService "cdp/internal/demandes/service"
	demandeStore "cdp/internal/demandes/store"
	"cdp/internal/forms"
	"cdp/internal/recepisses/models"
	"cdp/internal/recepisses/service/mocks"
	"cdp/internal/recepisses/store"
	id "cdp/pkg/domain"
	dErrors "cdp/pkg/domain-errors"
	"cdp/pkg/requestcontext"
)

type ServiceSuite struct {
	suite.Suite
	now       time.Time
	agent     context.Context
	applicant id.UserID
	audit     *audit.InMemoryStore
	demandes  *demandeService.Service
	service   *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.now = time.Date(2024, 6, 14, 10, 0, 0, 0, time.UTC)
	s.agent = s.ctxFor(id.UserID(uuid.New()), id.RoleAgentCDP)
	s.applicant = id.UserID(uuid.New())
	s.audit = audit.NewInMemoryStore()
	s.demandes = demandeService.New(demandeStore.NewInMemoryStore())
	s.service = New(store.NewInMemoryStore(), s.demandes, WithAuditPublisher(audit.NewPublisher(s.audit)))
}

func (s *ServiceSuite) ctxFor(userID id.UserID, role id.Role) context.Context {
	return requestcontext.WithTime(requestcontext.WithPrincipal(context.Background(), userID, role), s.now)
}

func (s *ServiceSuite) submit(ctx context.Context, company string) *demandeModels.Demande {
	defs, err := forms.LoadBuiltin()
	s.Require().NoError(err)
	answers := defs[forms.TypeAutorisation].NewAnswers()
	answers["nomRaisonSociale"] = company
	d, err := s.demandes.Submit(ctx, forms.TypeAutorisation, answers)
	s.Require().NoError(err)
	return d
}

func (s *ServiceSuite) TestIssue() {
	d := s.submit(s.agent, "Sonatel SA")

	s.Run("numbers and defaults", func() {
		r, err := s.service.Issue(s.agent, d.ID, "", "2025-06-14")
		s.Require().NoError(err)
		s.Equal("REC-2024-000001", r.NumeroRecepisse)
		s.Equal("2024-06-14", r.DateEmission)
		s.Equal("Autorisation de traitement", r.TypeDocument)
		s.Equal(d.ID, r.DemandeID)

		events, err := s.audit.ListRecent(context.Background(), 1)
		s.Require().NoError(err)
		s.Equal(audit.ActionRecepisseIssued, events[0].Action)
		s.Equal("REC-2024-000001", events[0].Subject)
	})

	s.Run("sequence increments and explicit type is kept", func() {
		r, err := s.service.Issue(s.agent, d.ID, " Duplicata ", "")
		s.Require().NoError(err)
		s.Equal("REC-2024-000002", r.NumeroRecepisse)
		s.Equal("Duplicata", r.TypeDocument)
		s.Empty(r.ValiditeJusquau)
	})

	s.Run("unknown demande", func() {
		_, err := s.service.Issue(s.agent, id.DemandeID(uuid.New()), "", "")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("validity must be a future day", func() {
		_, err := s.service.Issue(s.agent, d.ID, "", "14/06/2025")
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
		_, err = s.service.Issue(s.agent, d.ID, "", "2024-06-13")
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func (s *ServiceSuite) TestApplicantScoping() {
	mine := s.submit(s.ctxFor(s.applicant, id.RoleDemandeur), "Ma Société")
	theirs := s.submit(s.agent, "Autre SA")
	myReceipt, err := s.service.Issue(s.agent, mine.ID, "", "")
	s.Require().NoError(err)
	theirReceipt, err := s.service.Issue(s.agent, theirs.ID, "", "")
	s.Require().NoError(err)

	applicant := s.ctxFor(s.applicant, id.RoleDemandeur)
	out, err := s.service.List(applicant, models.Filter{})
	s.Require().NoError(err)
	s.Require().Len(out, 1)
	s.Equal(myReceipt.ID, out[0].ID)

	_, err = s.service.Get(applicant, theirReceipt.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	all, err := s.service.List(s.agent, models.Filter{Search: "rec-2024"})
	s.Require().NoError(err)
	s.Len(all, 2)
}

func (s *ServiceSuite) TestCountValid() {
	d := s.submit(s.agent, "Sonatel SA")
	for _, validite := range []string{"", "2024-06-20", "2024-06-14"} {
		_, err := s.service.Issue(s.agent, d.ID, "", validite)
		s.Require().NoError(err)
	}
	n, err := s.service.CountValid(s.agent, s.now.AddDate(0, 0, 1))
	s.Require().NoError(err)
	s.Equal(2, n)
}

func (s *ServiceSuite) TestStoreFailures() {
	ctrl := gomock.NewController(s.T())
	st := mocks.NewMockStore(ctrl)
	lookup := mocks.NewMockDemandeLookup(ctrl)
	svc := New(st, lookup)
	demandeID := id.DemandeID(uuid.New())
	boom := errors.New("deadlock detected")

	s.Run("issue failure is internal", func() {
		lookup.EXPECT().Get(gomock.Any(), demandeID).Return(&demandeModels.Demande{ID: demandeID, Type: forms.TypeAvis}, nil)
		st.EXPECT().Issue(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r *models.Recepisse) error {
			s.Equal("Avis de la Commission", r.TypeDocument)
			s.Equal(2024, r.Annee)
			return boom
		})
		_, err := svc.Issue(s.agent, demandeID, "", "")
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})

	s.Run("count failure is internal", func() {
		st.EXPECT().CountValid(gomock.Any(), "2024-06-14").Return(0, boom)
		_, err := svc.CountValid(s.agent, s.now)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}
