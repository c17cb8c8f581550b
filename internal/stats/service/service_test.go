package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	demandeModels "cdp/internal/demandes/models"
	missionModels "cdp/internal/missions/models"
	"cdp/internal/stats/metrics"
	"cdp/internal/stats/models"
	"cdp/internal/stats/service/mocks"
	dErrors "cdp/pkg/domain-errors"
	"cdp/pkg/requestcontext"
)

type ServiceSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	demandes    *mocks.MockDemandeCounter
	entreprises *mocks.MockEntrepriseCounter
	missions    *mocks.MockMissionCounter
	recepisses  *mocks.MockRecepisseCounter
	service     *Service
	now         time.Time
	ctx         context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.demandes = mocks.NewMockDemandeCounter(s.ctrl)
	s.entreprises = mocks.NewMockEntrepriseCounter(s.ctrl)
	s.missions = mocks.NewMockMissionCounter(s.ctrl)
	s.recepisses = mocks.NewMockRecepisseCounter(s.ctrl)
	s.service = New(Sources{
		Demandes:    s.demandes,
		Entreprises: s.entreprises,
		Missions:    s.missions,
		Recepisses:  s.recepisses,
	})
	s.now = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ServiceSuite) TestDashboard() {
	s.demandes.EXPECT().CountByStatus(gomock.Any()).Return(demandeModels.StatusCounts{
		demandeModels.StatusEnAttente: 4,
		demandeModels.StatusEnCours:   2,
		demandeModels.StatusApprouvee: 3,
		demandeModels.StatusRejetee:   1,
	}, nil)
	s.entreprises.EXPECT().Count(gomock.Any()).Return(7, nil)
	s.missions.EXPECT().CountByStatus(gomock.Any()).Return(missionModels.StatusCounts{
		missionModels.StatutPlanifiee: 2,
		missionModels.StatutEnCours:   1,
		missionModels.StatutTerminee:  5,
	}, nil)
	s.recepisses.EXPECT().CountValid(gomock.Any(), s.now).Return(6, nil)

	got, err := s.service.Dashboard(s.ctx)
	s.Require().NoError(err)

	want := &models.Dashboard{
		TotalDemandes:      10,
		DemandesEnAttente:  4,
		DemandesApprouvees: 3,
		TotalEntreprises:   7,
		MissionsEnCours:    1,
		MissionsPlanifiees: 2,
		RecepissesValides:  6,
		ComputedAt:         s.now,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		s.T().Errorf("dashboard mismatch (-want +got):\n%s", diff)
	}
}

func (s *ServiceSuite) TestEmptySources() {
	s.demandes.EXPECT().CountByStatus(gomock.Any()).Return(demandeModels.StatusCounts{}, nil)
	s.entreprises.EXPECT().Count(gomock.Any()).Return(0, nil)
	s.missions.EXPECT().CountByStatus(gomock.Any()).Return(nil, nil)
	s.recepisses.EXPECT().CountValid(gomock.Any(), gomock.Any()).Return(0, nil)

	got, err := s.service.Dashboard(s.ctx)
	s.Require().NoError(err)
	s.Equal(models.Dashboard{ComputedAt: s.now}, *got)
}

func (s *ServiceSuite) TestSourceFailure() {
	s.Run("domain error is returned as is", func() {
		s.demandes.EXPECT().CountByStatus(gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeUnavailable, "database down"))
		s.entreprises.EXPECT().Count(gomock.Any()).Return(1, nil).AnyTimes()
		s.missions.EXPECT().CountByStatus(gomock.Any()).Return(nil, nil).AnyTimes()
		s.recepisses.EXPECT().CountValid(gomock.Any(), gomock.Any()).Return(0, nil).AnyTimes()

		got, err := s.service.Dashboard(s.ctx)
		s.Nil(got)
		s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
	})

	s.Run("plain error becomes internal", func() {
		s.SetupTest()
		s.demandes.EXPECT().CountByStatus(gomock.Any()).Return(nil, nil).AnyTimes()
		s.entreprises.EXPECT().Count(gomock.Any()).Return(0, errors.New("boom"))
		s.missions.EXPECT().CountByStatus(gomock.Any()).Return(nil, nil).AnyTimes()
		s.recepisses.EXPECT().CountValid(gomock.Any(), gomock.Any()).Return(0, nil).AnyTimes()

		_, err := s.service.Dashboard(s.ctx)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func TestDashboardWithMetrics(t *testing.T) {
	ctrl := gomock.NewController(t)
	demandes := mocks.NewMockDemandeCounter(ctrl)
	entreprises := mocks.NewMockEntrepriseCounter(ctrl)
	missions := mocks.NewMockMissionCounter(ctrl)
	recepisses := mocks.NewMockRecepisseCounter(ctrl)
	demandes.EXPECT().CountByStatus(gomock.Any()).Return(nil, nil)
	entreprises.EXPECT().Count(gomock.Any()).Return(0, nil)
	missions.EXPECT().CountByStatus(gomock.Any()).Return(nil, nil)
	recepisses.EXPECT().CountValid(gomock.Any(), gomock.Any()).Return(0, nil)

	svc := New(Sources{demandes, entreprises, missions, recepisses}, WithMetrics(metrics.New()))
	_, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
}
