package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store,EntrepriseLookup,AuditPublisher

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"cdp/internal/audit"
	entrepriseModels "cdp/internal/entreprises/models"
	"cdp/internal/missions/models"
	"cdp/pkg/attrs"
	id "cdp/pkg/domain"
	dErrors "cdp/pkg/domain-errors"
	"cdp/pkg/platform/sentinel"
	pstrings "cdp/pkg/platform/strings"
	"cdp/pkg/requestcontext"
)

type Store interface {
	Create(ctx context.Context, m *models.Mission) error
	FindByID(ctx context.Context, missionID id.MissionID) (*models.Mission, error)
	List(ctx context.Context, filter models.Filter) ([]*models.Mission, error)
	Update(ctx context.Context, m *models.Mission) error
	Delete(ctx context.Context, missionID id.MissionID) error
	AddCourrier(ctx context.Context, missionID id.MissionID, c models.Courrier) error
	AddDeplacement(ctx context.Context, missionID id.MissionID, d models.Deplacement) error
	CountByStatus(ctx context.Context) (models.StatusCounts, error)
}

// EntrepriseLookup resolves the controlled company for display.
type EntrepriseLookup interface {
	Lookup(ctx context.Context, entrepriseID id.EntrepriseID) (*entrepriseModels.Summary, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service manages control missions and their correspondence.
type Service struct {
	store          Store
	entreprises    EntrepriseLookup
	logger         *slog.Logger
	auditPublisher AuditPublisher
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func New(store Store, entreprises EntrepriseLookup, opts ...Option) *Service {
	s := &Service{store: store, entreprises: entreprises, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create plans a mission against an existing company. Status defaults to
// planifiée.
func (s *Service) Create(ctx context.Context, m models.Mission) (*models.Mission, error) {
	m.NumeroMission = strings.TrimSpace(m.NumeroMission)
	m.Lieu = strings.TrimSpace(m.Lieu)
	if m.NumeroMission == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "numeroMission is required")
	}
	if m.EntrepriseID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "entrepriseId is required")
	}
	if err := requireDay(m.DateMission, "dateMission"); err != nil {
		return nil, err
	}
	if _, err := models.ParseTypeMission(string(m.Type)); err != nil {
		return nil, err
	}
	if m.Statut == "" {
		m.Statut = models.StatutPlanifiee
	}
	summary, err := s.entreprises.Lookup(ctx, m.EntrepriseID)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			return nil, dErrors.New(dErrors.CodeInvalidInput, "entrepriseId does not match a registered entreprise")
		}
		return nil, err
	}

	now := requestcontext.Now(ctx)
	m.ID = id.MissionID(uuid.New())
	m.Equipe = pstrings.DedupeAndTrim(m.Equipe)
	if m.Equipe == nil {
		m.Equipe = []string{}
	}
	m.Courriers, m.Deplacements = nil, nil
	m.CreatedAt, m.UpdatedAt = now, now
	m.Entreprise = nil

	if err := s.store.Create(ctx, &m); err != nil {
		switch {
		case errors.Is(err, sentinel.ErrAlreadyUsed):
			return nil, dErrors.New(dErrors.CodeConflict, "a mission with this number already exists")
		case errors.Is(err, sentinel.ErrInvalidState):
			return nil, dErrors.New(dErrors.CodeInvalidInput, "entrepriseId does not match a registered entreprise")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create mission")
	}
	s.logAudit(ctx, audit.ActionMissionCreated,
		"subject", m.NumeroMission,
		"mission_id", m.ID.String(),
		"entreprise_id", m.EntrepriseID.String(),
	)
	m.Entreprise = summary
	return &m, nil
}

// Get returns the mission with its attachments and company summary.
func (s *Service) Get(ctx context.Context, missionID id.MissionID) (*models.Mission, error) {
	m, err := s.find(ctx, missionID)
	if err != nil {
		return nil, err
	}
	s.attachEntreprises(ctx, []*models.Mission{m})
	return m, nil
}

func (s *Service) List(ctx context.Context, filter models.Filter) ([]*models.Mission, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	out, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list missions")
	}
	s.attachEntreprises(ctx, out)
	return out, nil
}

func (s *Service) Update(ctx context.Context, missionID id.MissionID, update models.Update) (*models.Mission, error) {
	m, err := s.find(ctx, missionID)
	if err != nil {
		return nil, err
	}
	previous := m.Statut
	if err := update.Apply(m, requestcontext.Now(ctx)); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, m); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "mission not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update mission")
	}
	s.logAudit(ctx, audit.ActionMissionUpdated,
		"subject", m.NumeroMission,
		"from", string(previous),
		"to", string(m.Statut),
	)
	s.attachEntreprises(ctx, []*models.Mission{m})
	return m, nil
}

func (s *Service) Delete(ctx context.Context, missionID id.MissionID) error {
	m, err := s.find(ctx, missionID)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, missionID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "mission not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete mission")
	}
	s.logAudit(ctx, audit.ActionMissionDeleted, "subject", m.NumeroMission)
	return nil
}

func (s *Service) AddCourrier(ctx context.Context, missionID id.MissionID, c models.Courrier) (*models.Courrier, error) {
	sens, err := models.ParseSens(strings.TrimSpace(string(c.Sens)))
	if err != nil {
		return nil, err
	}
	if err := requireDay(c.Date, "date"); err != nil {
		return nil, err
	}
	c.Sens = sens
	c.Objet = strings.TrimSpace(c.Objet)
	c.Contenu = strings.TrimSpace(c.Contenu)
	if c.Objet == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "objet is required")
	}
	c.ID = id.CourrierID(uuid.New())
	if err := s.store.AddCourrier(ctx, missionID, c); err != nil {
		return nil, translateAttach(err, "courrier")
	}
	return &c, nil
}

func (s *Service) AddDeplacement(ctx context.Context, missionID id.MissionID, d models.Deplacement) (*models.Deplacement, error) {
	if err := requireDay(d.Date, "date"); err != nil {
		return nil, err
	}
	d.Lieu = strings.TrimSpace(d.Lieu)
	d.Observations = strings.TrimSpace(d.Observations)
	if d.Lieu == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "lieu is required")
	}
	d.Participants = pstrings.DedupeAndTrim(d.Participants)
	if d.Participants == nil {
		d.Participants = []string{}
	}
	d.ID = id.DeplacementID(uuid.New())
	if err := s.store.AddDeplacement(ctx, missionID, d); err != nil {
		return nil, translateAttach(err, "deplacement")
	}
	return &d, nil
}

func (s *Service) CountByStatus(ctx context.Context) (models.StatusCounts, error) {
	counts, err := s.store.CountByStatus(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count missions")
	}
	return counts, nil
}

func (s *Service) find(ctx context.Context, missionID id.MissionID) (*models.Mission, error) {
	m, err := s.store.FindByID(ctx, missionID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "mission not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load mission")
	}
	return m, nil
}

// attachEntreprises fills the display summary once per company. A failed
// lookup leaves the summary empty.
func (s *Service) attachEntreprises(ctx context.Context, missions []*models.Mission) {
	cache := make(map[id.EntrepriseID]*entrepriseModels.Summary)
	for _, m := range missions {
		summary, seen := cache[m.EntrepriseID]
		if !seen {
			var err error
			summary, err = s.entreprises.Lookup(ctx, m.EntrepriseID)
			if err != nil {
				s.logger.WarnContext(ctx, "entreprise lookup failed",
					"entreprise_id", m.EntrepriseID.String(),
					"error", err,
				)
			}
			cache[m.EntrepriseID] = summary
		}
		m.Entreprise = summary
	}
}

func translateAttach(err error, what string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "mission not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to add "+what)
}

func requireDay(value, field string) error {
	if _, err := time.Parse(models.DateLayout, strings.TrimSpace(value)); err != nil {
		return dErrors.New(dErrors.CodeInvalidInput, field+" must be a YYYY-MM-DD date")
	}
	return nil
}

func (s *Service) logAudit(ctx context.Context, action audit.Action, attributes ...any) {
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	args := append(attributes, "event", string(action), "log_type", "audit")
	s.logger.InfoContext(ctx, string(action), args...)
	if s.auditPublisher == nil {
		return
	}
	if err := s.auditPublisher.Emit(ctx, audit.Event{
		Action:  action,
		Subject: attrs.String(attributes, "subject"),
	}); err != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "event", string(action), "error", err)
	}
}
