package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"cdp/internal/audit"
	"cdp/internal/demandes/metrics"
	"cdp/internal/demandes/models"
	"cdp/internal/forms"
	"cdp/pkg/attrs"
	id "cdp/pkg/domain"
	dErrors "cdp/pkg/domain-errors"
	"cdp/pkg/platform/sentinel"
	"cdp/pkg/requestcontext"
)

// maxReferenceAttempts bounds retries when a reference collides with one
// issued by another process.
const maxReferenceAttempts = 3

type Store interface {
	Append(ctx context.Context, d *models.Demande) error
	FindByID(ctx context.Context, demandeID id.DemandeID) (*models.Demande, error)
	List(ctx context.Context, filter models.Filter) ([]*models.Demande, error)
	Update(ctx context.Context, d *models.Demande) error
	Delete(ctx context.Context, demandeID id.DemandeID) error
	CountByStatus(ctx context.Context) (models.StatusCounts, error)
	LatestReference(ctx context.Context) (string, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service owns the demande lifecycle from submission to final decision.
type Service struct {
	store          Store
	refs           *models.ReferenceGenerator
	logger         *slog.Logger
	metrics        *metrics.Metrics
	auditPublisher AuditPublisher
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func New(store Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		refs:   models.NewReferenceGenerator(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ResumeReferences continues numbering after the newest stored reference, so
// a restarted process never reissues one even if its clock is behind.
func (s *Service) ResumeReferences(ctx context.Context) error {
	ref, err := s.store.LatestReference(ctx)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil
	}
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load latest reference")
	}
	if ms, ok := models.ParseReference(ref); ok {
		s.refs.Seed(ms)
	}
	return nil
}

// Submit turns completed form answers into a pending demande and appends it
// to the request list.
func (s *Service) Submit(ctx context.Context, formType string, answers forms.Answers) (*models.Demande, error) {
	details, err := models.DetailsFromAnswers(formType, answers)
	if err != nil {
		s.metrics.IncrementSubmitFailure()
		return nil, err
	}
	now := requestcontext.Now(ctx)
	d := &models.Demande{
		ID:             id.DemandeID(uuid.New()),
		Type:           formType,
		DateSoumission: now.UTC().Format(models.DateLayout),
		Statut:         models.StatusEnAttente,
		Entreprise:     models.Entreprise{Nom: details.CompanyName()},
		Details:        details,
		SubmittedBy:    requestcontext.UserID(ctx),
		CreatedAt:      now,
	}

	for attempt := 1; ; attempt++ {
		d.NumeroReference = s.refs.Next(now)
		err = s.store.Append(ctx, d)
		if err == nil {
			break
		}
		if !errors.Is(err, sentinel.ErrAlreadyUsed) || attempt == maxReferenceAttempts {
			s.metrics.IncrementSubmitFailure()
			s.logger.ErrorContext(ctx, "failed to record demande",
				"request_id", requestcontext.RequestID(ctx),
				"form_type", formType,
				"error", err,
			)
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record demande")
		}
	}

	s.metrics.IncrementSubmitted(formType)
	s.logAudit(ctx, audit.ActionDemandeSubmitted,
		"subject", d.NumeroReference,
		"demande_id", d.ID.String(),
		"form_type", formType,
	)
	return d, nil
}

// Get returns one demande. Applicants only see their own.
func (s *Service) Get(ctx context.Context, demandeID id.DemandeID) (*models.Demande, error) {
	d, err := s.store.FindByID(ctx, demandeID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "demande not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load demande")
	}
	if !s.visible(ctx, d) {
		return nil, dErrors.New(dErrors.CodeNotFound, "demande not found")
	}
	return d, nil
}

// List returns matching demandes, newest first. Applicants are scoped to their own.
func (s *Service) List(ctx context.Context, filter models.Filter) ([]*models.Demande, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "unknown demande status")
	}
	if requestcontext.Role(ctx) == id.RoleDemandeur {
		filter.SubmittedBy = requestcontext.UserID(ctx)
	}
	out, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list demandes")
	}
	return out, nil
}

// UpdateStatus applies one transition. Observations are kept on final states.
func (s *Service) UpdateStatus(ctx context.Context, demandeID id.DemandeID, next models.Status, observations string) (*models.Demande, error) {
	d, err := s.Get(ctx, demandeID)
	if err != nil {
		return nil, err
	}
	previous := d.Statut
	if err := d.Transition(next, strings.TrimSpace(observations), requestcontext.Now(ctx)); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, d); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "demande not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update demande")
	}
	s.metrics.IncrementTransition(string(next))
	s.logAudit(ctx, audit.ActionDemandeStatusChanged,
		"subject", d.NumeroReference,
		"from", string(previous),
		"to", string(next),
	)
	return d, nil
}

func (s *Service) Delete(ctx context.Context, demandeID id.DemandeID) error {
	d, err := s.Get(ctx, demandeID)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, demandeID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "demande not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete demande")
	}
	s.logAudit(ctx, audit.ActionDemandeDeleted, "subject", d.NumeroReference)
	return nil
}

// CountByStatus feeds dashboard statistics.
func (s *Service) CountByStatus(ctx context.Context) (models.StatusCounts, error) {
	counts, err := s.store.CountByStatus(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count demandes")
	}
	return counts, nil
}

func (s *Service) visible(ctx context.Context, d *models.Demande) bool {
	if requestcontext.Role(ctx) != id.RoleDemandeur {
		return true
	}
	return d.SubmittedBy == requestcontext.UserID(ctx)
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
