package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store,AuditPublisher

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/google/uuid"

	"cdp/internal/audit"
	"cdp/internal/entreprises/models"
	"cdp/pkg/attrs"
	id "cdp/pkg/domain"
	dErrors "cdp/pkg/domain-errors"
	"cdp/pkg/platform/sentinel"
	"cdp/pkg/requestcontext"
)

type Store interface {
	Create(ctx context.Context, e *models.Entreprise) error
	FindByID(ctx context.Context, entrepriseID id.EntrepriseID) (*models.Entreprise, error)
	List(ctx context.Context, filter models.Filter) ([]*models.Entreprise, error)
	Update(ctx context.Context, e *models.Entreprise) error
	Delete(ctx context.Context, entrepriseID id.EntrepriseID) error
	Secteurs(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service manages the company registry.
type Service struct {
	store          Store
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

func New(store Store, opts ...Option) *Service {
	s := &Service{store: store, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create registers a company. The registration day defaults to today and the
// status to active.
func (s *Service) Create(ctx context.Context, e models.Entreprise) (*models.Entreprise, error) {
	e.Nom = strings.TrimSpace(e.Nom)
	e.NINEA = strings.TrimSpace(e.NINEA)
	e.Adresse = strings.TrimSpace(e.Adresse)
	e.Telephone = strings.TrimSpace(e.Telephone)
	e.Email = strings.TrimSpace(e.Email)
	e.SecteurActivite = strings.TrimSpace(e.SecteurActivite)
	if e.Nom == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "nom is required")
	}
	if e.NINEA == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "ninea is required")
	}
	if err := validateEmail(e.Email); err != nil {
		return nil, err
	}
	if e.Statut == "" {
		e.Statut = models.StatutActive
	}
	if e.DateInscription == "" {
		e.DateInscription = requestcontext.Now(ctx).Format(models.DateLayout)
	}
	e.ID = id.EntrepriseID(uuid.New())

	if err := s.store.Create(ctx, &e); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodeConflict, "an entreprise with this NINEA already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create entreprise")
	}
	s.logAudit(ctx, audit.ActionEntrepriseCreated,
		"subject", e.NINEA,
		"entreprise_id", e.ID.String(),
	)
	return &e, nil
}

func (s *Service) Get(ctx context.Context, entrepriseID id.EntrepriseID) (*models.Entreprise, error) {
	e, err := s.store.FindByID(ctx, entrepriseID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "entreprise not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load entreprise")
	}
	return e, nil
}

// Lookup is the read-only projection used by other modules.
func (s *Service) Lookup(ctx context.Context, entrepriseID id.EntrepriseID) (*models.Summary, error) {
	e, err := s.Get(ctx, entrepriseID)
	if err != nil {
		return nil, err
	}
	summary := e.Summary()
	return &summary, nil
}

func (s *Service) List(ctx context.Context, filter models.Filter) ([]*models.Entreprise, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	filter.Secteur = strings.TrimSpace(filter.Secteur)
	out, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list entreprises")
	}
	return out, nil
}

func (s *Service) Update(ctx context.Context, entrepriseID id.EntrepriseID, patch models.Patch) (*models.Entreprise, error) {
	e, err := s.Get(ctx, entrepriseID)
	if err != nil {
		return nil, err
	}
	patch.Apply(e)
	if e.Nom == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "nom is required")
	}
	if err := validateEmail(e.Email); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, e); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "entreprise not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update entreprise")
	}
	return e, nil
}

func (s *Service) Delete(ctx context.Context, entrepriseID id.EntrepriseID) error {
	e, err := s.Get(ctx, entrepriseID)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, entrepriseID); err != nil {
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			return dErrors.New(dErrors.CodeNotFound, "entreprise not found")
		case errors.Is(err, sentinel.ErrInvalidState):
			return dErrors.New(dErrors.CodeConflict, "entreprise still has control missions")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete entreprise")
	}
	s.logAudit(ctx, audit.ActionEntrepriseDeleted, "subject", e.NINEA)
	return nil
}

func (s *Service) Secteurs(ctx context.Context) ([]string, error) {
	out, err := s.store.Secteurs(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list secteurs")
	}
	return out, nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	n, err := s.store.Count(ctx)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count entreprises")
	}
	return n, nil
}

func validateEmail(email string) error {
	if email != "" && !govalidator.IsEmail(email) {
		return dErrors.New(dErrors.CodeInvalidInput, "invalid email address")
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
