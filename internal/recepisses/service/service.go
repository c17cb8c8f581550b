package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store,DemandeLookup,AuditPublisher

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"cdp/internal/audit"
	demandeModels "cdp/internal/demandes/models"
	"cdp/internal/forms"
	"cdp/internal/recepisses/models"
	"cdp/pkg/attrs"
	id "cdp/pkg/domain"
	dErrors "cdp/pkg/domain-errors"
	"cdp/pkg/platform/sentinel"
	"cdp/pkg/requestcontext"
)

type Store interface {
	Issue(ctx context.Context, r *models.Recepisse) error
	FindByID(ctx context.Context, recepisseID id.RecepisseID) (*models.Recepisse, error)
	List(ctx context.Context, filter models.Filter) ([]*models.Recepisse, error)
	CountValid(ctx context.Context, day string) (int, error)
}

// DemandeLookup resolves the demande a receipt is issued for. It applies the
// caller's visibility rules.
type DemandeLookup interface {
	Get(ctx context.Context, demandeID id.DemandeID) (*demandeModels.Demande, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

const defaultTypeDocument = "Récépissé de dépôt"

var documentTypes = map[string]string{
	forms.TypeAutorisation:          "Autorisation de traitement",
	forms.TypeDeclarationNormale:    "Récépissé de déclaration",
	forms.TypeDeclarationSimplifiee: "Récépissé de déclaration simplifiée",
	forms.TypeAvis:                  "Avis de la Commission",
}

type Service struct {
	store          Store
	demandes       DemandeLookup
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

func New(store Store, demandes DemandeLookup, opts ...Option) *Service {
	s := &Service{store: store, demandes: demandes, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue numbers a new receipt for an existing demande, dated today. The
// document type defaults from the demande's form type.
func (s *Service) Issue(ctx context.Context, demandeID id.DemandeID, typeDocument, validiteJusquau string) (*models.Recepisse, error) {
	d, err := s.demandes.Get(ctx, demandeID)
	if err != nil {
		return nil, err
	}
	now := requestcontext.Now(ctx)
	today := now.Format(models.DateLayout)

	validiteJusquau = strings.TrimSpace(validiteJusquau)
	if validiteJusquau != "" {
		if _, err := time.Parse(models.DateLayout, validiteJusquau); err != nil {
			return nil, dErrors.New(dErrors.CodeInvalidInput, "validiteJusquau must be a YYYY-MM-DD date")
		}
		if validiteJusquau < today {
			return nil, dErrors.New(dErrors.CodeInvalidInput, "validiteJusquau is in the past")
		}
	}
	typeDocument = strings.TrimSpace(typeDocument)
	if typeDocument == "" {
		typeDocument = documentTypeFor(d.Type)
	}

	r := &models.Recepisse{
		ID:              id.RecepisseID(uuid.New()),
		DemandeID:       d.ID,
		Annee:           now.Year(),
		DateEmission:    today,
		TypeDocument:    typeDocument,
		ValiditeJusquau: validiteJusquau,
	}
	if err := s.store.Issue(ctx, r); err != nil {
		if errors.Is(err, sentinel.ErrInvalidState) {
			return nil, dErrors.New(dErrors.CodeNotFound, "demande not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue recepisse")
	}
	s.logAudit(ctx, audit.ActionRecepisseIssued,
		"subject", r.NumeroRecepisse,
		"demande", d.NumeroReference,
	)
	return r, nil
}

// Get returns a receipt when its demande is visible to the caller.
func (s *Service) Get(ctx context.Context, recepisseID id.RecepisseID) (*models.Recepisse, error) {
	r, err := s.store.FindByID(ctx, recepisseID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "recepisse not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load recepisse")
	}
	if requestcontext.Role(ctx) == id.RoleDemandeur {
		if _, err := s.demandes.Get(ctx, r.DemandeID); err != nil {
			return nil, dErrors.New(dErrors.CodeNotFound, "recepisse not found")
		}
	}
	return r, nil
}

// List returns matches, newest first. Applicants only see receipts of
// their own demandes.
func (s *Service) List(ctx context.Context, filter models.Filter) ([]*models.Recepisse, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	out, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list recepisses")
	}
	if requestcontext.Role(ctx) != id.RoleDemandeur {
		return out, nil
	}
	visible := make(map[id.DemandeID]bool)
	kept := out[:0]
	for _, r := range out {
		ok, seen := visible[r.DemandeID]
		if !seen {
			_, err := s.demandes.Get(ctx, r.DemandeID)
			ok = err == nil
			visible[r.DemandeID] = ok
		}
		if ok {
			kept = append(kept, r)
		}
	}
	return kept, nil
}

// CountValid counts receipts still valid on now's date.
func (s *Service) CountValid(ctx context.Context, now time.Time) (int, error) {
	n, err := s.store.CountValid(ctx, now.Format(models.DateLayout))
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count recepisses")
	}
	return n, nil
}

func documentTypeFor(formType string) string {
	if t, ok := documentTypes[formType]; ok {
		return t
	}
	return defaultTypeDocument
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
