package service

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	demandeModels "cdp/internal/demandes/models"
	missionModels "cdp/internal/missions/models"
	"cdp/internal/stats/metrics"
	"cdp/internal/stats/models"
	dErrors "cdp/pkg/domain-errors"
	"cdp/pkg/requestcontext"
)

const aggregateTimeout = 5 * time.Second

var tracer = otel.Tracer("cdp/internal/stats")

type DemandeCounter interface {
	CountByStatus(ctx context.Context) (demandeModels.StatusCounts, error)
}

type EntrepriseCounter interface {
	Count(ctx context.Context) (int, error)
}

type MissionCounter interface {
	CountByStatus(ctx context.Context) (missionModels.StatusCounts, error)
}

type RecepisseCounter interface {
	CountValid(ctx context.Context, now time.Time) (int, error)
}

// Sources groups the read-only counters the dashboard draws from.
type Sources struct {
	Demandes    DemandeCounter
	Entreprises EntrepriseCounter
	Missions    MissionCounter
	Recepisses  RecepisseCounter
}

type Service struct {
	sources Sources
	logger  *slog.Logger
	metrics *metrics.Metrics
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

func New(sources Sources, opts ...Option) *Service {
	s := &Service{
		sources: sources,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dashboard queries every source concurrently. The first failure cancels
// the remaining queries and no partial dashboard is returned.
func (s *Service) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	start := time.Now()
	now := requestcontext.Now(ctx)

	ctx, span := tracer.Start(ctx, "stats.Dashboard")
	defer span.End()
	ctx, cancel := context.WithTimeout(ctx, aggregateTimeout)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	out := &models.Dashboard{ComputedAt: now}

	g.Go(s.timed(ctx, "demandes", func(ctx context.Context) error {
		counts, err := s.sources.Demandes.CountByStatus(ctx)
		if err != nil {
			return err
		}
		for _, n := range counts {
			out.TotalDemandes += n
		}
		out.DemandesEnAttente = counts[demandeModels.StatusEnAttente]
		out.DemandesApprouvees = counts[demandeModels.StatusApprouvee]
		return nil
	}))

	g.Go(s.timed(ctx, "entreprises", func(ctx context.Context) error {
		n, err := s.sources.Entreprises.Count(ctx)
		if err != nil {
			return err
		}
		out.TotalEntreprises = n
		return nil
	}))

	g.Go(s.timed(ctx, "missions", func(ctx context.Context) error {
		counts, err := s.sources.Missions.CountByStatus(ctx)
		if err != nil {
			return err
		}
		out.MissionsEnCours = counts[missionModels.StatutEnCours]
		out.MissionsPlanifiees = counts[missionModels.StatutPlanifiee]
		return nil
	}))

	g.Go(s.timed(ctx, "recepisses", func(ctx context.Context) error {
		n, err := s.sources.Recepisses.CountValid(ctx, now)
		if err != nil {
			return err
		}
		out.RecepissesValides = n
		return nil
	}))

	if err := g.Wait(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		s.logger.ErrorContext(ctx, "failed to aggregate dashboard",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		if _, ok := dErrors.As(err); ok {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to compute statistics")
	}
	s.metrics.ObserveAggregate(time.Since(start))
	return out, nil
}

// timed runs fn under its own span and records its latency per source.
func (s *Service) timed(ctx context.Context, source string, fn func(context.Context) error) func() error {
	return func() error {
		ctx, span := tracer.Start(ctx, "stats.source."+source)
		defer span.End()
		start := time.Now()
		err := fn(ctx)
		s.metrics.ObserveSource(source, time.Since(start))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "source failed")
		}
		return err
	}
}
