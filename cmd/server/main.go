package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cdp/internal/audit"
	auditHandler "cdp/internal/audit/handler"
	demandesHandler "cdp/internal/demandes/handler"
	demandesMetrics "cdp/internal/demandes/metrics"
	demandesService "cdp/internal/demandes/service"
	demandesStore "cdp/internal/demandes/store"
	"cdp/internal/drafts"
	entreprisesHandler "cdp/internal/entreprises/handler"
	entreprisesService "cdp/internal/entreprises/service"
	entreprisesStore "cdp/internal/entreprises/store"
	"cdp/internal/forms"
	formsHandler "cdp/internal/forms/handler"
	httpapi "cdp/internal/http"
	jwttoken "cdp/internal/jwt_token"
	missionsHandler "cdp/internal/missions/handler"
	missionsService "cdp/internal/missions/service"
	missionsStore "cdp/internal/missions/store"
	"cdp/internal/platform/config"
	"cdp/internal/platform/httpserver"
	"cdp/internal/platform/logger"
	"cdp/internal/platform/metrics"
	"cdp/internal/platform/postgres"
	redisclient "cdp/internal/platform/redis"
	recepissesHandler "cdp/internal/recepisses/handler"
	recepissesService "cdp/internal/recepisses/service"
	recepissesStore "cdp/internal/recepisses/store"
	statsHandler "cdp/internal/stats/handler"
	statsMetrics "cdp/internal/stats/metrics"
	statsService "cdp/internal/stats/service"
	usersHandler "cdp/internal/users/handler"
	"cdp/internal/users/lockout"
	usersMetrics "cdp/internal/users/metrics"
	usersService "cdp/internal/users/service"
	usersStore "cdp/internal/users/store"
	"cdp/internal/workspace"
	workspaceHandler "cdp/internal/workspace/handler"
	"cdp/pkg/platform/circuit"
)

const (
	tokenIssuer     = "cdp-admin"
	shutdownTimeout = 10 * time.Second
	auditPartitions = 3
)

// main wires dependencies from the environment and keeps the server
// lifecycle small. Business logic lives in internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

type backends struct {
	db    *sql.DB
	redis *redisclient.Client
	kafka *audit.KafkaSink
}

func openBackends(ctx context.Context, cfg config.Server, log *slog.Logger) (*backends, error) {
	b := &backends{}
	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		b.db = db
		log.Info("postgres connected")
	}
	rc, err := redisclient.New(ctx, cfg.Redis)
	if err != nil {
		b.Close()
		return nil, err
	}
	b.redis = rc
	if len(cfg.Audit.Brokers) > 0 {
		sink, err := audit.NewKafkaSink(cfg.Audit.Brokers, cfg.Audit.Topic)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.kafka = sink
		if err := sink.EnsureTopic(ctx, auditPartitions); err != nil {
			log.Warn("audit topic not ensured", "topic", cfg.Audit.Topic, "error", err)
		}
		log.Info("audit stream enabled", "topic", cfg.Audit.Topic, "brokers", cfg.Audit.Brokers)
	}
	return b, nil
}

func (b *backends) Close() {
	if b.kafka != nil {
		b.kafka.Close()
	}
	if b.redis != nil {
		_ = b.redis.Close()
	}
	if b.db != nil {
		_ = b.db.Close()
	}
}

func (b *backends) checks() map[string]httpapi.HealthCheck {
	checks := map[string]httpapi.HealthCheck{}
	if b.db != nil {
		checks["postgres"] = b.db.PingContext
	}
	if b.redis != nil {
		checks["redis"] = b.redis.Health
	}
	if b.kafka != nil {
		checks["kafka"] = b.kafka.Ping
	}
	return checks
}

func (b *backends) draftKV() drafts.KV {
	switch {
	case b.redis != nil:
		return drafts.NewRedisKV(b.redis.Client)
	case b.db != nil:
		return drafts.NewPostgresKV(b.db)
	default:
		return drafts.NewMemoryKV()
	}
}

func (b *backends) lockoutStore() lockout.Store {
	if b.redis != nil {
		return lockout.NewRedisStore(b.redis.Client)
	}
	return lockout.NewInMemoryStore()
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	b, err := openBackends(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer b.Close()

	var auditStore audit.Store = audit.NewInMemoryStore()
	var (
		demandes    demandesService.Store    = demandesStore.NewInMemoryStore()
		entreprises entreprisesService.Store = entreprisesStore.NewInMemoryStore()
		missions    missionsService.Store    = missionsStore.NewInMemoryStore()
		recepisses  recepissesService.Store  = recepissesStore.NewInMemoryStore()
		users       usersService.Store       = usersStore.NewInMemoryStore()
	)
	if b.db != nil {
		auditStore = audit.NewPostgresStore(b.db)
		demandes = demandesStore.NewPostgresStore(b.db)
		entreprises = entreprisesStore.NewPostgresStore(b.db)
		missions = missionsStore.NewPostgresStore(b.db)
		recepisses = recepissesStore.NewPostgresStore(b.db)
		users = usersStore.NewPostgresStore(b.db)
	}

	auditOpts := []audit.Option{audit.WithLogger(log)}
	if b.kafka != nil {
		breaker := circuit.New("audit-kafka", circuit.WithFailureThreshold(3), circuit.WithCooldown(30*time.Second))
		auditOpts = append(auditOpts, audit.WithSink(audit.NewBreakerSink(b.kafka, breaker, log)))
	}
	auditor := audit.NewPublisher(auditStore, auditOpts...)

	jwt := jwttoken.NewJWTService(cfg.JWTSigningKey, tokenIssuer)

	demandeSvc := demandesService.New(demandes,
		demandesService.WithLogger(log),
		demandesService.WithMetrics(demandesMetrics.New()),
		demandesService.WithAuditPublisher(auditor),
	)
	if err := demandeSvc.ResumeReferences(ctx); err != nil {
		return err
	}
	entrepriseSvc := entreprisesService.New(entreprises,
		entreprisesService.WithLogger(log),
		entreprisesService.WithAuditPublisher(auditor),
	)
	missionSvc := missionsService.New(missions, entrepriseSvc,
		missionsService.WithLogger(log),
		missionsService.WithAuditPublisher(auditor),
	)
	recepisseSvc := recepissesService.New(recepisses, demandeSvc,
		recepissesService.WithLogger(log),
		recepissesService.WithAuditPublisher(auditor),
	)
	userSvc := usersService.New(users, jwt,
		usersService.WithLogger(log),
		usersService.WithMetrics(usersMetrics.New()),
		usersService.WithAuditPublisher(auditor),
		usersService.WithTokenTTL(cfg.TokenTTL),
		usersService.WithLockout(lockout.New(b.lockoutStore(), lockout.WithLogger(log))),
	)
	statsSvc := statsService.New(statsService.Sources{
		Demandes:    demandeSvc,
		Entreprises: entrepriseSvc,
		Missions:    missionSvc,
		Recepisses:  recepisseSvc,
	}, statsService.WithLogger(log), statsService.WithMetrics(statsMetrics.New()))

	seeded, err := userSvc.SeedAdmin(ctx, usersService.CreateInput{
		Email:    cfg.Admin.Email,
		Nom:      cfg.Admin.Name,
		Password: cfg.Admin.Password,
	})
	if err != nil {
		return err
	}
	if seeded {
		log.Info("seeded administrator account", "email", cfg.Admin.Email)
	}

	catalog, err := forms.NewBuiltinCatalog()
	if err != nil {
		return err
	}
	registry := workspace.NewRegistry(catalog, drafts.New(b.draftKV(), drafts.WithLogger(log)), demandeSvc,
		workspace.WithLogger(log),
		workspace.WithAuditPublisher(auditor),
	)

	uh := usersHandler.New(userSvc, log)
	router := httpapi.NewRouter(httpapi.Deps{
		Logger:  log,
		Metrics: metrics.New(),
		Tokens:  jwttoken.NewJWTServiceAdapter(jwt),
		Public:  []httpapi.PublicRegistrar{uh},
		Protected: []httpapi.Registrar{
			uh,
			formsHandler.New(catalog, log),
			workspaceHandler.New(registry, log),
			demandesHandler.New(demandeSvc, log),
			entreprisesHandler.New(entrepriseSvc, log),
			missionsHandler.New(missionSvc, log),
			recepissesHandler.New(recepisseSvc, log),
			statsHandler.New(statsSvc, log),
			auditHandler.New(auditor, log),
		},
		Checks: b.checks(),
	})

	srv := httpserver.New(cfg.Addr, router)
	errCh := make(chan error, 1)
	go func() {
		log.Info("starting cdp server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
