// Package httpapi assembles the HTTP surface: shared middleware, the public
// login route, the authenticated /api tree and operational endpoints.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cdp/internal/platform/metrics"
	"cdp/pkg/platform/httputil"
	"cdp/pkg/platform/middleware/auth"
	"cdp/pkg/platform/middleware/metadata"
	"cdp/pkg/platform/middleware/requestlog"
	"cdp/pkg/platform/middleware/requesttime"
)

const (
	requestTimeout = 30 * time.Second
	healthTimeout  = 2 * time.Second
)

// Registrar mounts routes that expect an authenticated principal.
type Registrar interface {
	Register(r chi.Router)
}

// PublicRegistrar mounts routes reachable without a token.
type PublicRegistrar interface {
	RegisterPublic(r chi.Router)
}

// HealthCheck reports whether a backing dependency is reachable.
type HealthCheck func(ctx context.Context) error

type Deps struct {
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
	Tokens    auth.TokenValidator
	Public    []PublicRegistrar
	Protected []Registrar
	Checks    map[string]HealthCheck
}

func NewRouter(d Deps) http.Handler {
	logger := d.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(metadata.ClientMetadata)
	r.Use(requestlog.Middleware(logger))
	r.Use(chimw.Recoverer)
	r.Use(requesttime.Middleware)
	r.Use(d.Metrics.Middleware)

	r.Get("/healthz", healthHandler(d.Checks))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(chimw.Timeout(requestTimeout))
		for _, h := range d.Public {
			h.RegisterPublic(r)
		}
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(d.Tokens, logger))
			for _, h := range d.Protected {
				h.Register(r)
			}
		})
	})
	return r
}

type healthResponse struct {
	Status string   `json:"status"`
	Failed []string `json:"failed,omitempty"`
}

func healthHandler(checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		var failed []string
		for name, check := range checks {
			if err := check(ctx); err != nil {
				failed = append(failed, name)
			}
		}
		if len(failed) > 0 {
			sort.Strings(failed)
			httputil.WriteJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "degraded", Failed: failed})
			return
		}
		httputil.WriteJSON(w, http.StatusOK, healthResponse{Status: "ok"})
	}
}
