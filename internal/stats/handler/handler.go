package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"cdp/internal/stats/models"
	id "cdp/pkg/domain"
	"cdp/pkg/platform/httputil"
	"cdp/pkg/platform/middleware/auth"
	"cdp/pkg/requestcontext"
)

type Service interface {
	Dashboard(ctx context.Context) (*models.Dashboard, error)
}

type Handler struct {
	stats  Service
	logger *slog.Logger
}

func New(stats Service, logger *slog.Logger) *Handler {
	return &Handler{stats: stats, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.With(auth.RequirePermission(id.PermViewStatistics, h.logger)).Get("/stats", h.handleDashboard)
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	out, err := h.stats.Dashboard(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load dashboard",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}
