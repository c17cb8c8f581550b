package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"cdp/internal/audit"
	id "cdp/pkg/domain"
	dErrors "cdp/pkg/domain-errors"
	"cdp/pkg/platform/httputil"
	"cdp/pkg/platform/middleware/auth"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

type Service interface {
	Recent(ctx context.Context, limit int) ([]audit.Event, error)
}

type Handler struct {
	audit  Service
	logger *slog.Logger
}

func New(audit Service, logger *slog.Logger) *Handler {
	return &Handler{audit: audit, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.With(auth.RequirePermission(id.PermViewAudit, h.logger)).Get("/audit", h.handleRecent)
}

type recentResponse struct {
	Events []audit.Event `json:"events"`
	Total  int           `json:"total"`
}

func (h *Handler) handleRecent(w http.ResponseWriter, r *http.Request) {
	limit := defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxLimit {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "limit must be between 1 and 500"))
			return
		}
		limit = n
	}
	events, err := h.audit.Recent(r.Context(), limit)
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list audit events"))
		return
	}
	if events == nil {
		events = []audit.Event{}
	}
	httputil.WriteJSON(w, http.StatusOK, recentResponse{Events: events, Total: len(events)})
}
