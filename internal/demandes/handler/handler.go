package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"cdp/internal/demandes/models"
	id "cdp/pkg/domain"
	"cdp/pkg/platform/httputil"
	"cdp/pkg/platform/middleware/auth"
	"cdp/pkg/requestcontext"
)

// Service is the demande lifecycle as seen by HTTP.
type Service interface {
	Get(ctx context.Context, demandeID id.DemandeID) (*models.Demande, error)
	List(ctx context.Context, filter models.Filter) ([]*models.Demande, error)
	UpdateStatus(ctx context.Context, demandeID id.DemandeID, next models.Status, observations string) (*models.Demande, error)
	Delete(ctx context.Context, demandeID id.DemandeID) error
}

type Handler struct {
	demandes Service
	logger   *slog.Logger
}

func New(demandes Service, logger *slog.Logger) *Handler {
	return &Handler{demandes: demandes, logger: logger}
}

// Register mounts the demande routes. Authentication is applied by the caller.
func (h *Handler) Register(r chi.Router) {
	r.Route("/demandes", func(r chi.Router) {
		r.With(auth.RequirePermission(id.PermViewDemandes, h.logger)).Get("/", h.handleList)
		r.With(auth.RequirePermission(id.PermViewDemandes, h.logger)).Get("/{id}", h.handleGet)
		r.With(auth.RequirePermission(id.PermProcessDemande, h.logger)).Patch("/{id}/statut", h.handleUpdateStatus)
		r.With(auth.RequirePermission(id.PermDeleteDemande, h.logger)).Delete("/{id}", h.handleDelete)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	filter := models.Filter{
		Search: q.Get("search"),
		Status: models.Status(q.Get("statut")),
		Type:   q.Get("type"),
	}
	out, err := h.demandes.List(ctx, filter)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to list demandes",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, listResponse{Demandes: out, Total: len(out)})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	demandeID, err := id.ParseDemandeID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	d, err := h.demandes.Get(ctx, demandeID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, d)
}

func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	demandeID, err := id.ParseDemandeID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[UpdateStatusRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	d, err := h.demandes.UpdateStatus(ctx, demandeID, req.status, req.Observations)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to update demande status",
			"request_id", requestID,
			"demande_id", demandeID.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, d)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	demandeID, err := id.ParseDemandeID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.demandes.Delete(ctx, demandeID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
