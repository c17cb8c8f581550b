package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"cdp/internal/entreprises/models"
	id "cdp/pkg/domain"
	"cdp/pkg/platform/httputil"
	"cdp/pkg/platform/middleware/auth"
	"cdp/pkg/requestcontext"
)

type Service interface {
	Create(ctx context.Context, e models.Entreprise) (*models.Entreprise, error)
	Get(ctx context.Context, entrepriseID id.EntrepriseID) (*models.Entreprise, error)
	List(ctx context.Context, filter models.Filter) ([]*models.Entreprise, error)
	Update(ctx context.Context, entrepriseID id.EntrepriseID, patch models.Patch) (*models.Entreprise, error)
	Delete(ctx context.Context, entrepriseID id.EntrepriseID) error
	Secteurs(ctx context.Context) ([]string, error)
}

type Handler struct {
	entreprises Service
	logger      *slog.Logger
}

func New(entreprises Service, logger *slog.Logger) *Handler {
	return &Handler{entreprises: entreprises, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/entreprises", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(auth.RequirePermission(id.PermViewEntreprises, h.logger))
			r.Get("/", h.handleList)
			r.Get("/secteurs", h.handleSecteurs)
			r.Get("/{id}", h.handleGet)
		})
		r.Group(func(r chi.Router) {
			r.Use(auth.RequirePermission(id.PermManageEntreprises, h.logger))
			r.Post("/", h.handleCreate)
			r.Patch("/{id}", h.handleUpdate)
			r.Delete("/{id}", h.handleDelete)
		})
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.Filter{Search: q.Get("search"), Secteur: q.Get("secteur")}
	if raw := q.Get("statut"); raw != "" {
		st, err := models.ParseStatut(raw)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		filter.Statut = st
	}
	out, err := h.entreprises.List(r.Context(), filter)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, listResponse{Entreprises: out, Total: len(out)})
}

func (h *Handler) handleSecteurs(w http.ResponseWriter, r *http.Request) {
	out, err := h.entreprises.Secteurs(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string][]string{"secteurs": out})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	entrepriseID, err := id.ParseEntrepriseID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	e, err := h.entreprises.Get(r.Context(), entrepriseID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, e)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	req, ok := httputil.DecodeAndPrepare[CreateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	e, err := h.entreprises.Create(ctx, req.toModel())
	if err != nil {
		h.logger.WarnContext(ctx, "failed to create entreprise",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, e)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	entrepriseID, err := id.ParseEntrepriseID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[UpdateRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	e, err := h.entreprises.Update(ctx, entrepriseID, req.toPatch())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, e)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	entrepriseID, err := id.ParseEntrepriseID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.entreprises.Delete(r.Context(), entrepriseID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
