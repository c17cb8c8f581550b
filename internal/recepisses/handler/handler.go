package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"cdp/internal/recepisses/models"
	id "cdp/pkg/domain"
	"cdp/pkg/platform/httputil"
	"cdp/pkg/platform/middleware/auth"
	"cdp/pkg/requestcontext"
)

type Service interface {
	Issue(ctx context.Context, demandeID id.DemandeID, typeDocument, validiteJusquau string) (*models.Recepisse, error)
	Get(ctx context.Context, recepisseID id.RecepisseID) (*models.Recepisse, error)
	List(ctx context.Context, filter models.Filter) ([]*models.Recepisse, error)
}

type Handler struct {
	recepisses Service
	logger     *slog.Logger
}

func New(recepisses Service, logger *slog.Logger) *Handler {
	return &Handler{recepisses: recepisses, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/recepisses", func(r chi.Router) {
		r.With(auth.RequirePermission(id.PermViewRecepisses, h.logger)).Get("/", h.handleList)
		r.With(auth.RequirePermission(id.PermViewRecepisses, h.logger)).Get("/{id}", h.handleGet)
		r.With(auth.RequirePermission(id.PermIssueRecepisse, h.logger)).Post("/", h.handleIssue)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.Filter{Search: q.Get("search")}
	if raw := q.Get("demandeId"); raw != "" {
		demandeID, err := id.ParseDemandeID(raw)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		filter.DemandeID = demandeID
	}
	out, err := h.recepisses.List(r.Context(), filter)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, listResponse{Recepisses: out, Total: len(out)})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	recepisseID, err := id.ParseRecepisseID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	rec, err := h.recepisses.Get(r.Context(), recepisseID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, rec)
}

func (h *Handler) handleIssue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	req, ok := httputil.DecodeAndPrepare[IssueRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	rec, err := h.recepisses.Issue(ctx, req.demandeID, req.TypeDocument, req.ValiditeJusquau)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to issue recepisse",
			"request_id", requestID,
			"demande_id", req.DemandeID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, rec)
}
