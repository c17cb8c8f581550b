package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"cdp/internal/missions/models"
	id "cdp/pkg/domain"
	"cdp/pkg/platform/httputil"
	"cdp/pkg/platform/middleware/auth"
	"cdp/pkg/requestcontext"
)

type Service interface {
	Create(ctx context.Context, m models.Mission) (*models.Mission, error)
	Get(ctx context.Context, missionID id.MissionID) (*models.Mission, error)
	List(ctx context.Context, filter models.Filter) ([]*models.Mission, error)
	Update(ctx context.Context, missionID id.MissionID, update models.Update) (*models.Mission, error)
	Delete(ctx context.Context, missionID id.MissionID) error
	AddCourrier(ctx context.Context, missionID id.MissionID, c models.Courrier) (*models.Courrier, error)
	AddDeplacement(ctx context.Context, missionID id.MissionID, d models.Deplacement) (*models.Deplacement, error)
}

type Handler struct {
	missions Service
	logger   *slog.Logger
}

func New(missions Service, logger *slog.Logger) *Handler {
	return &Handler{missions: missions, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/missions", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(auth.RequirePermission(id.PermViewMissions, h.logger))
			r.Get("/", h.handleList)
			r.Get("/{id}", h.handleGet)
		})
		r.Group(func(r chi.Router) {
			r.Use(auth.RequirePermission(id.PermManageMissions, h.logger))
			r.Post("/", h.handleCreate)
			r.Patch("/{id}", h.handleUpdate)
			r.Delete("/{id}", h.handleDelete)
			r.Post("/{id}/courriers", h.handleAddCourrier)
			r.Post("/{id}/deplacements", h.handleAddDeplacement)
		})
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	out, err := h.missions.List(r.Context(), filter)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, listResponse{Missions: out, Total: len(out)})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	missionID, err := id.ParseMissionID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	m, err := h.missions.Get(r.Context(), missionID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, m)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	req, ok := httputil.DecodeAndPrepare[CreateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	m, err := h.missions.Create(ctx, req.toModel())
	if err != nil {
		h.logger.WarnContext(ctx, "failed to create mission",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, m)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	missionID, err := id.ParseMissionID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[UpdateRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	m, err := h.missions.Update(ctx, missionID, req.toUpdate())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, m)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	missionID, err := id.ParseMissionID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.missions.Delete(r.Context(), missionID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleAddCourrier(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	missionID, err := id.ParseMissionID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[CourrierRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	c, err := h.missions.AddCourrier(ctx, missionID, req.toModel())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, c)
}

func (h *Handler) handleAddDeplacement(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	missionID, err := id.ParseMissionID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[DeplacementRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	d, err := h.missions.AddDeplacement(ctx, missionID, req.toModel())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, d)
}

func parseFilter(r *http.Request) (models.Filter, error) {
	q := r.URL.Query()
	filter := models.Filter{Search: q.Get("search")}
	if raw := q.Get("statut"); raw != "" {
		st, err := models.ParseStatut(raw)
		if err != nil {
			return filter, err
		}
		filter.Statut = st
	}
	if raw := q.Get("type"); raw != "" {
		t, err := models.ParseTypeMission(raw)
		if err != nil {
			return filter, err
		}
		filter.Type = t
	}
	if raw := q.Get("entrepriseId"); raw != "" {
		entrepriseID, err := id.ParseEntrepriseID(raw)
		if err != nil {
			return filter, err
		}
		filter.EntrepriseID = entrepriseID
	}
	return filter, nil
}
