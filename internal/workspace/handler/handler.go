package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"cdp/internal/forms"
	"cdp/internal/workspace"
	dErrors "cdp/pkg/domain-errors"
	"cdp/pkg/platform/httputil"
	"cdp/pkg/requestcontext"
)

// Handler exposes the caller's workspace. Every route acts on the workspace
// of the authenticated principal.
type Handler struct {
	registry *workspace.Registry
	logger   *slog.Logger
}

func New(registry *workspace.Registry, logger *slog.Logger) *Handler {
	return &Handler{registry: registry, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/workspace", func(r chi.Router) {
		r.Get("/", h.handleState)
		r.Post("/navigate", h.handleNavigate)
		r.Post("/form", h.handleOpenForm)
		r.Delete("/form", h.handleCloseForm)
		r.Patch("/form/answers", h.handleSetAnswers)
		r.Post("/form/toggle", h.handleToggle)
		r.Post("/form/next", h.handleNext)
		r.Post("/form/previous", h.handlePrevious)
		r.Post("/form/submit", h.handleSubmit)
		r.Post("/form/draft", h.handleSaveDraft)
		r.Post("/form/draft/load", h.handleLoadDraft)
		r.Delete("/form/draft", h.handleDiscardDraft)
	})
}

func (h *Handler) workspaceFor(r *http.Request) (*workspace.Workspace, bool) {
	ctx := r.Context()
	userID := requestcontext.UserID(ctx)
	if userID.IsNil() {
		return nil, false
	}
	return h.registry.For(userID, requestcontext.Role(ctx)), true
}

// run resolves the caller's workspace, applies op and writes the resulting state.
func (h *Handler) run(w http.ResponseWriter, r *http.Request, op func(ws *workspace.Workspace) error) {
	ws, ok := h.workspaceFor(r)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}
	if err := op(ws); err != nil {
		h.writeError(w, r, ws, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ws.State())
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, ws *workspace.Workspace, err error) {
	var verr *forms.ValidationError
	if errors.As(err, &verr) {
		httputil.WriteJSON(w, http.StatusUnprocessableEntity, validationResponse{
			Error:  string(dErrors.CodeValidation),
			Page:   verr.Page,
			Fields: verr.Fields,
			State:  ws.State(),
		})
		return
	}
	ctx := r.Context()
	h.logger.WarnContext(ctx, "workspace operation failed",
		"request_id", requestcontext.RequestID(ctx),
		"user_id", requestcontext.UserID(ctx).String(),
		"path", r.URL.Path,
		"error", err,
	)
	httputil.WriteError(w, err)
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, func(*workspace.Workspace) error { return nil })
}

func (h *Handler) handleNavigate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[NavigateRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	h.run(w, r, func(ws *workspace.Workspace) error { return ws.Navigate(req.section) })
}

func (h *Handler) handleOpenForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[OpenFormRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	h.run(w, r, func(ws *workspace.Workspace) error {
		return ws.SelectFormType(ctx, req.Type, req.Resume)
	})
}

func (h *Handler) handleCloseForm(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, func(ws *workspace.Workspace) error {
		ws.CloseForm()
		return nil
	})
}

func (h *Handler) handleSetAnswers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[AnswersRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	h.run(w, r, func(ws *workspace.Workspace) error { return ws.SetMany(req.Answers) })
}

func (h *Handler) handleToggle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[ToggleRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	h.run(w, r, func(ws *workspace.Workspace) error { return ws.Toggle(req.Field, req.Option) })
}

func (h *Handler) handleNext(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, func(ws *workspace.Workspace) error { return ws.Next() })
}

func (h *Handler) handlePrevious(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, func(ws *workspace.Workspace) error { return ws.Previous() })
}

func (h *Handler) handleSaveDraft(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, func(ws *workspace.Workspace) error { return ws.SaveDraft(r.Context()) })
}

func (h *Handler) handleDiscardDraft(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, func(ws *workspace.Workspace) error { return ws.DiscardDraft(r.Context()) })
}

func (h *Handler) handleLoadDraft(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspaceFor(r)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}
	loaded, err := ws.LoadDraft(r.Context())
	if err != nil {
		h.writeError(w, r, ws, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, loadDraftResponse{Loaded: loaded, State: ws.State()})
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspaceFor(r)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}
	d, err := ws.Submit(r.Context())
	if err != nil {
		h.writeError(w, r, ws, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, submitResponse{Demande: d, State: ws.State()})
}
