package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"cdp/internal/forms"
	"cdp/pkg/platform/httputil"
)

// Handler serves the form catalog and the definitions behind it.
type Handler struct {
	catalog *forms.Catalog
	logger  *slog.Logger
}

func New(catalog *forms.Catalog, logger *slog.Logger) *Handler {
	return &Handler{catalog: catalog, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/forms", h.handleCatalog)
	r.Get("/forms/{type}", h.handleDefinition)
}

func (h *Handler) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"forms": h.catalog.Entries()})
}

func (h *Handler) handleDefinition(w http.ResponseWriter, r *http.Request) {
	def, err := h.catalog.Definition(chi.URLParam(r, "type"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, def)
}
