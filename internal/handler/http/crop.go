package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/farmmitra/FarmMitraGo/internal/catalog"
	"github.com/farmmitra/FarmMitraGo/pkg/httputil"
)

// CropHandler serves the embedded crop encyclopedia.
type CropHandler struct {
	catalog *catalog.Catalog
	logger  *slog.Logger
}

// NewCropHandler creates a new crop HTTP handler.
func NewCropHandler(c *catalog.Catalog, logger *slog.Logger) *CropHandler {
	return &CropHandler{catalog: c, logger: logger}
}

// List handles GET /api/v1/crops
func (h *CropHandler) List(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: h.catalog.Entries(),
	})
}

// Get handles GET /api/v1/crops/{name}
func (h *CropHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	guide, err := h.catalog.Guide(name)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: guide})
}

// Pests handles GET /api/v1/crops/{name}/pests
func (h *CropHandler) Pests(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	guide, err := h.catalog.PestGuide(name)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: guide})
}
