package http

import (
	"log/slog"
	"net/http"

	"github.com/farmmitra/FarmMitraGo/internal/service"
	"github.com/farmmitra/FarmMitraGo/pkg/httputil"
)

// MarketHandler serves the market price board.
type MarketHandler struct {
	service *service.MarketService
	logger  *slog.Logger
}

// NewMarketHandler creates a new market HTTP handler.
func NewMarketHandler(svc *service.MarketService, logger *slog.Logger) *MarketHandler {
	return &MarketHandler{service: svc, logger: logger}
}

// Prices handles GET /api/v1/market/prices
func (h *MarketHandler) Prices(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.service.GetPrices(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: snapshot})
}
