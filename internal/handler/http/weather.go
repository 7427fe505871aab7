package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/farmmitra/FarmMitraGo/internal/service"
	apperrors "github.com/farmmitra/FarmMitraGo/pkg/errors"
	"github.com/farmmitra/FarmMitraGo/pkg/httputil"
)

// WeatherHandler serves location weather reports.
type WeatherHandler struct {
	service *service.WeatherService
	logger  *slog.Logger
}

// NewWeatherHandler creates a new weather HTTP handler.
func NewWeatherHandler(svc *service.WeatherService, logger *slog.Logger) *WeatherHandler {
	return &WeatherHandler{service: svc, logger: logger}
}

// Get handles GET /api/v1/weather?lat=&lon=
func (h *WeatherHandler) Get(w http.ResponseWriter, r *http.Request) {
	latParam := r.URL.Query().Get("lat")
	lonParam := r.URL.Query().Get("lon")
	if latParam == "" || lonParam == "" {
		httputil.WriteError(w, r, apperrors.InvalidInput("lat and lon query parameters are required"), h.logger)
		return
	}

	lat, err := strconv.ParseFloat(latParam, 64)
	if err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("lat must be a number"), h.logger)
		return
	}
	lon, err := strconv.ParseFloat(lonParam, 64)
	if err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("lon must be a number"), h.logger)
		return
	}

	report, err := h.service.GetWeather(r.Context(), lat, lon)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: report})
}
