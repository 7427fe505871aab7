package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmmitra/FarmMitraGo/internal/catalog"
	"github.com/farmmitra/FarmMitraGo/pkg/middleware"
)

func cropTestRouter(t *testing.T) *chi.Mux {
	t.Helper()
	c, err := catalog.Load()
	require.NoError(t, err)
	handler := NewCropHandler(c, testLogger())

	r := chi.NewRouter()
	r.Route("/api/v1/crops", func(r chi.Router) {
		r.Use(middleware.CacheControl(3600))
		r.Get("/", handler.List)
		r.Get("/{name}", handler.Get)
		r.Get("/{name}/pests", handler.Pests)
	})
	return r
}

func TestListCropsEndpoint(t *testing.T) {
	router := cropTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/crops", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Cache-Control"), "max-age=3600")

	entries := decodeResponse(t, rec).Data.([]any)
	assert.GreaterOrEqual(t, len(entries), 16)

	first := entries[0].(map[string]any)
	assert.Contains(t, first, "slug")
	assert.Contains(t, first, "title")
}

func TestGetCropEndpoint_Success(t *testing.T) {
	router := cropTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/crops/wheat", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	guide := decodeResponse(t, rec).Data.(map[string]any)
	assert.Contains(t, guide["title"], "Wheat")
	assert.NotEmpty(t, guide["soil_requirements"])
	assert.NotEmpty(t, guide["pests_affecting"])
}

func TestGetCropEndpoint_NormalizesName(t *testing.T) {
	router := cropTestRouter(t)

	// Display names resolve to the same entry as slugs.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/crops/Wheat", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetCropEndpoint_Unknown(t *testing.T) {
	router := cropTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/crops/dragonfruit", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

func TestCropPestsEndpoint(t *testing.T) {
	router := cropTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/crops/rice/pests", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	guide := decodeResponse(t, rec).Data.(map[string]any)
	assert.NotEmpty(t, guide["identification"])
	assert.NotEmpty(t, guide["mixtures"])
	assert.NotEmpty(t, guide["application_process"])
	assert.NotEmpty(t, guide["safety_precautions"])
	assert.NotEmpty(t, guide["recommendations"])
}
