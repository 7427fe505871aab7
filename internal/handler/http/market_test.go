package http

import (
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmmitra/FarmMitraGo/internal/service"
)

func marketTestRouter(t *testing.T) *chi.Mux {
	t.Helper()

	svc, err := service.NewMarketService(nil, rand.New(rand.NewSource(1)), testLogger())
	require.NoError(t, err)

	handler := NewMarketHandler(svc, testLogger())

	r := chi.NewRouter()
	r.Get("/api/v1/market/prices", handler.Prices)
	return r
}

func TestMarketPricesEndpoint(t *testing.T) {
	router := marketTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/market/prices", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeResponse(t, rec).Data.(map[string]any)

	cereals := data["cereals"].([]any)
	require.Len(t, cereals, 3)
	first := cereals[0].(map[string]any)
	assert.Equal(t, "Wheat", first["name"])
	assert.NotZero(t, first["price"])

	assert.Len(t, data["vegetables"].([]any), 3)
	assert.Len(t, data["pulses"].([]any), 2)
	assert.NotEmpty(t, data["updated_at"])
}
