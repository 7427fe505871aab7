package http

import (
	"testing"

	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/farmmitra/FarmMitraGo/internal/service"
)

func outreachTestRouter(repo *mockOutreachRepo) *chi.Mux {
	svc := service.NewOutreachService(repo, testEventProducer(), testLogger())
	handler := NewOutreachHandler(svc, testLogger())

	r := chi.NewRouter()
	r.Route("/api/v1/outreach", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Post("/register", handler.RegisterFarmer)
		r.Post("/connect", handler.ConnectCompany)
	})
	return r
}

func TestRegisterFarmerEndpoint_Success(t *testing.T) {
	repo := new(mockOutreachRepo)
	router := outreachTestRouter(repo)

	repo.On("CreateLead", mock.Anything, mock.Anything).Return(nil)

	rec := postJSON(t, router, "/api/v1/outreach/register",
		`{"name":"Ramesh Kumar","phone":"9876543210","crop":"wheat","land_acres":2.5}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	data := decodeResponse(t, rec).Data.(map[string]any)
	assert.Equal(t, "Registration successful!", data["message"])
	repo.AssertExpectations(t)
}

func TestRegisterFarmerEndpoint_MissingPhone(t *testing.T) {
	repo := new(mockOutreachRepo)
	router := outreachTestRouter(repo)

	rec := postJSON(t, router, "/api/v1/outreach/register", `{"name":"Ramesh Kumar"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	repo.AssertNotCalled(t, "CreateLead", mock.Anything, mock.Anything)
}

func TestConnectCompanyEndpoint_Success(t *testing.T) {
	repo := new(mockOutreachRepo)
	router := outreachTestRouter(repo)

	repo.On("CreateCompanyConnect", mock.Anything, mock.Anything).Return(nil)

	rec := postJSON(t, router, "/api/v1/outreach/connect",
		`{"company_name":"AgriCorp","contact_name":"Priya Sharma","email":"priya@agricorp.example"}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	data := decodeResponse(t, rec).Data.(map[string]any)
	assert.Equal(t, "Thank you for your interest! Our partner companies will contact you shortly.", data["message"])
}

func TestConnectCompanyEndpoint_MissingCompanyName(t *testing.T) {
	repo := new(mockOutreachRepo)
	router := outreachTestRouter(repo)

	rec := postJSON(t, router, "/api/v1/outreach/connect", `{"email":"a@b.example"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
