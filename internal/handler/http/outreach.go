package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/farmmitra/FarmMitraGo/internal/service"
	"github.com/farmmitra/FarmMitraGo/pkg/httputil"
	"github.com/farmmitra/FarmMitraGo/pkg/validator"
)

// OutreachHandler serves the farmer registration and company connect forms.
type OutreachHandler struct {
	service *service.OutreachService
	logger  *slog.Logger
}

// NewOutreachHandler creates a new outreach HTTP handler.
func NewOutreachHandler(svc *service.OutreachService, logger *slog.Logger) *OutreachHandler {
	return &OutreachHandler{service: svc, logger: logger}
}

// RegisterFarmerRequest is the JSON request body for the registration form.
type RegisterFarmerRequest struct {
	Name      string  `json:"name" validate:"max=100"`
	Phone     string  `json:"phone" validate:"required,min=10,max=15"`
	Village   string  `json:"village" validate:"max=100"`
	District  string  `json:"district" validate:"max=100"`
	State     string  `json:"state" validate:"max=100"`
	Crop      string  `json:"crop" validate:"max=100"`
	LandAcres float64 `json:"land_acres" validate:"gte=0"`
}

// ConnectCompanyRequest is the JSON request body for a partnership inquiry.
type ConnectCompanyRequest struct {
	CompanyName string `json:"company_name" validate:"required,max=200"`
	ContactName string `json:"contact_name" validate:"max=100"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone" validate:"omitempty,min=10,max=15"`
	Message     string `json:"message" validate:"max=1000"`
}

// MessageResponse carries a confirmation message back to the form.
type MessageResponse struct {
	Message string `json:"message"`
}

// RegisterFarmer handles POST /api/v1/outreach/register
func (h *OutreachHandler) RegisterFarmer(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req RegisterFarmerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	msg, err := h.service.RegisterFarmer(r.Context(), service.RegisterFarmerInput{
		Name:      req.Name,
		Phone:     req.Phone,
		Village:   req.Village,
		District:  req.District,
		State:     req.State,
		Crop:      req.Crop,
		LandAcres: req.LandAcres,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: MessageResponse{Message: msg}})
}

// ConnectCompany handles POST /api/v1/outreach/connect
func (h *OutreachHandler) ConnectCompany(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req ConnectCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	msg, err := h.service.ConnectCompany(r.Context(), service.ConnectCompanyInput{
		CompanyName: req.CompanyName,
		ContactName: req.ContactName,
		Email:       req.Email,
		Phone:       req.Phone,
		Message:     req.Message,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: MessageResponse{Message: msg}})
}
