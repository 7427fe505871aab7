package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/farmmitra/FarmMitraGo/internal/service"
	apperrors "github.com/farmmitra/FarmMitraGo/pkg/errors"
	"github.com/farmmitra/FarmMitraGo/pkg/httputil"
	"github.com/farmmitra/FarmMitraGo/pkg/validator"
)

// maxImageBytes caps uploaded scanner images.
const maxImageBytes = 10 << 20

// AdvisoryHandler serves the crop scanner and DBT status endpoints.
type AdvisoryHandler struct {
	service *service.AdvisoryService
	logger  *slog.Logger
}

// NewAdvisoryHandler creates a new advisory HTTP handler.
func NewAdvisoryHandler(svc *service.AdvisoryService, logger *slog.Logger) *AdvisoryHandler {
	return &AdvisoryHandler{service: svc, logger: logger}
}

// DBTStatusRequest is the JSON request body for a DBT linkage check.
type DBTStatusRequest struct {
	Aadhaar     string `json:"aadhaar" validate:"required,len=12,numeric"`
	BankAccount string `json:"bank_account" validate:"required,min=9,max=18,numeric"`
}

// Scan handles POST /api/v1/scanner; expects a multipart form with an
// "image" file field.
func (h *AdvisoryHandler) Scan(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes)

	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("an image upload is required"), h.logger)
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("an image upload is required"), h.logger)
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("could not read uploaded image"), h.logger)
		return
	}

	diagnosis, err := h.service.ScanImage(r.Context(), image)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: diagnosis})
}

// DBTStatus handles POST /api/v1/dbt/status
func (h *AdvisoryHandler) DBTStatus(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req DBTStatusRequest
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

	status, err := h.service.CheckDBTStatus(r.Context(), req.Aadhaar, req.BankAccount)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: status})
}
