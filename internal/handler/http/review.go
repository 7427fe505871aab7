package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/farmmitra/FarmMitraGo/internal/domain"
	"github.com/farmmitra/FarmMitraGo/internal/service"
	apperrors "github.com/farmmitra/FarmMitraGo/pkg/errors"
	"github.com/farmmitra/FarmMitraGo/pkg/httputil"
	"github.com/farmmitra/FarmMitraGo/pkg/middleware"
	"github.com/farmmitra/FarmMitraGo/pkg/validator"
)

// ReviewHandler handles HTTP requests for platform reviews.
type ReviewHandler struct {
	service *service.ReviewService
	logger  *slog.Logger
}

// NewReviewHandler creates a new review HTTP handler.
func NewReviewHandler(svc *service.ReviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{service: svc, logger: logger}
}

// SubmitReviewRequest is the JSON request body for submitting a review.
// A missing rating defaults to 5.
type SubmitReviewRequest struct {
	Rating  *int   `json:"rating" validate:"omitempty,min=1,max=5"`
	Comment string `json:"comment" validate:"max=500"`
}

// SubmitReviewResponse reports the submission outcome.
type SubmitReviewResponse struct {
	Status string         `json:"status"`
	Review *domain.Review `json:"review,omitempty"`
}

// ListReviewsResponse combines the review list with aggregate statistics.
type ListReviewsResponse struct {
	Reviews []domain.Review       `json:"reviews"`
	Summary *domain.ReviewSummary `json:"summary"`
}

// Submit handles POST /api/v1/reviews
func (h *ReviewHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		httputil.WriteError(w, r, apperrors.Unauthorized("authentication required"), h.logger)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req SubmitReviewRequest
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

	result, err := h.service.SubmitReview(r.Context(), userID, service.SubmitReviewInput{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	// A repeat submission is not an error: the client is told its review
	// is already on record.
	if result.Duplicate {
		httputil.WriteJSON(w, http.StatusOK, httputil.Response{
			Data: SubmitReviewResponse{Status: "duplicate"},
		})
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{
		Data: SubmitReviewResponse{Status: "created", Review: result.Review},
	})
}

// List handles GET /api/v1/reviews
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	reviews, summary, err := h.service.ListReviews(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: ListReviewsResponse{Reviews: reviews, Summary: summary},
	})
}
