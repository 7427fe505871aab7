package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/farmmitra/FarmMitraGo/internal/domain"
	"github.com/farmmitra/FarmMitraGo/internal/event"
	"github.com/farmmitra/FarmMitraGo/internal/repository"
	apperrors "github.com/farmmitra/FarmMitraGo/pkg/errors"
)

// defaultRating is used when a review omits the rating.
const defaultRating = 5

// maxCommentLength is the upper bound on review comment size.
const maxCommentLength = 500

// SubmitReviewInput holds the parameters for submitting a review.
// Rating is optional and defaults to 5 when nil.
type SubmitReviewInput struct {
	Rating  *int
	Comment string
}

// SubmitReviewResult reports the outcome of a submission attempt.
type SubmitReviewResult struct {
	Review    *domain.Review
	Duplicate bool
}

// ReviewService implements the one-review-per-user feedback flow.
type ReviewService struct {
	reviewRepo repository.ReviewRepository
	producer   *event.Producer
	logger     *slog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(reviewRepo repository.ReviewRepository, producer *event.Producer, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		producer:   producer,
		logger:     logger,
	}
}

// SubmitReview records a user's review. Each user may submit at most one
// review; a repeat submission is reported as a duplicate rather than an
// error, and leaves the stored review untouched.
func (s *ReviewService) SubmitReview(ctx context.Context, userID string, input SubmitReviewInput) (*SubmitReviewResult, error) {
	rating := defaultRating
	if input.Rating != nil {
		rating = *input.Rating
	}
	if rating < 1 || rating > 5 {
		return nil, apperrors.InvalidInput("rating must be between 1 and 5")
	}
	if len(input.Comment) > maxCommentLength {
		return nil, apperrors.InvalidInput(fmt.Sprintf("comment must be at most %d characters", maxCommentLength))
	}

	exists, err := s.reviewRepo.ExistsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("check existing review: %w", err)
	}
	if exists {
		return &SubmitReviewResult{Duplicate: true}, nil
	}

	review := &domain.Review{
		ID:          uuid.New().String(),
		UserID:      userID,
		Rating:      rating,
		Comment:     input.Comment,
		SubmittedAt: time.Now().UTC(),
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		// Two concurrent first submissions can both pass the existence
		// check; the unique constraint decides the race.
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			return &SubmitReviewResult{Duplicate: true}, nil
		}
		return nil, fmt.Errorf("create review: %w", err)
	}

	// Publish review event (non-blocking on failure).
	if err := s.producer.PublishReviewSubmitted(ctx, review); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish review.submitted event",
			slog.String("review_id", review.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "review submitted",
		slog.String("review_id", review.ID),
		slog.String("user_id", userID),
		slog.Int("rating", rating),
	)

	return &SubmitReviewResult{Review: review}, nil
}

// ListReviews returns all reviews, newest first, with aggregate statistics.
func (s *ReviewService) ListReviews(ctx context.Context) ([]domain.Review, *domain.ReviewSummary, error) {
	reviews, err := s.reviewRepo.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list reviews: %w", err)
	}

	summary, err := s.reviewRepo.GetSummary(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("get review summary: %w", err)
	}

	return reviews, summary, nil
}
