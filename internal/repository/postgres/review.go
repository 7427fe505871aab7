package postgres

import (
	"context"
	"fmt"
	"math"

	"github.com/farmmitra/FarmMitraGo/internal/domain"
	"github.com/farmmitra/FarmMitraGo/pkg/database"
	apperrors "github.com/farmmitra/FarmMitraGo/pkg/errors"
)

// ReviewRepository implements repository.ReviewRepository using PostgreSQL.
type ReviewRepository struct {
	pool database.DBTX
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(pool database.DBTX) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

// Create inserts a new review. The UNIQUE constraint on user_id is the
// storage-level backstop for the one-review-per-user rule: two concurrent
// submissions can both pass the existence precheck, but only one insert
// succeeds. The loser surfaces as AlreadyExists, same as the precheck path.
func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	query := `
		INSERT INTO reviews (id, user_id, rating, comment, submitted_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.pool.Exec(ctx, query,
		review.ID,
		review.UserID,
		review.Rating,
		review.Comment,
		review.SubmittedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("review", "user_id", review.UserID)
		}
		return fmt.Errorf("insert review: %w", err)
	}

	return nil
}

// ExistsByUserID reports whether the user has already submitted a review.
func (r *ReviewRepository) ExistsByUserID(ctx context.Context, userID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM reviews WHERE user_id = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check review existence: %w", err)
	}

	return exists, nil
}

// List returns all reviews ordered by submission time, newest first.
func (r *ReviewRepository) List(ctx context.Context) ([]domain.Review, error) {
	query := `
		SELECT rv.id, rv.user_id, u.name, rv.rating, rv.comment, rv.submitted_at
		FROM reviews rv
		JOIN users u ON u.id = rv.user_id
		ORDER BY rv.submitted_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(
			&rv.ID,
			&rv.UserID,
			&rv.UserName,
			&rv.Rating,
			&rv.Comment,
			&rv.SubmittedAt,
		); err != nil {
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, rv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}

	if reviews == nil {
		reviews = []domain.Review{}
	}

	return reviews, nil
}

// GetSummary returns the total count and mean rating rounded to one decimal
// place. With no reviews the average is 0.
func (r *ReviewRepository) GetSummary(ctx context.Context) (*domain.ReviewSummary, error) {
	query := `SELECT COALESCE(AVG(rating), 0), COUNT(*) FROM reviews`

	var summary domain.ReviewSummary
	err := r.pool.QueryRow(ctx, query).Scan(
		&summary.AverageRating,
		&summary.TotalCount,
	)
	if err != nil {
		return nil, fmt.Errorf("get review summary: %w", err)
	}

	summary.AverageRating = math.Round(summary.AverageRating*10) / 10

	return &summary, nil
}
