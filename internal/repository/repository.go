package repository

import (
	"context"
	"time"

	"github.com/farmmitra/FarmMitraGo/internal/domain"
)

// UserRepository defines the interface for user persistence operations.
type UserRepository interface {
	// Create inserts a new user into the store.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique identifier.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByPhone retrieves a user by their phone number.
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)

	// Update modifies an existing user in the store.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user from the store by their identifier.
	// Dependent rows (reviews, refresh tokens) are removed by cascade.
	Delete(ctx context.Context, id string) error
}

// RefreshTokenRepository defines the interface for refresh token persistence operations.
type RefreshTokenRepository interface {
	// Create stores a new refresh token hash.
	Create(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error

	// GetByHash retrieves a refresh token record by its hash.
	GetByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)

	// RevokeByUserID revokes all refresh tokens for the given user.
	RevokeByUserID(ctx context.Context, userID string) error

	// Revoke revokes a specific refresh token by its hash.
	Revoke(ctx context.Context, tokenHash string) error
}

// ReviewRepository defines the interface for review persistence operations.
type ReviewRepository interface {
	// Create inserts a new review. The unique constraint on user_id guarantees
	// at most one review per user at the storage level.
	Create(ctx context.Context, review *domain.Review) error

	// ExistsByUserID reports whether the user has already submitted a review.
	ExistsByUserID(ctx context.Context, userID string) (bool, error)

	// List returns all reviews ordered by submission time, newest first.
	List(ctx context.Context) ([]domain.Review, error)

	// GetSummary returns the review count and mean rating.
	GetSummary(ctx context.Context) (*domain.ReviewSummary, error)
}

// MarketCache defines the interface for caching market price snapshots.
type MarketCache interface {
	// GetSnapshot retrieves the cached snapshot, or a not-found error.
	GetSnapshot(ctx context.Context) (*domain.MarketSnapshot, error)

	// SaveSnapshot stores the snapshot for the cache TTL.
	SaveSnapshot(ctx context.Context, snapshot *domain.MarketSnapshot) error
}

// WeatherCache defines the interface for caching per-location weather reports.
type WeatherCache interface {
	// GetReport retrieves a cached report for the location key, or a not-found error.
	GetReport(ctx context.Context, locationKey string) (*domain.WeatherReport, error)

	// SaveReport stores a report for the location key for the cache TTL.
	SaveReport(ctx context.Context, locationKey string, report *domain.WeatherReport) error
}

// OutreachRepository defines the interface for lead and partnership persistence.
type OutreachRepository interface {
	// CreateLead stores a farmer registration lead.
	CreateLead(ctx context.Context, lead *domain.FarmerLead) error

	// CreateCompanyConnect stores a company partnership inquiry.
	CreateCompanyConnect(ctx context.Context, cc *domain.CompanyConnect) error
}
