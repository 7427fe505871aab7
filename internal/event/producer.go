package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/farmmitra/FarmMitraGo/internal/domain"
	pkgkafka "github.com/farmmitra/FarmMitraGo/pkg/kafka"
)

// Kafka topic constants for FarmMitra domain events.
const (
	TopicUserRegistered  = "farmmitra.user.registered"
	TopicUserDeleted     = "farmmitra.user.deleted"
	TopicReviewSubmitted = "farmmitra.review.submitted"
	TopicLeadCaptured    = "farmmitra.lead.captured"
)

// Aggregate type constants.
const (
	AggregateTypeUser   = "user"
	AggregateTypeReview = "review"
	AggregateTypeLead   = "farmer_lead"
)

// Source identifier for events originating from this service.
const Source = "farmmitra"

// UserRegisteredData is the payload for a user.registered event.
type UserRegisteredData struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

// UserDeletedData is the payload for a user.deleted event.
type UserDeletedData struct {
	UserID string `json:"user_id"`
}

// ReviewSubmittedData is the payload for a review.submitted event.
type ReviewSubmittedData struct {
	ReviewID string `json:"review_id"`
	UserID   string `json:"user_id"`
	Rating   int    `json:"rating"`
}

// LeadCapturedData is the payload for a lead.captured event.
type LeadCapturedData struct {
	LeadID string `json:"lead_id"`
	Phone  string `json:"phone"`
	Crop   string `json:"crop,omitempty"`
}

// Producer publishes FarmMitra domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishUserRegistered publishes a user.registered event.
func (p *Producer) PublishUserRegistered(ctx context.Context, user *domain.User) error {
	data := UserRegisteredData{
		ID:    user.ID,
		Name:  user.Name,
		Phone: user.Phone,
		Role:  user.Role,
	}

	event, err := pkgkafka.NewEvent(TopicUserRegistered, user.ID, AggregateTypeUser, Source, data)
	if err != nil {
		return fmt.Errorf("create user.registered event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicUserRegistered, event); err != nil {
		return fmt.Errorf("publish user.registered event: %w", err)
	}

	p.logger.DebugContext(ctx, "published user.registered event",
		slog.String("user_id", user.ID),
	)

	return nil
}

// PublishUserDeleted publishes a user.deleted event.
func (p *Producer) PublishUserDeleted(ctx context.Context, userID string) error {
	event, err := pkgkafka.NewEvent(TopicUserDeleted, userID, AggregateTypeUser, Source, UserDeletedData{UserID: userID})
	if err != nil {
		return fmt.Errorf("create user.deleted event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicUserDeleted, event); err != nil {
		return fmt.Errorf("publish user.deleted event: %w", err)
	}

	p.logger.DebugContext(ctx, "published user.deleted event",
		slog.String("user_id", userID),
	)

	return nil
}

// PublishReviewSubmitted publishes a review.submitted event.
func (p *Producer) PublishReviewSubmitted(ctx context.Context, review *domain.Review) error {
	data := ReviewSubmittedData{
		ReviewID: review.ID,
		UserID:   review.UserID,
		Rating:   review.Rating,
	}

	event, err := pkgkafka.NewEvent(TopicReviewSubmitted, review.ID, AggregateTypeReview, Source, data)
	if err != nil {
		return fmt.Errorf("create review.submitted event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicReviewSubmitted, event); err != nil {
		return fmt.Errorf("publish review.submitted event: %w", err)
	}

	p.logger.DebugContext(ctx, "published review.submitted event",
		slog.String("review_id", review.ID),
		slog.String("user_id", review.UserID),
	)

	return nil
}

// PublishLeadCaptured publishes a lead.captured event.
func (p *Producer) PublishLeadCaptured(ctx context.Context, lead *domain.FarmerLead) error {
	data := LeadCapturedData{
		LeadID: lead.ID,
		Phone:  lead.Phone,
		Crop:   lead.Crop,
	}

	event, err := pkgkafka.NewEvent(TopicLeadCaptured, lead.ID, AggregateTypeLead, Source, data)
	if err != nil {
		return fmt.Errorf("create lead.captured event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicLeadCaptured, event); err != nil {
		return fmt.Errorf("publish lead.captured event: %w", err)
	}

	p.logger.DebugContext(ctx, "published lead.captured event",
		slog.String("lead_id", lead.ID),
	)

	return nil
}
