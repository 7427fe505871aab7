package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/farmmitra/FarmMitraGo/internal/domain"
	"github.com/farmmitra/FarmMitraGo/internal/event"
	"github.com/farmmitra/FarmMitraGo/internal/repository"
	apperrors "github.com/farmmitra/FarmMitraGo/pkg/errors"
)

// Confirmation messages shown to outreach form submitters.
const (
	leadConfirmation    = "Registration successful!"
	connectConfirmation = "Thank you for your interest! Our partner companies will contact you shortly."
)

// RegisterFarmerInput holds the parameters of a farmer outreach registration.
type RegisterFarmerInput struct {
	Name      string
	Phone     string
	Village   string
	District  string
	State     string
	Crop      string
	LandAcres float64
}

// ConnectCompanyInput holds the parameters of a company partnership inquiry.
type ConnectCompanyInput struct {
	CompanyName string
	ContactName string
	Email       string
	Phone       string
	Message     string
}

// OutreachService captures farmer registration leads and company
// partnership inquiries.
type OutreachService struct {
	outreachRepo repository.OutreachRepository
	producer     *event.Producer
	logger       *slog.Logger
}

// NewOutreachService creates a new outreach service.
func NewOutreachService(outreachRepo repository.OutreachRepository, producer *event.Producer, logger *slog.Logger) *OutreachService {
	return &OutreachService{
		outreachRepo: outreachRepo,
		producer:     producer,
		logger:       logger,
	}
}

// RegisterFarmer stores a registration lead and returns the confirmation message.
func (s *OutreachService) RegisterFarmer(ctx context.Context, input RegisterFarmerInput) (string, error) {
	if input.Phone == "" {
		return "", apperrors.InvalidInput("phone is required")
	}
	if input.LandAcres < 0 {
		return "", apperrors.InvalidInput("land size cannot be negative")
	}

	lead := &domain.FarmerLead{
		ID:        uuid.New().String(),
		Name:      input.Name,
		Phone:     input.Phone,
		Village:   input.Village,
		District:  input.District,
		State:     input.State,
		Crop:      input.Crop,
		LandAcres: input.LandAcres,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.outreachRepo.CreateLead(ctx, lead); err != nil {
		return "", fmt.Errorf("create farmer lead: %w", err)
	}

	// Publish lead event (non-blocking on failure).
	if err := s.producer.PublishLeadCaptured(ctx, lead); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish lead.captured event",
			slog.String("lead_id", lead.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "farmer lead captured",
		slog.String("lead_id", lead.ID),
		slog.String("phone", lead.Phone),
	)

	return leadConfirmation, nil
}

// ConnectCompany stores a partnership inquiry and returns the confirmation message.
func (s *OutreachService) ConnectCompany(ctx context.Context, input ConnectCompanyInput) (string, error) {
	if input.CompanyName == "" {
		return "", apperrors.InvalidInput("company name is required")
	}
	if input.Email == "" && input.Phone == "" {
		return "", apperrors.InvalidInput("an email or phone contact is required")
	}

	cc := &domain.CompanyConnect{
		ID:          uuid.New().String(),
		CompanyName: input.CompanyName,
		ContactName: input.ContactName,
		Email:       input.Email,
		Phone:       input.Phone,
		Message:     input.Message,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.outreachRepo.CreateCompanyConnect(ctx, cc); err != nil {
		return "", fmt.Errorf("create company connect: %w", err)
	}

	s.logger.InfoContext(ctx, "company inquiry received",
		slog.String("inquiry_id", cc.ID),
		slog.String("company", cc.CompanyName),
	)

	return connectConfirmation, nil
}
