package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/farmmitra/FarmMitraGo/internal/domain"
	apperrors "github.com/farmmitra/FarmMitraGo/pkg/errors"
)

// --- Mock Outreach Repository ---

type mockOutreachRepository struct {
	mock.Mock
}

func (m *mockOutreachRepository) CreateLead(ctx context.Context, lead *domain.FarmerLead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *mockOutreachRepository) CreateCompanyConnect(ctx context.Context, cc *domain.CompanyConnect) error {
	args := m.Called(ctx, cc)
	return args.Error(0)
}

func newTestOutreachService(repo *mockOutreachRepository) *OutreachService {
	return NewOutreachService(repo, newTestEventProducer(), newTestLogger())
}

// --- Register Farmer Tests ---

func TestRegisterFarmer_Success(t *testing.T) {
	repo := new(mockOutreachRepository)
	svc := newTestOutreachService(repo)
	ctx := context.Background()

	repo.On("CreateLead", ctx, mock.MatchedBy(func(lead *domain.FarmerLead) bool {
		return lead.Phone == "9876543210" && lead.ID != "" && !lead.CreatedAt.IsZero()
	})).Return(nil)

	msg, err := svc.RegisterFarmer(ctx, RegisterFarmerInput{
		Name:      "Ramesh Kumar",
		Phone:     "9876543210",
		Village:   "Rampur",
		Crop:      "wheat",
		LandAcres: 2.5,
	})

	require.NoError(t, err)
	assert.Equal(t, "Registration successful!", msg)

	repo.AssertExpectations(t)
}

func TestRegisterFarmer_MissingPhone(t *testing.T) {
	repo := new(mockOutreachRepository)
	svc := newTestOutreachService(repo)

	msg, err := svc.RegisterFarmer(context.Background(), RegisterFarmerInput{Name: "Ramesh"})

	assert.Empty(t, msg)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	repo.AssertNotCalled(t, "CreateLead", mock.Anything, mock.Anything)
}

func TestRegisterFarmer_NegativeLand(t *testing.T) {
	repo := new(mockOutreachRepository)
	svc := newTestOutreachService(repo)

	msg, err := svc.RegisterFarmer(context.Background(), RegisterFarmerInput{
		Phone:     "9876543210",
		LandAcres: -1,
	})

	assert.Empty(t, msg)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestRegisterFarmer_RepositoryFailure(t *testing.T) {
	repo := new(mockOutreachRepository)
	svc := newTestOutreachService(repo)
	ctx := context.Background()

	repo.On("CreateLead", ctx, mock.AnythingOfType("*domain.FarmerLead")).Return(assert.AnError)

	msg, err := svc.RegisterFarmer(ctx, RegisterFarmerInput{Phone: "9876543210"})

	assert.Empty(t, msg)
	assert.Error(t, err)
}

// --- Connect Company Tests ---

func TestConnectCompany_Success(t *testing.T) {
	repo := new(mockOutreachRepository)
	svc := newTestOutreachService(repo)
	ctx := context.Background()

	repo.On("CreateCompanyConnect", ctx, mock.MatchedBy(func(cc *domain.CompanyConnect) bool {
		return cc.CompanyName == "AgriCorp" && cc.ID != ""
	})).Return(nil)

	msg, err := svc.ConnectCompany(ctx, ConnectCompanyInput{
		CompanyName: "AgriCorp",
		ContactName: "Priya Sharma",
		Email:       "priya@agricorp.example",
	})

	require.NoError(t, err)
	assert.Equal(t, "Thank you for your interest! Our partner companies will contact you shortly.", msg)

	repo.AssertExpectations(t)
}

func TestConnectCompany_MissingCompanyName(t *testing.T) {
	repo := new(mockOutreachRepository)
	svc := newTestOutreachService(repo)

	msg, err := svc.ConnectCompany(context.Background(), ConnectCompanyInput{Email: "a@b.example"})

	assert.Empty(t, msg)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestConnectCompany_NoContactChannel(t *testing.T) {
	repo := new(mockOutreachRepository)
	svc := newTestOutreachService(repo)

	msg, err := svc.ConnectCompany(context.Background(), ConnectCompanyInput{CompanyName: "AgriCorp"})

	assert.Empty(t, msg)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
