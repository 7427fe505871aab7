package postgres

import (
	"context"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmmitra/FarmMitraGo/internal/domain"
)

func newOutreachTestFixture(t *testing.T) (*OutreachRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := NewOutreachRepository(mock)
	return repo, mock
}

func TestOutreachRepository_CreateLead_Success(t *testing.T) {
	repo, mock := newOutreachTestFixture(t)
	defer mock.Close()

	lead := &domain.FarmerLead{
		ID:        "lead-1",
		Name:      "Ramesh Kumar",
		Phone:     "9876543210",
		Village:   "Rampur",
		District:  "Sitapur",
		State:     "Uttar Pradesh",
		Crop:      "wheat",
		LandAcres: 2.5,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	mock.ExpectExec("INSERT INTO farmer_leads").
		WithArgs(lead.ID, lead.Name, lead.Phone, lead.Village, lead.District,
			lead.State, lead.Crop, lead.LandAcres, lead.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.CreateLead(context.Background(), lead)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutreachRepository_CreateLead_DBError(t *testing.T) {
	repo, mock := newOutreachTestFixture(t)
	defer mock.Close()

	lead := &domain.FarmerLead{ID: "lead-1", Phone: "9876543210", CreatedAt: time.Now()}

	mock.ExpectExec("INSERT INTO farmer_leads").
		WithArgs(lead.ID, lead.Name, lead.Phone, lead.Village, lead.District,
			lead.State, lead.Crop, lead.LandAcres, lead.CreatedAt).
		WillReturnError(assert.AnError)

	err := repo.CreateLead(context.Background(), lead)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert farmer lead")
}

func TestOutreachRepository_CreateCompanyConnect_Success(t *testing.T) {
	repo, mock := newOutreachTestFixture(t)
	defer mock.Close()

	cc := &domain.CompanyConnect{
		ID:          "cc-1",
		CompanyName: "AgroFresh Ltd",
		ContactName: "Priya Sharma",
		Email:       "priya@agrofresh.example",
		Phone:       "9123456780",
		Message:     "Interested in sourcing basmati rice.",
		CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}

	mock.ExpectExec("INSERT INTO company_connects").
		WithArgs(cc.ID, cc.CompanyName, cc.ContactName, cc.Email, cc.Phone,
			cc.Message, cc.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.CreateCompanyConnect(context.Background(), cc)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
