package postgres

import (
	"context"
	"fmt"

	"github.com/farmmitra/FarmMitraGo/internal/domain"
	"github.com/farmmitra/FarmMitraGo/pkg/database"
)

// OutreachRepository implements repository.OutreachRepository using PostgreSQL.
type OutreachRepository struct {
	pool database.DBTX
}

// NewOutreachRepository creates a new PostgreSQL-backed outreach repository.
func NewOutreachRepository(pool database.DBTX) *OutreachRepository {
	return &OutreachRepository{pool: pool}
}

// CreateLead stores a farmer registration lead.
func (r *OutreachRepository) CreateLead(ctx context.Context, lead *domain.FarmerLead) error {
	query := `
		INSERT INTO farmer_leads (id, name, phone, village, district, state, crop, land_acres, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.pool.Exec(ctx, query,
		lead.ID,
		lead.Name,
		lead.Phone,
		lead.Village,
		lead.District,
		lead.State,
		lead.Crop,
		lead.LandAcres,
		lead.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert farmer lead: %w", err)
	}

	return nil
}

// CreateCompanyConnect stores a company partnership inquiry.
func (r *OutreachRepository) CreateCompanyConnect(ctx context.Context, cc *domain.CompanyConnect) error {
	query := `
		INSERT INTO company_connects (id, company_name, contact_name, email, phone, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		cc.ID,
		cc.CompanyName,
		cc.ContactName,
		cc.Email,
		cc.Phone,
		cc.Message,
		cc.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert company connect: %w", err)
	}

	return nil
}
