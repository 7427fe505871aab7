package domain

import (
	"time"
)

// FarmerLead is a registration request captured from the outreach form.
type FarmerLead struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Village   string    `json:"village,omitempty"`
	District  string    `json:"district,omitempty"`
	State     string    `json:"state,omitempty"`
	Crop      string    `json:"crop,omitempty"`
	LandAcres float64   `json:"land_acres,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CompanyConnect is a partnership inquiry submitted by an agri company.
type CompanyConnect struct {
	ID          string    `json:"id"`
	CompanyName string    `json:"company_name"`
	ContactName string    `json:"contact_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	Message     string    `json:"message,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
