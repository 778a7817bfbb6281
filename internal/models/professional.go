package models

import "time"

// Professional performs appointments for a company.
type Professional struct {
	ID        string    `db:"id" json:"id"`
	CompanyID string    `db:"company_id" json:"company_id"`
	Name      string    `db:"name" json:"name"`
	Specialty *string   `db:"specialty" json:"specialty,omitempty"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
