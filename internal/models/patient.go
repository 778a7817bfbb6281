package models

import "time"

// Patient belongs to a single company.
type Patient struct {
	ID        string    `db:"id" json:"id"`
	CompanyID string    `db:"company_id" json:"company_id"`
	Name      string    `db:"name" json:"name"`
	Phone     *string   `db:"phone" json:"phone,omitempty"`
	Email     *string   `db:"email" json:"email,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
