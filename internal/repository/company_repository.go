package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/aurasystem/aura-api/internal/models"
)

// CompanyRepository persists tenants and their settings.
type CompanyRepository struct {
	db *sqlx.DB
}

// NewCompanyRepository constructs the repository.
func NewCompanyRepository(db *sqlx.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// FindByID fetches a company with its subscription and business hours.
func (r *CompanyRepository) FindByID(ctx context.Context, id string) (*models.Company, error) {
	const query = `SELECT id, name, plan, subscription_status, subscription_expires_at, business_hours, created_at, updated_at
FROM companies WHERE id = $1`
	var company models.Company
	if err := r.db.GetContext(ctx, &company, query, id); err != nil {
		return nil, err
	}
	return &company, nil
}

// ReplaceBusinessHours overwrites the weekly opening table wholesale. The
// table is never edited per-day; settings updates always send the full week.
func (r *CompanyRepository) ReplaceBusinessHours(ctx context.Context, companyID string, hours models.BusinessHours) error {
	const query = `UPDATE companies SET business_hours = $2, updated_at = $3 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, companyID, hours, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("replace business hours: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("replace business hours: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("replace business hours: company %s not found", companyID)
	}
	return nil
}

// UpdateSubscription writes a new subscription snapshot for the company.
func (r *CompanyRepository) UpdateSubscription(ctx context.Context, companyID string, snap models.SubscriptionSnapshot) error {
	const query = `UPDATE companies
SET plan = $2, subscription_status = $3, subscription_expires_at = $4, updated_at = $5
WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, companyID, snap.Plan, snap.Status, snap.ExpiresAt, time.Now().UTC()); err != nil {
		return fmt.Errorf("update subscription: %w", err)
	}
	return nil
}
