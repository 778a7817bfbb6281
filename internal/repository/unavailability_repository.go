package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/aurasystem/aura-api/internal/models"
)

// UnavailabilityRepository persists block rules.
type UnavailabilityRepository struct {
	db *sqlx.DB
}

// NewUnavailabilityRepository constructs the repository.
func NewUnavailabilityRepository(db *sqlx.DB) *UnavailabilityRepository {
	return &UnavailabilityRepository{db: db}
}

// ListByCompany returns the company's rules ordered by creation time. The
// resolver matches rules first-wins in this order.
func (r *UnavailabilityRepository) ListByCompany(ctx context.Context, companyID string) ([]models.UnavailabilityRule, error) {
	const query = `SELECT id, company_id, description, start_time, end_time, dates, professional_ids, created_at
FROM unavailability_rules WHERE company_id = $1 ORDER BY created_at ASC`
	var rules []models.UnavailabilityRule
	if err := r.db.SelectContext(ctx, &rules, query, companyID); err != nil {
		return nil, fmt.Errorf("list unavailability rules: %w", err)
	}
	return rules, nil
}

// Create inserts a new rule, assigning its id.
func (r *UnavailabilityRepository) Create(ctx context.Context, rule *models.UnavailabilityRule) error {
	const query = `INSERT INTO unavailability_rules (id, company_id, description, start_time, end_time, dates, professional_ids, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	if rule.ID == "" {
		rule.ID = uuid.NewString()
	}
	rule.CreatedAt = time.Now().UTC()
	if rule.Dates == nil {
		rule.Dates = pq.StringArray{}
	}
	if rule.ProfessionalIDs == nil {
		rule.ProfessionalIDs = pq.StringArray{}
	}
	if _, err := r.db.ExecContext(ctx, query,
		rule.ID, rule.CompanyID, rule.Description, rule.StartTime, rule.EndTime,
		rule.Dates, rule.ProfessionalIDs, rule.CreatedAt,
	); err != nil {
		return fmt.Errorf("create unavailability rule: %w", err)
	}
	return nil
}

// Delete removes a rule scoped to its company.
func (r *UnavailabilityRepository) Delete(ctx context.Context, companyID, id string) error {
	const query = `DELETE FROM unavailability_rules WHERE company_id = $1 AND id = $2`
	result, err := r.db.ExecContext(ctx, query, companyID, id)
	if err != nil {
		return fmt.Errorf("delete unavailability rule: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete unavailability rule: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete unavailability rule: rule %s not found", id)
	}
	return nil
}
