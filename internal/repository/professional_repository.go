package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/aurasystem/aura-api/internal/models"
)

// ProfessionalRepository persists the company's practitioner roster.
type ProfessionalRepository struct {
	db *sqlx.DB
}

// NewProfessionalRepository constructs the repository.
func NewProfessionalRepository(db *sqlx.DB) *ProfessionalRepository {
	return &ProfessionalRepository{db: db}
}

// FindByID fetches a professional scoped to its company.
func (r *ProfessionalRepository) FindByID(ctx context.Context, companyID, id string) (*models.Professional, error) {
	const query = `SELECT id, company_id, name, specialty, is_active, created_at, updated_at
FROM professionals WHERE company_id = $1 AND id = $2`
	var professional models.Professional
	if err := r.db.GetContext(ctx, &professional, query, companyID, id); err != nil {
		return nil, err
	}
	return &professional, nil
}

// ListByCompany returns the active roster.
func (r *ProfessionalRepository) ListByCompany(ctx context.Context, companyID string) ([]models.Professional, error) {
	const query = `SELECT id, company_id, name, specialty, is_active, created_at, updated_at
FROM professionals WHERE company_id = $1 ORDER BY name ASC`
	var professionals []models.Professional
	if err := r.db.SelectContext(ctx, &professionals, query, companyID); err != nil {
		return nil, fmt.Errorf("list professionals: %w", err)
	}
	return professionals, nil
}

// CountByCompany returns the live professional count for plan limit checks.
func (r *ProfessionalRepository) CountByCompany(ctx context.Context, companyID string) (int, error) {
	const query = `SELECT COUNT(*) FROM professionals WHERE company_id = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, companyID); err != nil {
		return 0, fmt.Errorf("count professionals: %w", err)
	}
	return count, nil
}

// Create inserts a roster entry, assigning its id and timestamps.
func (r *ProfessionalRepository) Create(ctx context.Context, professional *models.Professional) error {
	const query = `INSERT INTO professionals (id, company_id, name, specialty, is_active, created_at, updated_at)
VALUES (:id, :company_id, :name, :specialty, :is_active, :created_at, :updated_at)`
	if professional.ID == "" {
		professional.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	professional.CreatedAt = now
	professional.UpdatedAt = now
	if _, err := r.db.NamedExecContext(ctx, query, professional); err != nil {
		return fmt.Errorf("create professional: %w", err)
	}
	return nil
}
