package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/aurasystem/aura-api/internal/models"
)

// PatientRepository persists patient records.
type PatientRepository struct {
	db *sqlx.DB
}

// NewPatientRepository constructs the repository.
func NewPatientRepository(db *sqlx.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

// ListByCompany returns patients ordered by name.
func (r *PatientRepository) ListByCompany(ctx context.Context, companyID string) ([]models.Patient, error) {
	const query = `SELECT id, company_id, name, phone, email, created_at, updated_at
FROM patients WHERE company_id = $1 ORDER BY name ASC`
	var patients []models.Patient
	if err := r.db.SelectContext(ctx, &patients, query, companyID); err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	return patients, nil
}

// CountByCompany returns the live patient count for plan limit checks.
func (r *PatientRepository) CountByCompany(ctx context.Context, companyID string) (int, error) {
	const query = `SELECT COUNT(*) FROM patients WHERE company_id = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, companyID); err != nil {
		return 0, fmt.Errorf("count patients: %w", err)
	}
	return count, nil
}

// Create inserts a patient record, assigning its id and timestamps.
func (r *PatientRepository) Create(ctx context.Context, patient *models.Patient) error {
	const query = `INSERT INTO patients (id, company_id, name, phone, email, created_at, updated_at)
VALUES (:id, :company_id, :name, :phone, :email, :created_at, :updated_at)`
	if patient.ID == "" {
		patient.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	patient.CreatedAt = now
	patient.UpdatedAt = now
	if _, err := r.db.NamedExecContext(ctx, query, patient); err != nil {
		return fmt.Errorf("create patient: %w", err)
	}
	return nil
}
