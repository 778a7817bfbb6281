package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/aurasystem/aura-api/internal/models"
)

// AppointmentRepository persists bookings.
type AppointmentRepository struct {
	db *sqlx.DB
}

// NewAppointmentRepository constructs the repository.
func NewAppointmentRepository(db *sqlx.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

// Create inserts a booking, assigning its id and timestamps.
func (r *AppointmentRepository) Create(ctx context.Context, appt *models.Appointment) error {
	const query = `INSERT INTO appointments (id, company_id, patient_id, professional_id, starts_at, duration_min, status, notes, created_at, updated_at)
VALUES (:id, :company_id, :patient_id, :professional_id, :starts_at, :duration_min, :status, :notes, :created_at, :updated_at)`
	if appt.ID == "" {
		appt.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	appt.CreatedAt = now
	appt.UpdatedAt = now
	if _, err := r.db.NamedExecContext(ctx, query, appt); err != nil {
		return fmt.Errorf("create appointment: %w", err)
	}
	return nil
}

// FindByID fetches a booking scoped to its company.
func (r *AppointmentRepository) FindByID(ctx context.Context, companyID, id string) (*models.Appointment, error) {
	const query = `SELECT id, company_id, patient_id, professional_id, starts_at, duration_min, status, notes, created_at, updated_at
FROM appointments WHERE company_id = $1 AND id = $2`
	var appt models.Appointment
	if err := r.db.GetContext(ctx, &appt, query, companyID, id); err != nil {
		return nil, err
	}
	return &appt, nil
}

// List returns bookings matching the filter plus the unpaginated total.
func (r *AppointmentRepository) List(ctx context.Context, companyID string, filter models.AppointmentFilter) ([]models.Appointment, int, error) {
	conditions := []string{"company_id = $1"}
	args := []interface{}{companyID}

	addCondition := func(clause string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
	}

	if filter.ProfessionalID != "" {
		addCondition("professional_id = $%d", filter.ProfessionalID)
	}
	if filter.PatientID != "" {
		addCondition("patient_id = $%d", filter.PatientID)
	}
	if filter.Status != "" {
		addCondition("status = $%d", filter.Status)
	}
	if filter.From != nil {
		addCondition("starts_at >= $%d", *filter.From)
	}
	if filter.To != nil {
		addCondition("starts_at < $%d", *filter.To)
	}

	where := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM appointments WHERE %s`, where)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count appointments: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	listQuery := fmt.Sprintf(`SELECT id, company_id, patient_id, professional_id, starts_at, duration_min, status, notes, created_at, updated_at
FROM appointments WHERE %s ORDER BY starts_at ASC LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	args = append(args, size, (page-1)*size)

	var appts []models.Appointment
	if err := r.db.SelectContext(ctx, &appts, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list appointments: %w", err)
	}
	return appts, total, nil
}

// UpdateStatus transitions a booking's lifecycle state.
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, companyID, id string, status models.AppointmentStatus) error {
	const query = `UPDATE appointments SET status = $3, updated_at = $4 WHERE company_id = $1 AND id = $2`
	result, err := r.db.ExecContext(ctx, query, companyID, id, status, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update appointment status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update appointment status: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update appointment status: appointment %s not found", id)
	}
	return nil
}
