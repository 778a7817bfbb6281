package models

import "time"

// AppointmentStatus tracks the lifecycle of a booking.
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "SCHEDULED"
	AppointmentConfirmed AppointmentStatus = "CONFIRMED"
	AppointmentCompleted AppointmentStatus = "COMPLETED"
	AppointmentCanceled  AppointmentStatus = "CANCELED"
)

// Appointment is a booked slot for a patient with a professional.
type Appointment struct {
	ID             string            `db:"id" json:"id"`
	CompanyID      string            `db:"company_id" json:"company_id"`
	PatientID      string            `db:"patient_id" json:"patient_id"`
	ProfessionalID string            `db:"professional_id" json:"professional_id"`
	StartsAt       time.Time         `db:"starts_at" json:"starts_at"`
	DurationMin    int               `db:"duration_min" json:"duration_min"`
	Status         AppointmentStatus `db:"status" json:"status"`
	Notes          *string           `db:"notes" json:"notes,omitempty"`
	CreatedAt      time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time         `db:"updated_at" json:"updated_at"`
}

// AppointmentFilter defines filters supported by list endpoints.
type AppointmentFilter struct {
	ProfessionalID string
	PatientID      string
	From           *time.Time
	To             *time.Time
	Status         AppointmentStatus
	Page           int
	PageSize       int
}
